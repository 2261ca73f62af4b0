package entity

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrPersonNotFound     = errors.New("person not found")
	ErrDuplicateDNI       = errors.New("person with this dni already exists")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrInvalidPersonData  = errors.New("invalid person data")
	ErrInvalidPageRequest = errors.New("invalid page request")
)
