package entity

import "time"

// TaskDescriptionMaxLength bounds Task.Description in runes.
const TaskDescriptionMaxLength = 255

type Task struct {
	ID           int64      `json:"id"`
	Description  string     `json:"description" validate:"required,max=255"`
	Person       *Person    `json:"person,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreationDate time.Time  `json:"creation_date"`
	Done         bool       `json:"done"`
}

// PersonID returns the owner id, nil for unassigned tasks.
func (t *Task) PersonID() *int64 {
	if t == nil || t.Person == nil {
		return nil
	}
	id := t.Person.ID
	return &id
}

// валидация
type CreateTaskRequest struct {
	Description string     `json:"description" validate:"required,max=255"`
	PersonID    *int64     `json:"person_id"`
	DueDate     *time.Time `json:"due_date"`
}

// DateOnly drops the clock part of t, keeping its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnlyPtr applies DateOnly to an optional date.
func DateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := DateOnly(*t)
	return &d
}
