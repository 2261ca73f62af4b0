package entity

import "strings"

const (
	PersonNameMaxLength = 255
	PersonDNIMaxLength  = 32
)

type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	DNI       string `json:"dni" validate:"required,max=32"`
}

// String is the label used by grids, combo boxes and dialogs.
func (p *Person) String() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// валидация
type CreatePersonRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	DNI       string `json:"dni" validate:"required,max=32"`
}

func (r CreatePersonRequest) Person() *Person {
	return &Person{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		DNI:       strings.TrimSpace(r.DNI),
	}
}
