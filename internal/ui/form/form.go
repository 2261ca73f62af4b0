// Package form binds submitted form values onto request structs through an
// explicitly declared list of fields.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field maps one form input onto one attribute of T. Name is the input name,
// Attr the struct field the validator reports errors against.
type Field[T any] struct {
	Name  string
	Label string
	Attr  string
	Get   func(v *T) string
	Set   func(v *T, raw string) error
}

// Errors holds one message per form input name.
type Errors map[string]string

func (e Errors) Add(name, msg string) {
	if _, ok := e[name]; !ok {
		e[name] = msg
	}
}

func (e Errors) Get(name string) string {
	return e[name]
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for name, msg := range e {
		parts = append(parts, name+": "+msg)
	}
	return strings.Join(parts, "; ")
}

type Binder[T any] struct {
	fields   []Field[T]
	validate *validator.Validate
}

func NewBinder[T any](validate *validator.Validate, fields ...Field[T]) *Binder[T] {
	if validate == nil {
		validate = validator.New()
	}
	return &Binder[T]{fields: fields, validate: validate}
}

func (b *Binder[T]) Fields() []Field[T] {
	return b.fields
}

func (b *Binder[T]) Field(name string) (Field[T], bool) {
	for _, f := range b.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Bind copies values into target through the declared setters and validates
// the result. Setter failures win over validation messages for a field.
func (b *Binder[T]) Bind(values url.Values, target *T) Errors {
	errs := Errors{}
	for _, f := range b.fields {
		if f.Set == nil {
			continue
		}
		if err := f.Set(target, strings.TrimSpace(values.Get(f.Name))); err != nil {
			errs.Add(f.Name, err.Error())
		}
	}
	for name, msg := range b.Validate(target) {
		errs.Add(name, msg)
	}
	return errs
}

// Validate runs the struct tags of T and maps failures back to form inputs.
func (b *Binder[T]) Validate(target *T) Errors {
	errs := Errors{}
	err := b.validate.Struct(target)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}
	for _, fe := range verrs {
		f, ok := b.byAttr(fe.StructField())
		if !ok {
			errs.Add(fe.StructField(), Message(fe.StructField(), fe))
			continue
		}
		errs.Add(f.Name, Message(f.Label, fe))
	}
	return errs
}

// Values reads target back into form values, used to refill a form.
func (b *Binder[T]) Values(target *T) url.Values {
	values := url.Values{}
	for _, f := range b.fields {
		if f.Get != nil {
			values.Set(f.Name, f.Get(target))
		}
	}
	return values
}

func (b *Binder[T]) byAttr(attr string) (Field[T], bool) {
	for _, f := range b.fields {
		if f.Attr == attr {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Message renders a validation failure for label in Spanish.
func Message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", label)
	case "max":
		return fmt.Sprintf("%s admite como máximo %s caracteres", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s requiere al menos %s caracteres", label, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", label)
	}
}
