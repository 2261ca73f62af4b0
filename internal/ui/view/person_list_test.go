package view

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/St1cky1/task-management/internal/entity"
)

func newPersonListFixture() *PersonList {
	people := &MockPeople{
		ListFunc: func(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
			return []entity.Person{*ana()}, nil
		},
		CountFunc:    func(ctx context.Context) (int64, error) { return 1, nil },
		FindByIDFunc: peopleByID(ana()),
	}
	return NewPersonList(people)
}

func TestPersonListFormHiddenByDefault(t *testing.T) {
	m, err := newPersonListFixture().Load(context.Background(), url.Values{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out := render(t, m.Content())
	if !strings.Contains(out, `<div class="form-section" hidden>`) {
		t.Error("expected create form to be hidden")
	}
	if !strings.Contains(out, `name="firstName" value="" maxlength="255" required readonly`) {
		t.Errorf("expected read-only fields, got %q", out)
	}
	if strings.Contains(out, "Guardar") {
		t.Error("save action must be hidden until Nuevo")
	}
	if !strings.Contains(out, `href="/person-list?form=new"`) {
		t.Error("expected Nuevo action")
	}
}

func TestPersonListFormOpen(t *testing.T) {
	m, err := newPersonListFixture().Load(context.Background(), url.Values{FormParam: {FormNewMode}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out := render(t, m.Content())
	if strings.Contains(out, " readonly") || strings.Contains(out, "form-section\" hidden") {
		t.Error("expected editable, visible form")
	}
	if !strings.Contains(out, ">Guardar</button>") {
		t.Error("expected save action")
	}
}

func TestPersonListRows(t *testing.T) {
	m, err := newPersonListFixture().Load(context.Background(), url.Values{})
	if err != nil {
		t.Fatal(err)
	}

	out := render(t, m.Content())
	for _, want := range []string{
		`<tr id="person-1"><td>1</td><td>Ana</td><td>Lopez</td><td>123</td>`,
		`href="/task-list?personId=1"`,
		`title="Ver Tareas de Ana"`,
		`href="/person-list?confirmDelete=1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, `hx-trigger="revealed"`) {
		t.Error("single page must not load more rows")
	}
}

func TestPersonListConfirmDelete(t *testing.T) {
	m, err := newPersonListFixture().Load(context.Background(), url.Values{ConfirmDeleteParam: {"1"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.ConfirmDelete == nil || m.ConfirmDelete.ID != 1 {
		t.Fatalf("expected person 1 awaiting confirmation, got %+v", m.ConfirmDelete)
	}

	out := render(t, m.Content())
	for _, want := range []string{
		`<h2>Ana Lopez</h2>`,
		`¿Estas seguro que deseas eliminar esta persona?`,
		`action="/person-list/people/1/delete"`,
		`<a href="/person-list" class="btn">Cancelar</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dialog", want)
		}
	}
}

func TestPersonListConfirmDeleteUnknownIgnored(t *testing.T) {
	m, err := newPersonListFixture().Load(context.Background(), url.Values{ConfirmDeleteParam: {"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.ConfirmDelete != nil {
		t.Errorf("expected no dialog, got %+v", m.ConfirmDelete)
	}
}

func TestPersonFormBinder(t *testing.T) {
	var req entity.CreatePersonRequest
	errs := PersonFormBinder.Bind(url.Values{"firstName": {"Ana"}, "dni": {strings.Repeat("9", 40)}}, &req)

	if errs.Get("lastName") != "Apellido es obligatorio" {
		t.Errorf("unexpected lastName error %q", errs.Get("lastName"))
	}
	if !strings.Contains(errs.Get("dni"), "32") {
		t.Errorf("unexpected dni error %q", errs.Get("dni"))
	}
	if errs.Get("firstName") != "" {
		t.Errorf("unexpected firstName error %q", errs.Get("firstName"))
	}
}
