package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/ui/form"
	"github.com/St1cky1/task-management/internal/ui/notify"
	"github.com/St1cky1/task-management/internal/ui/view"
	"github.com/sirupsen/logrus"
)

type PersonHandler struct {
	personService PersonService
	view          *view.PersonList
	log           logrus.FieldLogger
}

func NewPersonHandler(personService PersonService, log logrus.FieldLogger) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		view:          view.NewPersonList(personService),
		log:           log.WithField("handler", "person"),
	}
}

// страница людей
func (h *PersonHandler) PersonList(w http.ResponseWriter, r *http.Request) {
	notices := notify.Pop(w, r)
	m, err := h.view.Load(r.Context(), r.URL.Query())
	if err != nil {
		serverError(w, h.log, err, "failed to load people")
		return
	}
	m.Notices = notices
	render(w, r, http.StatusOK, m.Page())
}

// следующая страница строк для грида (HTMX)
func (h *PersonHandler) Rows(w http.ResponseWriter, r *http.Request) {
	page, err := entity.ParsePageRequest(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid page request", http.StatusBadRequest) // 400
		return
	}
	rows, err := h.view.Rows(r.Context(), page)
	if err != nil {
		serverError(w, h.log, err, "failed to load person rows")
		return
	}
	render(w, r, http.StatusOK, view.PersonRowsModel(rows).RowsFragment())
}

// создаем нового человека
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest) // 400
		return
	}

	var req entity.CreatePersonRequest
	if errs := view.PersonFormBinder.Bind(r.PostForm, &req); !errs.Empty() {
		h.renderFormErrors(w, r, errs)
		return
	}

	_, err := h.personService.CreatePerson(r.Context(), req.FirstName, req.LastName, req.DNI)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicateDNI):
			h.renderFormErrors(w, r, form.Errors{"dni": "Ya existe una persona con ese DNI"})
		case errors.Is(err, entity.ErrInvalidPersonData):
			h.renderFormErrors(w, r, form.Errors{"": "Datos de persona inválidos"})
		default:
			serverError(w, h.log, err, "failed to create person")
		}
		return
	}

	notify.Flash(w, r, notify.Success("Persona Agregada"))
	redirect(w, r, view.PersonListPath)
}

// удаляем человека
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "Invalid person Id", http.StatusBadRequest)
		return
	}

	if err := h.personService.DeletePerson(r.Context(), id); err != nil {
		if !errors.Is(err, entity.ErrPersonNotFound) {
			serverError(w, h.log, err, "failed to delete person")
			return
		}
		notify.Flash(w, r, notify.Error(fmt.Sprintf("Persona no encontrada con ID: %d", id)))
		redirect(w, r, view.PersonListPath)
		return
	}

	notify.Flash(w, r, notify.Success("Persona Eliminada"))
	redirect(w, r, view.PersonListPath)
}

// renderFormErrors shows the open form again with the submitted values.
func (h *PersonHandler) renderFormErrors(w http.ResponseWriter, r *http.Request, errs form.Errors) {
	m, err := h.view.Load(r.Context(), nil)
	if err != nil {
		serverError(w, h.log, err, "failed to load people")
		return
	}
	m.FormOpen = true
	m.Form = r.PostForm
	m.Errors = errs
	if msg := errs.Get(""); msg != "" {
		m.Notices = append(m.Notices, notify.Error(msg))
	}
	render(w, r, http.StatusUnprocessableEntity, m.Page())
}
