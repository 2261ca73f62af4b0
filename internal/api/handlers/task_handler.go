package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/ui/form"
	"github.com/St1cky1/task-management/internal/ui/notify"
	"github.com/St1cky1/task-management/internal/ui/view"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	taskService   TaskService
	personService PersonService
	view          *view.TaskList
	log           logrus.FieldLogger
}

func NewTaskHandler(taskService TaskService, personService PersonService, location *time.Location, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		personService: personService,
		view:          view.NewTaskList(taskService, personService, location),
		log:           log.WithField("handler", "task"),
	}
}

// страница задач
func (h *TaskHandler) TaskList(w http.ResponseWriter, r *http.Request) {
	notices := notify.Pop(w, r)
	h.renderPage(w, r, r.URL.Query(), http.StatusOK, func(m *view.TaskListModel) {
		m.Notices = append(notices, m.Notices...)
	})
}

// следующая страница строк для грида (HTMX)
func (h *TaskHandler) Rows(w http.ResponseWriter, r *http.Request) {
	page, err := entity.ParsePageRequest(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid page request", http.StatusBadRequest) // 400
		return
	}
	rows, err := h.view.Rows(r.Context(), page)
	if err != nil {
		serverError(w, h.log, err, "failed to load task rows")
		return
	}
	render(w, r, http.StatusOK, view.TaskRowsModel(rows, h.view.Location()).RowsFragment())
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest) // 400
		return
	}
	back := returnTarget(r.PostForm.Get(view.ReturnParam), view.TaskListPath)

	var req entity.CreateTaskRequest
	if errs := view.TaskFormBinder.Bind(r.PostForm, &req); !errs.Empty() {
		h.renderFormErrors(w, r, back, errs)
		return
	}

	var person *entity.Person
	if req.PersonID != nil {
		p, err := h.personService.FindByID(r.Context(), *req.PersonID)
		if err != nil {
			serverError(w, h.log, err, "failed to resolve task owner")
			return
		}
		if p == nil {
			h.renderFormErrors(w, r, back, form.Errors{view.PersonIDParam: fmt.Sprintf("Persona no encontrada con ID: %d", *req.PersonID)})
			return
		}
		person = p
	}

	_, err := h.taskService.CreateTask(r.Context(), req.Description, person, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidTaskData):
			h.renderFormErrors(w, r, back, form.Errors{"description": "Tarea no es válida"})
		case errors.Is(err, entity.ErrPersonNotFound):
			h.renderFormErrors(w, r, back, form.Errors{view.PersonIDParam: "Persona no encontrada"})
		default:
			serverError(w, h.log, err, "failed to create task")
		}
		return
	}

	notify.Flash(w, r, notify.Success("Tarea Agregada"))
	redirect(w, r, back)
}

// отмечаем задачу выполненной или нет
func (h *TaskHandler) SetDone(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	done, err := strconv.ParseBool(r.PostForm.Get("done"))
	if err != nil {
		http.Error(w, "invalid done value", http.StatusBadRequest)
		return
	}
	back := returnTarget(r.PostForm.Get(view.ReturnParam), view.TaskListPath)

	task, err := h.taskService.SetDone(r.Context(), id, done)
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			if isHTMX(r) {
				http.Error(w, "task not found", http.StatusNotFound) // 404
				return
			}
			notify.Flash(w, r, notify.Error("Tarea no encontrada"))
			redirect(w, r, back)
			return
		}
		serverError(w, h.log, err, "failed to update task")
		return
	}

	if !isHTMX(r) {
		redirect(w, r, back)
		return
	}
	filter, err := h.filterFor(r, back)
	if err != nil {
		serverError(w, h.log, err, "failed to resolve filter")
		return
	}
	render(w, r, http.StatusOK, view.TaskRow(*task, filter, h.view.Location()))
}

// удаляем задачу
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	back := returnTarget(r.PostForm.Get(view.ReturnParam), view.TaskListPath)

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		if !errors.Is(err, entity.ErrTaskNotFound) {
			serverError(w, h.log, err, "failed to delete task")
			return
		}
		notify.Flash(w, r, notify.Error("Tarea no encontrada"))
	}
	redirect(w, r, back)
}

func (h *TaskHandler) filterFor(r *http.Request, target string) (view.TaskFilter, error) {
	u, err := url.Parse(target)
	if err != nil {
		return view.Unfiltered(), nil
	}
	filter, _, err := h.view.Enter(r.Context(), u.Query())
	return filter, err
}

// renderFormErrors re-renders the page the form was posted from, keeping the
// submitted values.
func (h *TaskHandler) renderFormErrors(w http.ResponseWriter, r *http.Request, back string, errs form.Errors) {
	u, err := url.Parse(back)
	if err != nil {
		u = &url.URL{Path: view.TaskListPath}
	}
	h.renderPage(w, r, u.Query(), http.StatusUnprocessableEntity, func(m *view.TaskListModel) {
		m.Form = r.PostForm
		m.Errors = errs
	})
}

func (h *TaskHandler) renderPage(w http.ResponseWriter, r *http.Request, query url.Values, status int, mutate func(m *view.TaskListModel)) {
	ctx := r.Context()
	filter, notices, err := h.view.Enter(ctx, query)
	if err != nil {
		serverError(w, h.log, err, "failed to resolve task filter")
		return
	}
	m, err := h.view.Load(ctx, filter, pageRequest(query))
	if err != nil {
		serverError(w, h.log, err, "failed to load tasks")
		return
	}
	m.Notices = notices
	if raw := query.Get(view.ConfirmDeleteParam); raw != "" {
		if err := h.view.WithConfirmDelete(ctx, m, raw); err != nil {
			serverError(w, h.log, err, "failed to load task")
			return
		}
	}
	if mutate != nil {
		mutate(m)
	}
	render(w, r, status, m.Page())
}
