package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/ui/component"
	"github.com/St1cky1/task-management/internal/ui/form"
	"github.com/St1cky1/task-management/internal/ui/notify"
	"github.com/a-h/templ"
)

const (
	TaskListPath = "/task-list"

	PersonIDParam      = "personId"
	ConfirmDeleteParam = "confirmDelete"
	ReturnParam        = "return"

	DueDateLayout      = "02/01/2006"
	CreationDateLayout = "02/01/2006 15:04"
	dateInputLayout    = "2006-01-02"

	NoDueDate = "Nunca"
)

// PersonDirectory is what the pages need from the person service.
type PersonDirectory interface {
	Lister[entity.Person]
	FindByID(ctx context.Context, id int64) (*entity.Person, error)
}

// TaskSource is what the task page needs from the task service.
type TaskSource interface {
	Lister[entity.Task]
	FindByPerson(ctx context.Context, person *entity.Person) ([]entity.Task, error)
	FindByID(ctx context.Context, id int64) (*entity.Task, error)
}

// TaskFilter is the task page state: unfiltered when Person is nil, otherwise
// filtered by that person.
type TaskFilter struct {
	Person *entity.Person
}

func Unfiltered() TaskFilter {
	return TaskFilter{}
}

func FilteredBy(person *entity.Person) TaskFilter {
	return TaskFilter{Person: person}
}

func (f TaskFilter) Filtered() bool {
	return f.Person != nil
}

// URL is the address that re-enters this state.
func (f TaskFilter) URL() string {
	return f.with(nil)
}

func (f TaskFilter) with(extra url.Values) string {
	q := url.Values{}
	if f.Filtered() {
		q.Set(PersonIDParam, strconv.FormatInt(f.Person.ID, 10))
	}
	for k, vs := range extra {
		q[k] = vs
	}
	if len(q) == 0 {
		return TaskListPath
	}
	return TaskListPath + "?" + q.Encode()
}

type TaskList struct {
	tasks    TaskSource
	people   PersonDirectory
	location *time.Location
}

func NewTaskList(tasks TaskSource, people PersonDirectory, location *time.Location) *TaskList {
	if location == nil {
		location = time.Local
	}
	return &TaskList{tasks: tasks, people: people, location: location}
}

// Enter resolves the navigation target into a filter. Malformed or unknown
// person ids degrade to Unfiltered with an error notice. An empty value is the
// same as no parameter.
func (v *TaskList) Enter(ctx context.Context, query url.Values) (TaskFilter, []notify.Message, error) {
	raw := strings.TrimSpace(query.Get(PersonIDParam))
	if raw == "" {
		return Unfiltered(), nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Unfiltered(), []notify.Message{notify.Error("ID de persona inválido.")}, nil
	}

	person, err := v.people.FindByID(ctx, id)
	if err != nil {
		return Unfiltered(), nil, fmt.Errorf("resolve person %d: %w", id, err)
	}
	if person == nil {
		return Unfiltered(), []notify.Message{notify.Error(fmt.Sprintf("Persona no encontrada con ID: %d", id))}, nil
	}
	return FilteredBy(person), nil, nil
}

// TaskListModel is everything the task page renders.
type TaskListModel struct {
	Filter        TaskFilter
	People        []entity.Person
	Rows          Window[entity.Task]
	ConfirmDelete *entity.Task
	Form          url.Values
	Errors        form.Errors
	Notices       []notify.Message

	location *time.Location
}

// Load runs the load action of filter. Unfiltered pulls one page through the
// paged provider, FilteredByPerson fetches the complete set.
func (v *TaskList) Load(ctx context.Context, filter TaskFilter, page entity.PageRequest) (*TaskListModel, error) {
	people, err := allPeople(ctx, v.people)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}

	m := &TaskListModel{
		Filter:   filter,
		People:   people,
		Form:     url.Values{},
		Errors:   form.Errors{},
		location: v.location,
	}
	if filter.Filtered() {
		m.Form.Set(PersonIDParam, strconv.FormatInt(filter.Person.ID, 10))
		tasks, err := v.tasks.FindByPerson(ctx, filter.Person)
		if err != nil {
			return nil, fmt.Errorf("find tasks by person: %w", err)
		}
		m.Rows = FullWindow(tasks)
		return m, nil
	}

	if m.Rows, err = v.Rows(ctx, page); err != nil {
		return nil, err
	}
	return m, nil
}

// Rows pulls one page of the unfiltered listing.
func (v *TaskList) Rows(ctx context.Context, page entity.PageRequest) (Window[entity.Task], error) {
	return Fetch(ctx, PagedProvider[entity.Task](v.tasks), page)
}

// WithConfirmDelete looks up the task awaiting confirmation. Unknown ids are
// ignored.
func (v *TaskList) WithConfirmDelete(ctx context.Context, m *TaskListModel, raw string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	task, err := v.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	m.ConfirmDelete = task
	return nil
}

func (v *TaskList) Location() *time.Location {
	return v.location
}

// TaskFormBinder binds the create-task form.
var TaskFormBinder = form.NewBinder(nil,
	form.Field[entity.CreateTaskRequest]{
		Name:  "description",
		Label: "Tarea",
		Attr:  "Description",
		Get:   func(r *entity.CreateTaskRequest) string { return r.Description },
		Set: func(r *entity.CreateTaskRequest, raw string) error {
			r.Description = raw
			return nil
		},
	},
	form.Field[entity.CreateTaskRequest]{
		Name:  PersonIDParam,
		Label: "Persona",
		Attr:  "PersonID",
		Get: func(r *entity.CreateTaskRequest) string {
			if r.PersonID == nil {
				return ""
			}
			return strconv.FormatInt(*r.PersonID, 10)
		},
		Set: func(r *entity.CreateTaskRequest, raw string) error {
			r.PersonID = nil
			if raw == "" {
				return nil
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return errors.New("Persona no es válida")
			}
			r.PersonID = &id
			return nil
		},
	},
	form.Field[entity.CreateTaskRequest]{
		Name:  "dueDate",
		Label: "Fecha Límite",
		Attr:  "DueDate",
		Get: func(r *entity.CreateTaskRequest) string {
			if r.DueDate == nil {
				return ""
			}
			return r.DueDate.Format(dateInputLayout)
		},
		Set: func(r *entity.CreateTaskRequest, raw string) error {
			r.DueDate = nil
			if raw == "" {
				return nil
			}
			d, err := time.Parse(dateInputLayout, raw)
			if err != nil {
				return errors.New("Fecha Límite no es una fecha válida")
			}
			r.DueDate = &d
			return nil
		},
	},
)

// Page renders the full document.
func (m *TaskListModel) Page() templ.Component {
	return component.Page{
		Title:   "Lista de Tareas",
		Nav:     navigation(TaskListPath),
		Notices: notify.Components(m.Notices),
		Body:    m.Content(),
	}
}

// Content is the page body: toolbar, create form, actions, dialog and grid.
func (m *TaskListModel) Content() templ.Component {
	filterOptions := personOptions(m.People)
	selected := ""
	if m.Filter.Filtered() {
		selected = strconv.FormatInt(m.Filter.Person.ID, 10)
	}

	toolbar := component.Toolbar{Items: []templ.Component{
		pageHeading("Tareas"),
		component.Form{
			ID:     "task-filter",
			Action: TaskListPath,
			Method: "get",
			Attrs: component.Attrs{
				"hx-get":      TaskListPath,
				"hx-trigger":  "change",
				"hx-target":   "main",
				"hx-select":   "main",
				"hx-swap":     "outerHTML",
				"hx-push-url": "true",
			},
			Children: []templ.Component{
				component.Select{
					Name:        PersonIDParam,
					Label:       "Filtrar tareas por persona...",
					Placeholder: "Todas las Tareas",
					Options:     filterOptions,
					Selected:    selected,
				},
				component.Button{Label: "Filtrar"},
			},
		},
	}}

	createForm := component.Form{
		ID:     "task-create",
		Action: TaskListPath + "/tasks",
		Children: []templ.Component{
			component.Hidden{Name: ReturnParam, Value: m.Filter.URL()},
			component.HorizontalLayout("task-form",
				component.TextField{
					Name:      "description",
					Label:     "Tarea",
					Value:     m.Form.Get("description"),
					MaxLength: entity.TaskDescriptionMaxLength,
					Required:  true,
					Error:     m.Errors.Get("description"),
					Attrs:     component.Attrs{"placeholder": "Que deseas hacer?"},
				},
				component.Select{
					Name:        PersonIDParam,
					Label:       "Persona",
					Placeholder: "Sin asignar",
					Options:     filterOptions,
					Selected:    m.Form.Get(PersonIDParam),
					Error:       m.Errors.Get(PersonIDParam),
				},
				component.DateField{
					Name:  "dueDate",
					Label: "Fecha Límite",
					Value: m.Form.Get("dueDate"),
					Error: m.Errors.Get("dueDate"),
				},
			),
			component.HorizontalLayout("task-actions",
				component.Button{Label: "Crear", Variant: component.VariantPrimary},
				component.LinkButton{Label: "Ver Todas las Tareas", Href: TaskListPath},
			),
		},
	}

	var dialog templ.Component
	if m.ConfirmDelete != nil {
		dialog = m.deleteDialog(m.ConfirmDelete)
	}

	return component.VerticalLayout("task-list", toolbar, createForm, dialog, m.grid(m.Rows))
}

func (m *TaskListModel) deleteDialog(task *entity.Task) templ.Component {
	return component.Dialog{
		ID:      "confirm-delete",
		Title:   fmt.Sprintf("Tarea: \"%s\"", task.Description),
		Message: "¿Estas seguro que deseas borrar esta tarea?",
		Actions: []templ.Component{
			component.Form{
				Action: fmt.Sprintf("%s/tasks/%d/delete", TaskListPath, task.ID),
				Children: []templ.Component{
					component.Hidden{Name: ReturnParam, Value: m.Filter.URL()},
					component.Button{Label: "Borrar", Variant: component.VariantDanger},
				},
			},
			component.LinkButton{Label: "Cancelar", Href: m.Filter.URL()},
		},
	}
}

func (m *TaskListModel) grid(rows Window[entity.Task]) component.Grid[entity.Task] {
	g := TaskGrid(m.Filter, m.location)
	g.Rows = rows.Items
	g.More = m.more(rows)
	return g
}

// RowsFragment renders the rows of a window plus the loader for the next one.
func (m *TaskListModel) RowsFragment() templ.Component {
	return m.grid(m.Rows).Body()
}

func (m *TaskListModel) more(rows Window[entity.Task]) templ.Component {
	if m.Filter.Filtered() || !rows.HasMore() {
		return nil
	}
	return component.LoadMore{
		URL:     TaskListPath + "/rows?" + rows.Page.Next().Query().Encode(),
		Columns: len(taskColumns(m.Filter, m.location)),
	}
}

// TaskRowsModel builds a model holding only rows, for the incremental loader.
func TaskRowsModel(rows Window[entity.Task], location *time.Location) *TaskListModel {
	return &TaskListModel{Filter: Unfiltered(), Rows: rows, location: location}
}

// TaskRow renders one row, used after toggling completion.
func TaskRow(task entity.Task, filter TaskFilter, location *time.Location) templ.Component {
	return TaskGrid(filter, location).Row(task)
}

// TaskGrid declares the task grid columns.
func TaskGrid(filter TaskFilter, location *time.Location) component.Grid[entity.Task] {
	return component.Grid[entity.Task]{
		ID:      "tasks",
		Columns: taskColumns(filter, location),
		Empty:   "No hay tareas",
		RowID:   func(t entity.Task) string { return fmt.Sprintf("task-%d", t.ID) },
	}
}

func taskColumns(filter TaskFilter, location *time.Location) []component.Column[entity.Task] {
	return []component.Column[entity.Task]{
		{Header: "Completada", Cell: func(t entity.Task) templ.Component { return doneToggle(t, filter) }},
		{Header: "Descripción", Cell: func(t entity.Task) templ.Component { return component.Text(t.Description) }},
		{Header: "Persona", Cell: func(t entity.Task) templ.Component { return component.Text(t.Person.String()) }},
		{Header: "Fecha Límite", Cell: func(t entity.Task) templ.Component { return component.Text(FormatDueDate(t.DueDate)) }},
		{Header: "Fecha de Creación", Cell: func(t entity.Task) templ.Component {
			return component.Text(t.CreationDate.In(location).Format(CreationDateLayout))
		}},
		{Header: "Borrar", Cell: func(t entity.Task) templ.Component {
			return component.LinkButton{
				Label:   "Borrar",
				Href:    filter.with(url.Values{ConfirmDeleteParam: {strconv.FormatInt(t.ID, 10)}}),
				Variant: component.VariantDanger,
				Attrs:   component.Attrs{"aria-label": "Borrar", "title": "Eliminar"},
			}
		}},
	}
}

func doneToggle(t entity.Task, filter TaskFilter) templ.Component {
	action := fmt.Sprintf("%s/tasks/%d/done", TaskListPath, t.ID)
	return component.Form{
		Action: action,
		Attrs: component.Attrs{
			"hx-post":    action,
			"hx-trigger": "change",
			"hx-target":  "closest tr",
			"hx-swap":    "outerHTML",
		},
		Children: []templ.Component{
			component.Hidden{Name: "done", Value: strconv.FormatBool(!t.Done)},
			component.Hidden{Name: ReturnParam, Value: filter.URL()},
			component.Checkbox{Name: "toggle", Label: "Completada", Checked: t.Done},
		},
	}
}

// FormatDueDate renders an optional due date, "Nunca" when absent.
func FormatDueDate(d *time.Time) string {
	if d == nil {
		return NoDueDate
	}
	return d.Format(DueDateLayout)
}

func personOptions(people []entity.Person) []component.Option {
	opts := make([]component.Option, 0, len(people))
	for i := range people {
		opts = append(opts, component.Option{
			Value: strconv.FormatInt(people[i].ID, 10),
			Label: people[i].String(),
		})
	}
	return opts
}

func pageHeading(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>"+templ.EscapeString(title)+"</h1>")
		return err
	})
}

func navigation(active string) []component.NavLink {
	return []component.NavLink{
		{Label: "Personas", Href: PersonListPath, Active: active == PersonListPath},
		{Label: "Lista de Tareas", Href: TaskListPath, Active: active == TaskListPath},
	}
}
