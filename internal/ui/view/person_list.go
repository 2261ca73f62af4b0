package view

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/ui/component"
	"github.com/St1cky1/task-management/internal/ui/form"
	"github.com/St1cky1/task-management/internal/ui/notify"
	"github.com/a-h/templ"
)

const (
	PersonListPath = "/person-list"

	FormParam   = "form"
	FormNewMode = "new"
)

type PersonList struct {
	people PersonDirectory
}

func NewPersonList(people PersonDirectory) *PersonList {
	return &PersonList{people: people}
}

// PersonListModel is everything the person page renders. The create form is
// hidden and read-only until FormOpen.
type PersonListModel struct {
	FormOpen      bool
	Form          url.Values
	Errors        form.Errors
	Rows          Window[entity.Person]
	ConfirmDelete *entity.Person
	Notices       []notify.Message
}

// Load reads the page state from the query: form=new opens the create form,
// confirmDelete=<id> asks for confirmation, page/size/sort select the rows.
func (v *PersonList) Load(ctx context.Context, query url.Values) (*PersonListModel, error) {
	page, err := entity.ParsePageRequest(query)
	if err != nil {
		page = entity.NewPageRequest(0, entity.DefaultPageSize)
	}

	m := &PersonListModel{
		FormOpen: query.Get(FormParam) == FormNewMode,
		Form:     url.Values{},
		Errors:   form.Errors{},
	}
	if m.Rows, err = v.Rows(ctx, page); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(query.Get(ConfirmDeleteParam)); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if m.ConfirmDelete, err = v.people.FindByID(ctx, id); err != nil {
				return nil, fmt.Errorf("find person %d: %w", id, err)
			}
		}
	}
	return m, nil
}

// Rows pulls one page of people.
func (v *PersonList) Rows(ctx context.Context, page entity.PageRequest) (Window[entity.Person], error) {
	return Fetch(ctx, PagedProvider[entity.Person](v.people), page)
}

// PersonFormBinder binds the create-person form.
var PersonFormBinder = form.NewBinder(nil,
	form.Field[entity.CreatePersonRequest]{
		Name:  "firstName",
		Label: "Nombre",
		Attr:  "FirstName",
		Get:   func(r *entity.CreatePersonRequest) string { return r.FirstName },
		Set: func(r *entity.CreatePersonRequest, raw string) error {
			r.FirstName = raw
			return nil
		},
	},
	form.Field[entity.CreatePersonRequest]{
		Name:  "lastName",
		Label: "Apellido",
		Attr:  "LastName",
		Get:   func(r *entity.CreatePersonRequest) string { return r.LastName },
		Set: func(r *entity.CreatePersonRequest, raw string) error {
			r.LastName = raw
			return nil
		},
	},
	form.Field[entity.CreatePersonRequest]{
		Name:  "dni",
		Label: "DNI",
		Attr:  "DNI",
		Get:   func(r *entity.CreatePersonRequest) string { return r.DNI },
		Set: func(r *entity.CreatePersonRequest, raw string) error {
			r.DNI = raw
			return nil
		},
	},
)

func (m *PersonListModel) Page() templ.Component {
	return component.Page{
		Title:   "Lista de Personas",
		Nav:     navigation(PersonListPath),
		Notices: notify.Components(m.Notices),
		Body:    m.Content(),
	}
}

func (m *PersonListModel) Content() templ.Component {
	readOnly := !m.FormOpen
	fields := make([]templ.Component, 0, 3)
	for _, f := range PersonFormBinder.Fields() {
		limit := entity.PersonNameMaxLength
		if f.Name == "dni" {
			limit = entity.PersonDNIMaxLength
		}
		fields = append(fields, component.TextField{
			Name:      f.Name,
			Label:     f.Label,
			Value:     m.Form.Get(f.Name),
			MaxLength: limit,
			Required:  true,
			ReadOnly:  readOnly,
			Error:     m.Errors.Get(f.Name),
		})
	}

	actions := []templ.Component{
		component.LinkButton{Label: "Nuevo", Href: PersonListPath + "?" + FormParam + "=" + FormNewMode, Variant: component.VariantPrimary},
	}
	if m.FormOpen {
		actions = append(actions, component.Button{Label: "Guardar", Variant: component.VariantPrimary})
	}

	createForm := component.Form{
		ID:     "person-create",
		Action: PersonListPath + "/people",
		Children: []templ.Component{
			formSection(!m.FormOpen, component.HorizontalLayout("person-form", fields...)),
			component.HorizontalLayout("person-actions", actions...),
		},
	}

	var dialog templ.Component
	if m.ConfirmDelete != nil {
		dialog = personDeleteDialog(m.ConfirmDelete)
	}

	return component.VerticalLayout("person-list",
		component.Toolbar{Items: []templ.Component{pageHeading("Administrador de Personas")}},
		createForm,
		dialog,
		m.grid(m.Rows),
	)
}

// RowsFragment renders the rows of a window plus the loader for the next one.
func (m *PersonListModel) RowsFragment() templ.Component {
	return m.grid(m.Rows).Body()
}

func (m *PersonListModel) grid(rows Window[entity.Person]) component.Grid[entity.Person] {
	g := PersonGrid()
	g.Rows = rows.Items
	if rows.HasMore() {
		g.More = component.LoadMore{
			URL:     PersonListPath + "/rows?" + rows.Page.Next().Query().Encode(),
			Columns: len(g.Columns),
		}
	}
	return g
}

// PersonRowsModel builds a model holding only rows, for the incremental loader.
func PersonRowsModel(rows Window[entity.Person]) *PersonListModel {
	return &PersonListModel{Rows: rows}
}

func PersonGrid() component.Grid[entity.Person] {
	return component.Grid[entity.Person]{
		ID: "people",
		Columns: []component.Column[entity.Person]{
			{Header: "ID", Cell: func(p entity.Person) templ.Component { return component.Text(strconv.FormatInt(p.ID, 10)) }},
			{Header: "Nombre", Cell: func(p entity.Person) templ.Component { return component.Text(p.FirstName) }},
			{Header: "Apellido", Cell: func(p entity.Person) templ.Component { return component.Text(p.LastName) }},
			{Header: "DNI", Cell: func(p entity.Person) templ.Component { return component.Text(p.DNI) }},
			{Header: "Acciones", Cell: personActions},
		},
		Empty: "No hay personas",
		RowID: func(p entity.Person) string { return fmt.Sprintf("person-%d", p.ID) },
	}
}

func personActions(p entity.Person) templ.Component {
	id := strconv.FormatInt(p.ID, 10)
	return component.HorizontalLayout("person-row-actions",
		component.LinkButton{
			Label: "Ver Tareas",
			Href:  TaskListPath + "?" + url.Values{PersonIDParam: {id}}.Encode(),
			Attrs: component.Attrs{"title": "Ver Tareas de " + p.FirstName},
		},
		component.LinkButton{
			Label:   "Borrar",
			Href:    PersonListPath + "?" + url.Values{ConfirmDeleteParam: {id}}.Encode(),
			Variant: component.VariantDanger,
			Attrs:   component.Attrs{"aria-label": "Borrar", "title": "Eliminar"},
		},
	)
}

func personDeleteDialog(p *entity.Person) templ.Component {
	return component.Dialog{
		ID:      "confirm-delete",
		Title:   p.String(),
		Message: "¿Estas seguro que deseas eliminar esta persona?",
		Actions: []templ.Component{
			component.Form{
				Action:   fmt.Sprintf("%s/people/%d/delete", PersonListPath, p.ID),
				Children: []templ.Component{component.Button{Label: "Borrar", Variant: component.VariantDanger}},
			},
			component.LinkButton{Label: "Cancelar", Href: PersonListPath},
		},
	}
}

// formSection hides the create fields until the form is opened.
func formSection(hidden bool, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div class="form-section">`
		if hidden {
			open = `<div class="form-section" hidden>`
		}
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
