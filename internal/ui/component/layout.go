package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Layout is a named assembly of child widgets laid out in one direction.
type Layout struct {
	Name      string
	Direction Direction
	Children  []templ.Component
}

func HorizontalLayout(name string, children ...templ.Component) Layout {
	return Layout{Name: name, Direction: Horizontal, Children: children}
}

func VerticalLayout(name string, children ...templ.Component) Layout {
	return Layout{Name: name, Direction: Vertical, Children: children}
}

func (l Layout) Render(ctx context.Context, w io.Writer) error {
	dir := l.Direction
	if dir == "" {
		dir = Vertical
	}
	name := ""
	if l.Name != "" {
		name = attr("data-layout", l.Name)
	}
	if err := write(w, `<div`, attr("class", "layout layout-"+string(dir)), name, `>`); err != nil {
		return err
	}
	if err := renderAll(ctx, w, l.Children...); err != nil {
		return err
	}
	return write(w, `</div>`)
}

type Toolbar struct {
	Items []templ.Component
}

func (t Toolbar) Render(ctx context.Context, w io.Writer) error {
	if err := write(w, `<div class="toolbar" role="toolbar">`); err != nil {
		return err
	}
	if err := renderAll(ctx, w, t.Items...); err != nil {
		return err
	}
	return write(w, `</div>`)
}

// Dialog is a confirm step shown inline above the grid.
type Dialog struct {
	ID      string
	Title   string
	Message string
	Actions []templ.Component
}

func (d Dialog) Render(ctx context.Context, w io.Writer) error {
	id := ""
	if d.ID != "" {
		id = attr("id", d.ID)
	}
	if err := write(w,
		`<div class="dialog" role="dialog" aria-modal="true"`, id, `>`,
		`<h2>`, templ.EscapeString(d.Title), `</h2><p>`, templ.EscapeString(d.Message), `</p>`,
		`<div class="dialog-actions">`,
	); err != nil {
		return err
	}
	if err := renderAll(ctx, w, d.Actions...); err != nil {
		return err
	}
	return write(w, `</div></div>`)
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a toast message.
type Notification struct {
	Severity Severity
	Text     string
}

func (n Notification) Render(_ context.Context, w io.Writer) error {
	sev := n.Severity
	if sev == "" {
		sev = SeveritySuccess
	}
	role := "status"
	if sev == SeverityError {
		role = "alert"
	}
	return write(w,
		`<div`, attr("class", "notification notification-"+string(sev)), attr("role", role), `>`,
		templ.EscapeString(n.Text), `</div>`,
	)
}
