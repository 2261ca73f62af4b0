package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func fieldID(name string) string {
	return "field-" + name
}

func fieldError(w io.Writer, msg string) error {
	if msg == "" {
		return nil
	}
	return write(w, `<small class="field-error">`, templ.EscapeString(msg), `</small>`)
}

type TextField struct {
	Name      string
	Label     string
	Value     string
	MaxLength int
	Required  bool
	ReadOnly  bool
	Error     string
	Attrs     Attrs
}

func (f TextField) Render(_ context.Context, w io.Writer) error {
	if err := write(w,
		`<label class="field" for="`, templ.EscapeString(fieldID(f.Name)), `"><span>`, templ.EscapeString(f.Label), `</span>`,
		`<input type="text" id="`, templ.EscapeString(fieldID(f.Name)), `"`, attr("name", f.Name), attr("value", f.Value),
		intAttr("maxlength", f.MaxLength), boolAttr("required", f.Required), boolAttr("readonly", f.ReadOnly),
		f.Attrs.String(), `>`,
	); err != nil {
		return err
	}
	if err := fieldError(w, f.Error); err != nil {
		return err
	}
	return write(w, `</label>`)
}

// DateField edits a calendar date as YYYY-MM-DD.
type DateField struct {
	Name     string
	Label    string
	Value    string
	ReadOnly bool
	Error    string
}

func (f DateField) Render(_ context.Context, w io.Writer) error {
	if err := write(w,
		`<label class="field" for="`, templ.EscapeString(fieldID(f.Name)), `"><span>`, templ.EscapeString(f.Label), `</span>`,
		`<input type="date" id="`, templ.EscapeString(fieldID(f.Name)), `"`, attr("name", f.Name), attr("value", f.Value),
		boolAttr("readonly", f.ReadOnly), `>`,
	); err != nil {
		return err
	}
	if err := fieldError(w, f.Error); err != nil {
		return err
	}
	return write(w, `</label>`)
}

type Option struct {
	Value string
	Label string
}

// Select is a combo box. Placeholder, when set, is an empty-valued first option.
type Select struct {
	Name        string
	Label       string
	Placeholder string
	Options     []Option
	Selected    string
	Error       string
	Attrs       Attrs
}

func (s Select) Render(_ context.Context, w io.Writer) error {
	if err := write(w,
		`<label class="field" for="`, templ.EscapeString(fieldID(s.Name)), `"><span>`, templ.EscapeString(s.Label), `</span>`,
		`<select id="`, templ.EscapeString(fieldID(s.Name)), `"`, attr("name", s.Name), s.Attrs.String(), `>`,
	); err != nil {
		return err
	}
	if s.Placeholder != "" {
		if err := write(w, `<option value=""`, boolAttr("selected", s.Selected == ""), `>`, templ.EscapeString(s.Placeholder), `</option>`); err != nil {
			return err
		}
	}
	for _, o := range s.Options {
		if err := write(w, `<option`, attr("value", o.Value), boolAttr("selected", o.Value == s.Selected), `>`, templ.EscapeString(o.Label), `</option>`); err != nil {
			return err
		}
	}
	if err := write(w, `</select>`); err != nil {
		return err
	}
	if err := fieldError(w, s.Error); err != nil {
		return err
	}
	return write(w, `</label>`)
}

type Checkbox struct {
	Name    string
	Label   string
	Checked bool
	Attrs   Attrs
}

func (c Checkbox) Render(_ context.Context, w io.Writer) error {
	return write(w,
		`<input type="checkbox"`, attr("name", c.Name), boolAttr("checked", c.Checked), attr("aria-label", c.Label),
		c.Attrs.String(), `>`,
	)
}

type Hidden struct {
	Name  string
	Value string
}

func (h Hidden) Render(_ context.Context, w io.Writer) error {
	return write(w, `<input type="hidden"`, attr("name", h.Name), attr("value", h.Value), `>`)
}

// Form wraps children into a <form>. A hidden form is kept in the page but
// not displayed.
type Form struct {
	ID       string
	Action   string
	Method   string
	Hidden   bool
	Attrs    Attrs
	Children []templ.Component
}

func (f Form) Render(ctx context.Context, w io.Writer) error {
	method := f.Method
	if method == "" {
		method = "post"
	}
	id := ""
	if f.ID != "" {
		id = attr("id", f.ID)
	}
	if err := write(w, `<form`, id, attr("method", method), attr("action", f.Action), boolAttr("hidden", f.Hidden), f.Attrs.String(), `>`); err != nil {
		return err
	}
	if err := renderAll(ctx, w, f.Children...); err != nil {
		return err
	}
	return write(w, `</form>`)
}
