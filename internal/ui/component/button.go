package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	VariantPrimary = "primary"
	VariantDanger  = "danger"
)

type Button struct {
	Label   string
	Type    string
	Variant string
	Name    string
	Value   string
	Attrs   Attrs
}

func (b Button) Render(_ context.Context, w io.Writer) error {
	typ := b.Type
	if typ == "" {
		typ = "submit"
	}
	extra := ""
	if b.Name != "" {
		extra = attr("name", b.Name) + attr("value", b.Value)
	}
	return write(w,
		`<button`, attr("type", typ), attr("class", buttonClass(b.Variant)), extra, b.Attrs.String(), `>`,
		templ.EscapeString(b.Label), `</button>`,
	)
}

// LinkButton is a navigation action styled as a button.
type LinkButton struct {
	Label   string
	Href    string
	Variant string
	Attrs   Attrs
}

func (b LinkButton) Render(_ context.Context, w io.Writer) error {
	return write(w,
		`<a`, attr("href", b.Href), attr("class", buttonClass(b.Variant)), b.Attrs.String(), `>`,
		templ.EscapeString(b.Label), `</a>`,
	)
}

func buttonClass(variant string) string {
	if variant == "" {
		return "btn"
	}
	return "btn btn-" + variant
}
