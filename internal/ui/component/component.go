// Package component holds the HTML widgets the pages are assembled from.
// Every widget is a plain value implementing templ.Component, so pages are
// built by composition rather than by extending a base widget.
package component

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/a-h/templ"
)

// Attrs are extra HTML attributes, mostly hx-* wiring. An empty value renders
// a bare attribute.
type Attrs map[string]string

func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out string
	for _, k := range keys {
		if a[k] == "" {
			out += " " + templ.EscapeString(k)
			continue
		}
		out += attr(k, a[k])
	}
	return out
}

// Text renders s escaped.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w, templ.EscapeString(s))
	})
}

// Group renders children one after another, skipping nil entries.
func Group(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderAll(ctx, w, children...)
	})
}

func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

func boolAttr(name string, on bool) string {
	if !on {
		return ""
	}
	return " " + name
}

func intAttr(name string, v int) string {
	if v <= 0 {
		return ""
	}
	return attr(name, strconv.Itoa(v))
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func renderAll(ctx context.Context, w io.Writer, children ...templ.Component) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
