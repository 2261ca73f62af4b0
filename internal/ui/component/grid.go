package component

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Column declares one grid column as a header and a cell renderer.
type Column[T any] struct {
	Header string
	Cell   func(row T) templ.Component
}

// Grid renders rows as a table. More, when set, is rendered as the last body
// row and usually loads the next page.
type Grid[T any] struct {
	ID      string
	Columns []Column[T]
	Rows    []T
	Empty   string
	RowID   func(row T) string
	More    templ.Component
}

func (g Grid[T]) Render(ctx context.Context, w io.Writer) error {
	if err := write(w, `<table class="grid"`, attr("id", g.ID), `><thead><tr>`); err != nil {
		return err
	}
	for _, c := range g.Columns {
		if err := write(w, `<th>`, templ.EscapeString(c.Header), `</th>`); err != nil {
			return err
		}
	}
	if err := write(w, `</tr></thead><tbody`, attr("id", g.ID+"-body"), `>`); err != nil {
		return err
	}
	if len(g.Rows) == 0 && g.Empty != "" {
		if err := write(w, `<tr class="grid-empty"><td`, attr("colspan", strconv.Itoa(len(g.Columns))), `>`, templ.EscapeString(g.Empty), `</td></tr>`); err != nil {
			return err
		}
	}
	if err := g.Body().Render(ctx, w); err != nil {
		return err
	}
	return write(w, `</tbody></table>`)
}

// Body renders only the rows and the More row, for incremental loading.
func (g Grid[T]) Body() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, row := range g.Rows {
			if err := g.Row(row).Render(ctx, w); err != nil {
				return err
			}
		}
		return renderAll(ctx, w, g.More)
	})
}

// Row renders a single row.
func (g Grid[T]) Row(row T) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := ""
		if g.RowID != nil {
			id = attr("id", g.RowID(row))
		}
		if err := write(w, `<tr`, id, `>`); err != nil {
			return err
		}
		for _, c := range g.Columns {
			if err := write(w, `<td>`); err != nil {
				return err
			}
			if c.Cell != nil {
				if err := c.Cell(row).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := write(w, `</td>`); err != nil {
				return err
			}
		}
		return write(w, `</tr>`)
	})
}

// LoadMore is a placeholder row that HTMX replaces with the next page once it
// scrolls into view.
type LoadMore struct {
	URL     string
	Columns int
	Label   string
}

func (l LoadMore) Render(_ context.Context, w io.Writer) error {
	label := l.Label
	if label == "" {
		label = "Cargando..."
	}
	return write(w,
		`<tr class="grid-more"`, attr("hx-get", l.URL), ` hx-trigger="revealed" hx-swap="outerHTML">`,
		`<td`, attr("colspan", strconv.Itoa(l.Columns)), `>`, templ.EscapeString(label), `</td></tr>`,
	)
}
