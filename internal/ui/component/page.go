package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`

const style = `<style>
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933}
nav{display:flex;gap:1rem;padding:.75rem 1.5rem;background:#1f2933}
nav a{color:#f5f7fa;text-decoration:none}
nav a.active{font-weight:600;text-decoration:underline}
main{padding:1.5rem}
.layout{display:flex;gap:.75rem;margin-bottom:1rem}
.layout-vertical{flex-direction:column}
.layout-horizontal{flex-direction:row;align-items:flex-end;flex-wrap:wrap}
.field{display:flex;flex-direction:column;gap:.25rem}
.field-error{color:#b42318}
.toolbar{display:flex;gap:.5rem;align-items:flex-end}
.btn{padding:.4rem .9rem;border:1px solid #9aa5b1;border-radius:4px;background:#fff;cursor:pointer;color:inherit;text-decoration:none}
.btn-primary{background:#2563eb;border-color:#2563eb;color:#fff}
.btn-danger{background:#b42318;border-color:#b42318;color:#fff}
.grid{border-collapse:collapse;width:100%}
.grid th,.grid td{border-bottom:1px solid #e4e7eb;padding:.4rem .6rem;text-align:left}
.dialog{border:1px solid #9aa5b1;border-radius:6px;padding:1rem;margin-bottom:1rem;background:#f5f7fa}
.notifications{position:fixed;bottom:1rem;right:1rem;display:flex;flex-direction:column;gap:.5rem}
.notification{padding:.6rem 1rem;border-radius:4px;color:#fff}
.notification-success{background:#047857}
.notification-error{background:#b42318}
</style>`

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// Page is the document shell around one view.
type Page struct {
	Title   string
	Nav     []NavLink
	Notices []templ.Component
	Body    templ.Component
}

func (p Page) Render(ctx context.Context, w io.Writer) error {
	if err := write(w,
		`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		`<title>`, templ.EscapeString(p.Title), `</title>`, htmxScript, style, `</head><body><nav>`,
	); err != nil {
		return err
	}
	for _, n := range p.Nav {
		class := ""
		if n.Active {
			class = attr("class", "active")
		}
		if err := write(w, `<a`, attr("href", n.Href), class, `>`, templ.EscapeString(n.Label), `</a>`); err != nil {
			return err
		}
	}
	if err := write(w, `</nav><main>`); err != nil {
		return err
	}
	if err := renderAll(ctx, w, p.Body); err != nil {
		return err
	}
	if err := write(w, `<div class="notifications" id="notifications">`); err != nil {
		return err
	}
	if err := renderAll(ctx, w, p.Notices...); err != nil {
		return err
	}
	return write(w, `</div></main></body></html>`)
}
