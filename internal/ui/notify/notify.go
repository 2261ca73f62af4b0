// Package notify carries short-lived user notices across a redirect in a
// flash cookie.
package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/St1cky1/task-management/internal/ui/component"
	"github.com/a-h/templ"
)

const cookieName = "flash"

type Message struct {
	Severity component.Severity `json:"severity"`
	Text     string             `json:"text"`
}

func Success(text string) Message {
	return Message{Severity: component.SeveritySuccess, Text: text}
}

func Error(text string) Message {
	return Message{Severity: component.SeverityError, Text: text}
}

func (m Message) Component() templ.Component {
	return component.Notification{Severity: m.Severity, Text: m.Text}
}

// Components turns messages into toasts.
func Components(msgs []Message) []templ.Component {
	out := make([]templ.Component, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Component())
	}
	return out
}

// Flash stores msgs for the next request, appending to pending ones.
func Flash(w http.ResponseWriter, r *http.Request, msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	pending := read(r)
	data, err := json.Marshal(append(pending, msgs...))
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending messages and clears the cookie.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := read(r)
	if _, err := r.Cookie(cookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return msgs
}

func read(r *http.Request) []Message {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
