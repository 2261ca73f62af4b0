package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/ui/view"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// PersonService - то, что нужно страницам от сервиса людей
type PersonService interface {
	view.PersonDirectory
	CreatePerson(ctx context.Context, firstName, lastName, dni string) (*entity.Person, error)
	DeletePerson(ctx context.Context, id int64) error
}

// TaskService - то, что нужно страницам от сервиса задач
type TaskService interface {
	view.TaskSource
	CreateTask(ctx context.Context, description string, person *entity.Person, dueDate *time.Time) (*entity.Task, error)
	SetDone(ctx context.Context, id int64, done bool) (*entity.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

const htmxHeader = "HX-Request"

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(htmxHeader), "true")
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

// redirect finishes a POST with 303 so a reload does not resubmit it.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func serverError(w http.ResponseWriter, log logrus.FieldLogger, err error, msg string) {
	log.WithError(err).Error(msg)
	http.Error(w, "Internal server error", http.StatusInternalServerError) // 500
}

func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func pageRequest(q url.Values) entity.PageRequest {
	page, err := entity.ParsePageRequest(q)
	if err != nil {
		return entity.NewPageRequest(0, entity.DefaultPageSize)
	}
	return page
}

// returnTarget accepts only local addresses under path.
func returnTarget(raw, path string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path != path {
		return path
	}
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}
