package api

import (
	"net/http"

	"github.com/St1cky1/task-management/internal/api/handlers"
	"github.com/St1cky1/task-management/internal/logger"
	"github.com/St1cky1/task-management/internal/metrics"
	"github.com/St1cky1/task-management/internal/ui/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RouterDeps wires the handlers into the router. Health serves /healthz,
// usually the grpc-gateway mux. A nil Limiter disables write throttling.
type RouterDeps struct {
	Tasks   *handlers.TaskHandler
	People  *handlers.PersonHandler
	Metrics *metrics.Metrics
	Health  http.Handler
	Limiter *rate.Limiter
	Log     logrus.FieldLogger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(deps.Log))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if deps.Limiter != nil {
		r.Use(RateLimit(deps.Limiter, deps.Log))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, view.TaskListPath, http.StatusFound)
	})

	r.Route(view.TaskListPath, func(r chi.Router) {
		r.Get("/", deps.Tasks.TaskList)
		r.Get("/rows", deps.Tasks.Rows)
		r.Post("/tasks", deps.Tasks.CreateTask)
		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Post("/done", deps.Tasks.SetDone)
			r.Post("/delete", deps.Tasks.DeleteTask)
		})
	})

	r.Route(view.PersonListPath, func(r chi.Router) {
		r.Get("/", deps.People.PersonList)
		r.Get("/rows", deps.People.Rows)
		r.Post("/people", deps.People.CreatePerson)
		r.Post("/people/{id}/delete", deps.People.DeletePerson)
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	if deps.Health != nil {
		r.Handle("/healthz", deps.Health)
	}

	return r
}
