// Package api implements the barchart HTTP server.
//
// # Routes
//
//	GET    /healthz                        build info and liveness
//	POST   /render?format=svg              render a posted definition
//	POST   /charts                         store a definition
//	GET    /charts                         list stored charts
//	GET    /charts/{id}                    get one chart
//	DELETE /charts/{id}                    delete a chart
//	PUT    /charts/{id}/values             replace the bar values
//	GET    /charts/{id}/render.{format}    render a stored chart
//
// Definitions are posted as JSON, or as TOML with Content-Type
// application/toml. Render endpoints accept frame and scale query
// parameters with the meaning of [pipeline.Options].
//
// Errors are JSON objects {"code": ..., "message": ...} with a status
// derived from the error code.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/httputil"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/store"
)

// DefaultRequestTimeout bounds the time spent on one request.
const DefaultRequestTimeout = 30 * time.Second

// Server serves the chart API. Create it with [New] and mount [Server.Handler].
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server that renders with runner and persists charts in st.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: st, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)

	r.Route("/charts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Put("/values", s.handleUpdateValues)
			r.Get("/render.{format}", s.handleRenderStored)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorBody{Code: errs.ErrCodeNotFound, Message: "no such route"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorBody{Code: errs.ErrCodeInvalidInput, Message: "method not allowed"})
	})
	return r
}
