package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/httputil"
	"github.com/matzehuels/barchart/pkg/observability"
)

// logRequests logs one line per request and reports it to the HTTP hooks.
// The route is the chi pattern ("/charts/{id}"), not the raw path, so hooks
// see a bounded set of values.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)

		logger := s.logger.With("id", httputil.RequestIDFrom(r.Context()))
		fields := []any{"method", r.Method, "route", route, "status", status, "bytes", ww.BytesWritten(), "duration", dur.Round(time.Microsecond)}
		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	})
}

// recoverPanics turns a handler panic into a 500 response.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := errs.New(errs.ErrCodeInternal, "panic: %v", rec)
			s.logger.Error("panic", "id", httputil.RequestIDFrom(r.Context()), "err", rec, "stack", string(debug.Stack()))
			observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
			httputil.WriteError(w, err)
		}()
		next.ServeHTTP(w, r)
	})
}

// fail writes err and reports server-side failures to the hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := httputil.StatusFor(err); status >= 500 {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "id", httputil.RequestIDFrom(r.Context()), "err", err)
	}
	httputil.WriteError(w, err)
}

func badParam(name, value string, err error) error {
	return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s %q", name, value)
}
