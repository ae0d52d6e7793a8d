package api

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/barchart/pkg/buildinfo"
	"github.com/matzehuels/barchart/pkg/chart"
	errs "github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/httputil"
	bio "github.com/matzehuels/barchart/pkg/io"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/store"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

// handleRender renders a posted definition without storing it.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	s.render(w, r, def, format)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	def, err := readDefinition(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.Create(r.Context(), def)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/charts/"+rec.ID)
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct {
		Charts []store.Record `json:"charts"`
	}{recs})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type valuesRequest struct {
	Values []float64 `json:"values"`
}

// valuesResponse is what a live chart needs to animate to new values: the
// bars are the only geometry an update changes.
type valuesResponse struct {
	ID     string      `json:"id"`
	Values []float64   `json:"values"`
	Bars   []chart.Bar `json:"bars"`
}

// handleUpdateValues replaces a stored chart's values and returns the new
// bar geometry.
func (s *Server) handleUpdateValues(w http.ResponseWriter, r *http.Request) {
	var req valuesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.store.UpdateValues(r.Context(), chi.URLParam(r, "id"), req.Values)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	eng, _, err := s.runner.Plot(r.Context(), rec.Definition, pipeline.Options{})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l := eng.Layout()
	httputil.WriteJSON(w, http.StatusOK, valuesResponse{ID: rec.ID, Values: l.Values, Bars: l.Bars})
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, rec.Definition, chi.URLParam(r, "format"))
}

// render runs the pipeline for one format and writes the artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request, def *bio.Definition, format string) {
	opts, err := renderOptions(r, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(res.DefinitionHash))
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(res.Artifacts[format])
}

func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Formats: []string{format}}
	q := r.URL.Query()
	if v := q.Get("frame"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, badParam("frame", v, err)
		}
		opts.Frame = n
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, badParam("scale", v, err)
		}
		opts.Scale = f
	}
	opts.EmbedFont = q.Get("embed_font") == "true"
	return opts, nil
}

// readDefinition decodes a definition body as TOML or JSON depending on the
// request content type.
func readDefinition(r *http.Request) (*bio.Definition, error) {
	format := bio.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, badParam("content type", ct, err)
		}
		switch mt {
		case "application/toml", "text/toml":
			format = bio.FormatTOML
		case "application/json":
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported content type %q", mt)
		}
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, httputil.MaxBodyBytes+1))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > httputil.MaxBodyBytes {
		return nil, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", httputil.MaxBodyBytes)
	}
	return bio.ReadDefinition(bytes.NewReader(body), format)
}
