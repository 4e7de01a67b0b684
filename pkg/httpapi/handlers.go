package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/floweave/floweave/pkg/errors"
	"github.com/floweave/floweave/pkg/pipeline"
	"github.com/floweave/floweave/pkg/render"
	"github.com/floweave/floweave/pkg/repair"
	"github.com/floweave/floweave/pkg/store"
	"github.com/floweave/floweave/pkg/validate"
	"github.com/floweave/floweave/pkg/workflow"
)

// lintRequest is the envelope shared by the lint, layout, and render
// endpoints. Options mirror pipeline.Options minus runtime fields.
type lintRequest struct {
	Text    string `json:"text"`
	Source  string `json:"source,omitempty"`
	Repair  bool   `json:"repair,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

func (req *lintRequest) options() pipeline.Options {
	return pipeline.Options{
		Source:  req.Source,
		Repair:  req.Repair,
		Refresh: req.Refresh,
	}
}

// lintResponse carries everything a client needs to show a lint report.
type lintResponse struct {
	OK           bool                  `json:"ok"`
	Text         string                `json:"text"`
	DocumentHash string                `json:"document_hash"`
	RepairNotes  []repair.Note         `json:"repair_notes,omitempty"`
	ParseErrors  []workflow.ParseError `json:"parse_errors,omitempty"`
	Issues       []validate.Issue      `json:"issues,omitempty"`
	Cached       bool                  `json:"cached"`
}

func toLintResponse(result *pipeline.Result) lintResponse {
	return lintResponse{
		OK:           result.OK(),
		Text:         result.Text,
		DocumentHash: result.DocumentHash,
		RepairNotes:  result.RepairNotes,
		ParseErrors:  result.ParseErrors,
		Issues:       result.Issues,
		Cached:       result.CacheInfo.LintHit,
	}
}

func (s *Server) decodeLintRequest(w http.ResponseWriter, r *http.Request) (*lintRequest, bool) {
	var req lintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return nil, false
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "text is required"))
		return nil, false
	}
	return &req, true
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLintRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Lint(r.Context(), req.Text, req.options())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toLintResponse(result))
}

// layoutResponse extends the lint report with a positioned document.
type layoutResponse struct {
	lintResponse
	Document *workflow.Document `json:"document,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLintRequest(w, r)
	if !ok {
		return
	}

	opts := req.options()
	opts.Layout = true
	result, err := s.runner.Execute(r.Context(), req.Text, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		lintResponse: toLintResponse(result),
		Document:     result.Positioned,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeLintRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Lint(r.Context(), req.Text, req.options())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if result.Document == nil {
		// Nothing to draw; return the lint report instead.
		writeJSON(w, http.StatusUnprocessableEntity, toLintResponse(result))
		return
	}

	dot := render.ToDOT(result.Document, result.Validation, render.Options{Detailed: true})
	svg, err := render.SVG(dot)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// =============================================================================
// Document Endpoints
// =============================================================================

type createDocumentRequest struct {
	lintRequest
	Name string `json:"name,omitempty"`
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable,
			errors.New(errors.ErrCodeUnsupported, "document store not configured"))
		return false
	}
	return true
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "text is required"))
		return
	}

	result, err := s.runner.Lint(r.Context(), req.Text, req.options())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	name := req.Name
	if name == "" && result.Document != nil {
		name = result.Document.App.Name
	}
	rec := store.NewRecord(name, result.Text, result.Validation)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeStore, err, "save document"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeStore, err, "list documents"))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == store.ErrNotFound {
		s.writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "document not found"))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeStore, err, "load document"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err == store.ErrNotFound {
		s.writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "document not found"))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeStore, err, "delete document"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
