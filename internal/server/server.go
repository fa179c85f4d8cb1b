// Package server exposes the paint engine over HTTP. It wires a paint
// runner and a document store behind a JSON API:
//
//	POST   /v1/paint        paint a layout and store the result
//	GET    /v1/paints       list stored paint documents
//	GET    /v1/paints/{id}  fetch one document
//	DELETE /v1/paints/{id}  delete one document
//	GET    /healthz         liveness probe
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tessellaviz/tessella/pkg/errors"
	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/paint"
	"github.com/tessellaviz/tessella/pkg/store"
)

// DefaultListLimit bounds GET /v1/paints when no limit parameter is given.
const DefaultListLimit = 50

// Server handles HTTP requests for the paint API.
type Server struct {
	runner *paint.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server around a paint runner and a document store.
func New(runner *paint.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/paint", s.handlePaint)
		r.Get("/paints", s.handleList)
		r.Get("/paints/{id}", s.handleGet)
		r.Delete("/paints/{id}", s.handleDelete)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// =============================================================================
// Handlers
// =============================================================================

// PaintRequest is the body of POST /v1/paint.
type PaintRequest struct {
	Layout  layout.Layout `json:"layout"`
	Options paint.Options `json:"options"`
}

// PaintResponse is the body returned by POST /v1/paint.
type PaintResponse struct {
	Document store.Document `json:"document"`
	CacheHit bool           `json:"cache_hit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	var req PaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Layout, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := store.NewDocument(result)
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, PaintResponse{
		Document: doc,
		CacheHit: result.CacheInfo.Hit,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = errors.UserMessage(err)
	s.writeJSON(w, statusFor(code), resp)
}

// statusFor maps internal error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidTree, errors.ErrCodeInvalidPalette:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDocumentNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs one line per request with method, path, status and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
