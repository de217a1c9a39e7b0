// Package api exposes the editor's HTTP surface: schema-validated CRUD
// over the data collections, referential integrity checks, and the
// dependency graph.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mizuiro-games/gamedata/pkg/errors"
	"github.com/mizuiro-games/gamedata/pkg/schema"
	"github.com/mizuiro-games/gamedata/pkg/service"
)

// Server wires the data service into an HTTP handler.
type Server struct {
	svc     *service.Service
	log     *charmlog.Logger
	origins []string
	mux     *chi.Mux
}

// New builds a Server around svc. origins is the CORS allowlist; "*"
// allows any origin.
func New(svc *service.Service, logger *charmlog.Logger, origins []string) *Server {
	if logger == nil {
		logger = charmlog.Default()
	}
	s := &Server{
		svc:     svc,
		log:     logger,
		origins: origins,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.cors)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/data", func(r chi.Router) {
		r.Get("/types", s.handleTypes)
		r.Get("/validation/references", s.handleValidateReferences)
		r.Get("/graph/dependencies", s.handleGraph)
		r.Get("/graph/dot", s.handleGraphDOT)
		r.Get("/export/all", s.handleExport)
		r.Post("/import/all", s.handleImport)

		r.Get("/{type}", s.handleList)
		r.Post("/{type}", s.handleCreate)
		r.Post("/{type}/bulk", s.handleBulkCreate)
		r.Get("/{type}/{id}", s.handleGet)
		r.Put("/{type}/{id}", s.handleUpdate)
		r.Delete("/{type}/{id}", s.handleDelete)
	})
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// cors answers preflight requests and stamps the allow headers on
// responses for allowed origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.origins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func notFound(typeName, id string) error {
	return errors.New(errors.ErrCodeNotFound, "%s record %q not found", typeName, id)
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// writeError maps structured error codes onto HTTP statuses and emits
// a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidCollection,
		errors.ErrCodeValidation,
		errors.ErrCodeDuplicateID,
		errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	body := map[string]any{
		"code":    string(code),
		"message": errors.UserMessage(err),
	}

	// Validation failures carry field-level details worth surfacing.
	var verr *schema.ValidationError
	if stderrors.As(err, &verr) {
		body["details"] = verr.Violations
	}

	writeJSON(w, status, map[string]any{"error": body})
}
