package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newssummarizer/internal/news"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	maxFormBytes = 64 << 10
	corsMaxAge   = 300
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewsSummarizer is the pipeline behind every page submission.
type NewsSummarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
}

type Server struct {
	news  NewsSummarizer
	page  *template.Template
	model string
	log   *slog.Logger
}

type pageData struct {
	URL     string
	Warning string
	Error   string
	Summary string
	Model   string
}

type apiRequest struct {
	URL string `json:"url"`
}

type apiResponse struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func NewServer(n NewsSummarizer, model string, log *slog.Logger) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		news:  n,
		page:  page,
		model: model,
		log:   log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSubmit)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         corsMaxAge,
		}))
		r.Post("/summarize", s.handleAPISummarize)
	})

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageData{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, pageData{Error: "⚠️ Invalid form submission."})
		return
	}

	url := strings.TrimSpace(r.PostForm.Get("url"))
	data := pageData{URL: url}

	summary, err := s.news.Summarize(r.Context(), url)
	switch {
	case err == nil:
		data.Summary = summary
		s.render(w, r, http.StatusOK, data)
	case errors.Is(err, news.ErrEmptyURL):
		data.Warning = news.Banner(err)
		s.render(w, r, http.StatusOK, data)
	case news.KindOf(err) == news.KindFetch:
		data.Error = news.Banner(err)
		s.render(w, r, http.StatusOK, data)
	default:
		data.Error = news.Banner(err)
		s.render(w, r, http.StatusBadGateway, data)
	}
}

func (s *Server) handleAPISummarize(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, apiResponse{Error: "invalid JSON body"})
		return
	}

	summary, err := s.news.Summarize(r.Context(), req.URL)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, apiResponse{Summary: summary})
	case errors.Is(err, news.ErrEmptyURL):
		s.writeJSON(w, r, http.StatusBadRequest, apiResponse{Error: news.Banner(err), Kind: "empty_url"})
	case news.KindOf(err) == news.KindFetch:
		s.writeJSON(w, r, http.StatusUnprocessableEntity, apiResponse{Error: news.Banner(err), Kind: news.KindFetch.String()})
	default:
		s.writeJSON(w, r, http.StatusBadGateway, apiResponse{Error: news.Banner(err), Kind: news.KindSummarize.String()})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Model = s.model

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := s.page.Execute(w, data); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render page",
			"error", err,
			"status", status,
			"requestID", middleware.GetReqID(r.Context()))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to write JSON response",
			"error", err,
			"status", status,
			"requestID", middleware.GetReqID(r.Context()))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.InfoContext(r.Context(), "Request is served",
			"requestID", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"durationMs", time.Since(start).Milliseconds())
	})
}
