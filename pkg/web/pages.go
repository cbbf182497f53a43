package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	StorageKeyUser  = "user"
	StorageKeyToken = "token"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	UserKey  string
	TokenKey string
	Outcome  Outcome
	IsStore  bool
}

// Handle serves the landing, callback and dashboard pages
type Handle struct {
	templates *template.Template
}

func NewHandle() *Handle {
	return &Handle{templates: templates}
}

func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Landing)
	r.Get("/auth/callback", h.Callback)
	r.Get("/dashboard", h.Dashboard)
}

func (h *Handle) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "landing.html", h.data(Outcome{}))
}

// Callback runs Bootstrap on the redirect query and renders the result
func (h *Handle) Callback(w http.ResponseWriter, r *http.Request) {
	outcome := Bootstrap(r.URL.Query())
	if outcome.Kind == OutcomeError {
		slog.WarnContext(r.Context(), "Authentication callback failed", "message", outcome.Message, "action", outcome.Action)
	}
	h.render(w, r, "callback.html", h.data(outcome))
}

func (h *Handle) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "dashboard.html", h.data(Outcome{}))
}

func (h *Handle) data(outcome Outcome) pageData {
	return pageData{
		UserKey:  StorageKeyUser,
		TokenKey: StorageKeyToken,
		Outcome:  outcome,
		IsStore:  outcome.Kind == OutcomeStore,
	}
}

func (h *Handle) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "page", name, "error", err)
	}
}
