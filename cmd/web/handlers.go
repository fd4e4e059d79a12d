package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/rocketman/internal/leaderboard"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// pageData is what index.html renders.
type pageData struct {
	SSHHost string
	Entries []leaderboard.Entry
}

type handlers struct {
	store   *leaderboard.Store
	sshHost string
	logger  *log.Logger
}

func newRouter(store *leaderboard.Store, sshHost string, logger *log.Logger) *mux.Router {
	h := &handlers{store: store, sshHost: sshHost, logger: logger}

	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", h.leaderboardJSON).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	return r
}

func (h *handlers) entries(ctx context.Context) ([]leaderboard.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return h.store.Read(ctx)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries(r.Context())
	if err != nil {
		h.logger.Warn("leaderboard unavailable", "err", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{SSHHost: h.sshHost, Entries: entries}); err != nil {
		h.logger.Error("render page", "err", err)
	}
}

func (h *handlers) leaderboardJSON(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries(r.Context())
	if err != nil {
		h.logger.Error("read leaderboard", "err", err)
		http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.logger.Error("encode leaderboard", "err", err)
	}
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr, "took", time.Since(start))
	})
}
