package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shouni/menu-photo-studio/internal/config"
	"github.com/shouni/menu-photo-studio/internal/httpx"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
	"github.com/shouni/menu-photo-studio/pkg/orchestrator"
	"github.com/shouni/menu-photo-studio/pkg/session"
)

// MenuFetcher は URL からメニューテキストを取得します。本番では GuardedFetcher を使います。
type MenuFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

type Server struct {
	cfg      config.Config
	orch     *orchestrator.Orchestrator
	gallery  *gallery.Gallery
	sessions *session.Registry
	fetcher  MenuFetcher
	events   *eventHub
	origins  originPolicy
}

func NewServer(cfg config.Config, orch *orchestrator.Orchestrator, g *gallery.Gallery, sessions *session.Registry, fetcher MenuFetcher) *Server {
	origins := newOriginPolicy(cfg.CORSAllowOrigins)
	return &Server{
		cfg:      cfg,
		orch:     orch,
		gallery:  g,
		sessions: sessions,
		fetcher:  fetcher,
		events:   newEventHub(g, origins.checkOrigin),
		origins:  origins,
	}
}

// Close は接続中の WebSocket クライアントをすべて切断します。
func (s *Server) Close() {
	s.events.closeAll()
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/styles", s.handleStyles)

		r.Post("/runs", s.handleRunCreate)
		r.Get("/runs/current", s.handleRunCurrent)

		r.Get("/dishes", s.handleDishList)
		r.Get("/dishes/{id}", s.handleDishGet)
		r.Get("/dishes/{id}/image", s.handleDishImage)

		r.Get("/dishes/{id}/session", s.handleSessionGet)
		r.Post("/dishes/{id}/session/select", s.handleSessionSelect)
		r.Post("/dishes/{id}/session/edits", s.handleSessionEdit)

		r.Get("/events", s.handleEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not found.")
	})
	return r
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Add("Vary", "Origin")
			if allowed, ok := s.origins.allowOrigin(origin); ok {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
			}
		}
		// プリフライトはルーティング前に応答する
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
