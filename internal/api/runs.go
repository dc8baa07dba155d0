package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/menu-photo-studio/internal/httpx"
	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/orchestrator"
)

const (
	maxRequestBytes = 1 << 20
	maxMenuBytes    = 256 << 10
)

type runCreateRequest struct {
	MenuText string `json:"menu_text"`
	MenuURL  string `json:"menu_url"`
	Style    string `json:"style"`
}

type runView struct {
	ID     string             `json:"id"`
	Style  string             `json:"style"`
	State  orchestrator.State `json:"state"`
	Done   bool               `json:"done"`
	Dishes []dishView         `json:"dishes,omitempty"`
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"default": domain.DefaultStyleID,
		"styles":  domain.Styles(),
	})
}

func (s *Server) handleRunCreate(w http.ResponseWriter, r *http.Request) {
	var req runCreateRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	style, err := domain.StyleByID(strings.TrimSpace(req.Style))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	menuText := req.MenuText
	if strings.TrimSpace(menuText) == "" && strings.TrimSpace(req.MenuURL) != "" {
		menuText, err = s.fetchMenu(r.Context(), strings.TrimSpace(req.MenuURL))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	run, err := s.orch.Start(r.Context(), menuText, style)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, runView{
		ID:     run.ID,
		Style:  run.Style,
		State:  orchestrator.StateGenerating,
		Dishes: toDishViews(run.Dishes),
	})
}

func (s *Server) handleRunCurrent(w http.ResponseWriter, r *http.Request) {
	state, run := s.orch.Current()
	if run == nil {
		httpx.WriteJSON(w, http.StatusOK, runView{State: state})
		return
	}

	done := false
	select {
	case <-run.Done():
		done = true
	default:
	}
	httpx.WriteJSON(w, http.StatusOK, runView{
		ID:    run.ID,
		Style: run.Style,
		State: state,
		Done:  done,
	})
}

// fetchMenu は外部 URL からメニューテキストを取得します。内部ネットワーク宛ては拒否します。
func (s *Server) fetchMenu(ctx context.Context, rawURL string) (string, error) {
	if s.fetcher == nil {
		return "", domain.ErrMenuURLRejected
	}
	if err := checkMenuURL(ctx, rawURL); err != nil {
		slog.WarnContext(ctx, "メニューURLを拒否しました", "url", rawURL, "error", err)
		return "", domain.ErrMenuURLRejected
	}

	data, err := s.fetcher.FetchBytes(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "メニューの取得に失敗しました", "url", rawURL, "error", err)
		return "", domain.ErrMenuURLRejected
	}
	return string(data), nil
}
