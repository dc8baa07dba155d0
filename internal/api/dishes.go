package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shouni/menu-photo-studio/internal/httpx"
	"github.com/shouni/menu-photo-studio/pkg/domain"
)

type selectRequest struct {
	Version *int `json:"version"`
}

type editRequest struct {
	Instruction string `json:"instruction"`
}

func (s *Server) handleDishList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"dishes": toDishViews(s.gallery.List()),
	})
}

func (s *Server) handleDishGet(w http.ResponseWriter, r *http.Request) {
	d, ok := s.gallery.Get(chi.URLParam(r, "id"))
	if !ok {
		writeDomainError(w, r, domain.ErrDishNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDishView(d))
}

// handleDishImage は現在の画像、または version 指定時は履歴の画像をそのまま返します。
func (s *Server) handleDishImage(w http.ResponseWriter, r *http.Request) {
	d, ok := s.gallery.Get(chi.URLParam(r, "id"))
	if !ok {
		writeDomainError(w, r, domain.ErrDishNotFound)
		return
	}

	img := d.CurrentImage
	if raw := r.URL.Query().Get("version"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			writeDomainError(w, r, domain.ErrVersionNotFound)
			return
		}
		v, ok := d.Version(index)
		if !ok {
			writeDomainError(w, r, domain.ErrVersionNotFound)
			return
		}
		img = v
	}
	if img.IsEmpty() {
		writeDomainError(w, r, domain.ErrNoImage)
		return
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(img.Data)
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Open(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	v, err := sess.View()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionView(v))
}

func (s *Server) handleSessionSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBytes, &req); err != nil || req.Version == nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sess, err := s.sessions.Open(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := sess.Select(*req.Version); err != nil {
		writeDomainError(w, r, err)
		return
	}
	v, err := sess.View()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionView(v))
}

func (s *Server) handleSessionEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := httpx.DecodeJSON(w, r, maxRequestBytes, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sess, err := s.sessions.Open(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	updated, err := sess.Submit(r.Context(), req.Instruction)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDishView(updated))
}
