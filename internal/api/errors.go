package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shouni/menu-photo-studio/internal/httpx"
	"github.com/shouni/menu-photo-studio/pkg/domain"
)

// statusFor はドメインエラーを HTTP ステータスに対応付けます。
func statusFor(err error) int {
	var dishErr *domain.DishError
	switch {
	case errors.Is(err, domain.ErrEmptyMenu),
		errors.Is(err, domain.ErrUnknownStyle),
		errors.Is(err, domain.ErrMenuURLRejected),
		errors.Is(err, domain.ErrEmptyInstruction),
		errors.Is(err, domain.ErrVersionNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDishNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRunInProgress),
		errors.Is(err, domain.ErrEditInProgress),
		errors.Is(err, domain.ErrNoImage):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoDishesFound),
		errors.Is(err, domain.ErrMenuNotUnderstood):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEditFailed), errors.As(err, &dishErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "予期しないエラー", "path", r.URL.Path, "error", err)
	}
	httpx.WriteError(w, status, domain.UserMessage(err))
}
