package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"voicebot-backend/internal/middleware"
	"voicebot-backend/internal/models"
)

type userReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type chatHistoryReader interface {
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatTurn, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type UserHandler struct {
	userRepo userReader
	chatRepo chatHistoryReader
}

func NewUserHandler(userRepo userReader, chatRepo chatHistoryReader) *UserHandler {
	return &UserHandler{userRepo: userRepo, chatRepo: chatRepo}
}

// Me returns the profile view: the user plus their total chat count.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return
	}

	count, err := h.chatRepo.CountByUser(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":       user,
		"chat_count": count,
	})
}

// History returns the user's most recent chat turns, newest first.
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 50 {
		limit = 50
	}

	turns, err := h.chatRepo.ListRecentByUser(r.Context(), identity.UserID, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": turns})
}
