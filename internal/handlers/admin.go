package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"voicebot-backend/internal/middleware"
	"voicebot-backend/internal/models"
)

type adminUserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type adminChatReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.ChatTurn, error)
}

type AdminHandler struct {
	userRepo adminUserReader
	chatRepo adminChatReader
}

func NewAdminHandler(userRepo adminUserReader, chatRepo adminChatReader) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, chatRepo: chatRepo}
}

// Database dumps users and the 50 most recent chat turns. Development
// tooling; restricted to admin accounts.
func (h *AdminHandler) Database(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !user.IsAdmin {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Admin access required", r))
		return
	}

	users, err := h.userRepo.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	chats, err := h.chatRepo.ListRecent(r.Context(), 50)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"chats": chats,
	})
}
