package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"voicebot-backend/internal/middleware"
	"voicebot-backend/internal/models"
)

type chatProcessor interface {
	ProcessMessage(ctx context.Context, user models.Identity, message string) (*models.ChatTurn, error)
}

type completionService interface {
	Complete(ctx context.Context, message string) (string, error)
	Enabled() bool
}

type ChatHandler struct {
	chatService chatProcessor
	completion  completionService
}

func NewChatHandler(chatService chatProcessor, completion completionService) *ChatHandler {
	return &ChatHandler{chatService: chatService, completion: completion}
}

func (h *ChatHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	identity := middleware.GetIdentity(r.Context())

	turn, err := h.chatService.ProcessMessage(r.Context(), identity, req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ProcessMessageResponse{
		Response:  turn.BotResponse,
		Timestamp: turn.CreatedAt.Format(time.RFC3339),
		Status:    "success",
	})
}

// AIStatus reports whether the completion credential is configured.
func (h *ChatHandler) AIStatus(w http.ResponseWriter, r *http.Request) {
	enabled := h.completion.Enabled()
	writeJSON(w, http.StatusOK, models.AIStatus{
		Groq:         enabled,
		FallbackMode: !enabled,
	})
}

// TestCompletion fires one diagnostic call at the completion endpoint.
func (h *ChatHandler) TestCompletion(w http.ResponseWriter, r *http.Request) {
	response, err := h.completion.Complete(r.Context(), "Hello, can you hear me?")

	writeJSON(w, http.StatusOK, models.TestCompletionResponse{
		Success:       err == nil,
		Response:      response,
		APIKeyPresent: h.completion.Enabled(),
	})
}
