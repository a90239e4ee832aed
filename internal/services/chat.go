package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"voicebot-backend/internal/models"
)

type completionClient interface {
	Complete(ctx context.Context, message string) (string, error)
}

type fallbackResponder interface {
	Respond(message, name string) string
}

type chatStore interface {
	Insert(ctx context.Context, turn *models.ChatTurn) error
}

// ChatService runs the message pipeline: validate, try the completion
// endpoint, fall back locally on failure, persist the finished turn.
type ChatService struct {
	completion completionClient
	fallback   fallbackResponder
	chatRepo   chatStore
	now        func() time.Time
}

func NewChatService(completion completionClient, fallback fallbackResponder, chatRepo chatStore) *ChatService {
	return &ChatService{
		completion: completion,
		fallback:   fallback,
		chatRepo:   chatRepo,
		now:        time.Now,
	}
}

// ProcessMessage produces the bot response for one user message and
// records the turn. A completion failure is recovered with the fallback
// responder and never surfaces to the caller; a persistence failure does,
// and in that case no turn is recorded.
func (s *ChatService) ProcessMessage(ctx context.Context, user models.Identity, message string) (*models.ChatTurn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}

	response, err := s.completion.Complete(ctx, message)
	if err != nil {
		log.Printf("Completion failed, using fallback: %v", err)
		response = s.fallback.Respond(message, user.Name)
	}

	turn := &models.ChatTurn{
		UserID:      user.UserID,
		UserMessage: message,
		BotResponse: response,
		CreatedAt:   s.now(),
	}

	if err := s.chatRepo.Insert(ctx, turn); err != nil {
		return nil, fmt.Errorf("failed to persist chat turn: %w", err)
	}

	return turn, nil
}
