package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one persisted user-message/bot-response pair.
// Turns are immutable after insert and retained indefinitely.
type ChatTurn struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProcessMessageRequest is the payload sent to the chat endpoint.
type ProcessMessageRequest struct {
	Message string `json:"message"`
}

// ProcessMessageResponse is the reply from the chat endpoint.
type ProcessMessageResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// AIStatus reports whether the completion credential is configured
// and whether the system is serving canned fallback responses only.
type AIStatus struct {
	Groq         bool `json:"groq"`
	FallbackMode bool `json:"fallback_mode"`
}

type TestCompletionResponse struct {
	Success       bool   `json:"success"`
	Response      string `json:"response"`
	APIKeyPresent bool   `json:"api_key_present"`
}
