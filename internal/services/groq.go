package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured means no API key is set and the system runs in
// fallback-only mode.
var ErrNotConfigured = errors.New("groq API key is not configured")

const systemPrompt = "You are VoiceBot, a helpful AI assistant. Give informative, engaging responses. " +
	"Keep responses concise but informative (2-3 sentences maximum). Be friendly and conversational."

// GroqService issues a single chat-completion request per call against
// Groq's OpenAI-compatible endpoint. No retries; the caller decides what
// happens on failure.
type GroqService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGroqService(apiKey, model, baseURL string, timeout time.Duration) *GroqService {
	return &GroqService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Enabled reports whether a completion credential is configured.
func (s *GroqService) Enabled() bool {
	return s.apiKey != ""
}

// Complete sends the user text as the sole user turn and returns the
// trimmed text of the first choice, or an error for every other outcome.
func (s *GroqService) Complete(ctx context.Context, message string) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   150,
		Temperature: 0.7,
		TopP:        1,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Covers timeouts and transport failures
		log.Printf("Groq request failed: %v", err)
		return "", fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized:
		log.Println("Groq API: invalid API key")
		return "", fmt.Errorf("groq: invalid API key (401)")
	case http.StatusTooManyRequests:
		log.Println("Groq API: rate limit exceeded")
		return "", fmt.Errorf("groq: rate limited (429)")
	default:
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Groq API error %d: %s", resp.StatusCode, body)
		return "", fmt.Errorf("groq: unexpected status %d", resp.StatusCode)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("groq: no choices in response")
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("groq: empty completion text")
	}

	return text, nil
}
