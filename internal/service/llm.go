package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/config"
	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
	"github.com/jmo7728/5-final-daynight-jam/internal/quota"
)

// LLMService is the gateway to the external chat-completions API. One
// request, one response: no retries, no streaming. Every call is gated by
// the daily usage tracker before the network is touched.
type LLMService struct {
	apiKey          string
	apiURL          string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	usage           *quota.Tracker
}

// NewLLMService creates the gateway from configuration. The usage tracker
// is shared process-wide state owned by this service.
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("API key must not be empty")
	}

	return &LLMService{
		apiKey:          cfg.OpenAIAPIKey,
		apiURL:          cfg.OpenAIAPIURL,
		model:           cfg.ModelID,
		maxOutputTokens: cfg.MaxOutputTokens,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
		usage:           quota.NewTracker(cfg.MaxRequestsPerDay, cfg.MaxTokensPerDay),
	}, nil
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request.
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// UsageInfo is the token accounting reported by the service.
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the subset of the chat-completions response we consume.
type Response struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage UsageInfo `json:"usage"`
}

// EstimateTokens gives a rough token count for budget checks:
// tokens ~= words * 1.3, minimum 1.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	n := int(math.Round(float64(words) * 1.3))
	if n < 1 {
		n = 1
	}
	return n
}

// Usage exposes today's request/token counters.
func (s *LLMService) Usage() (requests, tokens int) {
	return s.usage.Usage()
}

// Generate sends a single prompt and returns the raw choice text plus the
// tokens recorded against the daily quota. Capacity is reserved before the
// network is touched: Reserve counts the request under one lock, so
// concurrent callers cannot share the last slot. A failed call releases
// the reservation; a successful one settles it to the reported cost.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, int, error) {
	tokensNeeded := EstimateTokens(prompt) + s.maxOutputTokens
	if err := s.usage.Reserve(tokensNeeded); err != nil {
		requests, tokens := s.usage.Usage()
		logger.Warn("daily usage limit reached",
			zap.Int("requests_today", requests),
			zap.Int("tokens_today", tokens),
		)
		return "", 0, ErrQuotaExceeded
	}

	content, tokensUsed, err := s.call(ctx, prompt, tokensNeeded)
	if err != nil {
		s.usage.Release(tokensNeeded)
		return "", 0, err
	}
	s.usage.Commit(tokensNeeded, tokensUsed)

	logger.Info("generated response from text-generation service",
		zap.String("model", s.model),
		zap.Int("content_length", len(content)),
		zap.Int("tokens_used", tokensUsed),
	)
	return content, tokensUsed, nil
}

// call performs the chat-completions request itself.
func (s *LLMService) call(ctx context.Context, prompt string, tokensNeeded int) (string, int, error) {
	reqBody := Request{
		Model:     s.model,
		Messages:  []Message{{Role: "user", Content: prompt}},
		MaxTokens: s.maxOutputTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error("text-generation request failed",
			zap.String("model", s.model),
			zap.Error(err),
		)
		return "", 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("%w: reading response: %v", ErrServiceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("text-generation service returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("model", s.model),
		)
		return "", 0, fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return "", 0, fmt.Errorf("%w: decoding response: %v", ErrServiceUnavailable, err)
	}

	if len(response.Choices) == 0 {
		return "", 0, fmt.Errorf("%w: no choices in response", ErrServiceUnavailable)
	}

	// Prefer the service-reported total; fall back to the estimate when
	// usage metadata is absent.
	tokensUsed := response.Usage.TotalTokens
	if tokensUsed == 0 {
		tokensUsed = tokensNeeded
	}

	return response.Choices[0].Message.Content, tokensUsed, nil
}
