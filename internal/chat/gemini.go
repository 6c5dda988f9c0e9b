package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"aidoc/internal/logging"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// =============================================================================
// GOOGLE GENAI CHAT SESSION
// =============================================================================

// sender is the part of *genai.Chat the adapter uses.
type sender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiConfig holds configuration for the Gemini chat session.
type GeminiConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Timeout           time.Duration // per SendMessage call
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:            apiKey,
		Model:             "gemini-2.5-flash",
		SystemInstruction: SystemInstruction,
		Timeout:           120 * time.Second,
	}
}

// GeminiChat is a Client backed by one long-lived genai chat session.
type GeminiChat struct {
	chat    sender
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiChat creates the genai client and opens the chat session once.
func NewGeminiChat(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiChat, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiConfig("").Model
	}
	if strings.TrimSpace(cfg.SystemInstruction) == "" {
		cfg.SystemInstruction = SystemInstruction
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	session, err := client.Chats.Create(ctx, cfg.Model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return newGeminiChat(session, cfg, logger), nil
}

func newGeminiChat(s sender, cfg GeminiConfig, logger *zap.Logger) *GeminiChat {
	return &GeminiChat{
		chat:    s,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logging.For(logger, logging.CategoryAPI),
	}
}

// Model returns the model identifier the session talks to.
func (g *GeminiChat) Model() string {
	return g.model
}

// SendMessage appends text to the remote conversation and returns the reply text.
func (g *GeminiChat) SendMessage(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyPrompt
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.chat.SendMessage(ctx, genai.Part{Text: text})
	elapsed := time.Since(start)
	if err != nil {
		rerr := classify(ctx, err)
		g.logger.Warn("send message failed",
			zap.String("model", g.model),
			zap.String("reason", rerr.Reason),
			zap.Int("status", rerr.Status),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", rerr
	}
	if resp == nil {
		return "", &RemoteError{Reason: ReasonMalformed, Err: errors.New("empty response")}
	}

	reply := resp.Text()
	if strings.TrimSpace(reply) == "" {
		cause := errors.New("response contained no text")
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			cause = fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", &RemoteError{Reason: ReasonMalformed, Err: cause}
	}

	g.logger.Debug("send message",
		zap.String("model", g.model),
		zap.Int("prompt_chars", len(text)),
		zap.Int("reply_chars", len(reply)),
		zap.Duration("elapsed", elapsed))

	return reply, nil
}

// classify turns an SDK or transport error into a RemoteError.
func classify(ctx context.Context, err error) *RemoteError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		reason := ReasonAPI
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			reason = ReasonAuth
		}
		// The API answers 400 INVALID_ARGUMENT for a bad key.
		if apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "api key") {
			reason = ReasonAuth
		}
		return &RemoteError{Reason: reason, Status: apiErr.Code, Err: err}
	}

	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &RemoteError{Reason: ReasonCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &RemoteError{Reason: ReasonTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &RemoteError{Reason: ReasonTimeout, Err: err}
		}
		return &RemoteError{Reason: ReasonNetwork, Err: err}
	}

	return &RemoteError{Reason: ReasonNetwork, Err: err}
}
