package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"collections-agent/internal/config"
	"collections-agent/internal/ctxutil"
	"collections-agent/internal/domain"
)

const (
	reasonGemini            = "gemini_error"
	reasonGeminiRateLimited = "gemini_rate_limited"
	reasonGeminiEmpty       = "gemini_empty_reply"
)

// Generator is the generative-AI provider. *gemini.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, turns []domain.ChatTurn) (string, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// ChatRequest is the input to one AI reply. History is the conversation
// before Message.
type ChatRequest struct {
	Message  string
	Borrower domain.Borrower
	History  []domain.Message
}

// ChatService is the AI chat adapter.
type ChatService struct {
	llm    Generator
	caps   CapabilityChecker
	logger *slog.Logger
}

func NewChatService(llm Generator, caps CapabilityChecker, logger *slog.Logger) (*ChatService, error) {
	if llm == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if caps == nil {
		return nil, errors.New("usecase: capability checker must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{llm: llm, caps: caps, logger: logger}, nil
}

// Reply obtains one AI reply for req. It makes exactly one provider call.
func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", newError(ErrorInvalidInput, "empty_message", nil)
	}
	if err := requireCapability(s.caps, config.CapabilityChat); err != nil {
		s.logger.Error("chat provider not configured", "err", err, "correlation_id", ctxutil.CorrelationID(ctx))
		return "", err
	}

	reply, err := s.llm.Generate(ctx, buildChatTurns(req.Borrower, req.Message, req.History))
	if err != nil {
		s.logger.Error("chat provider call failed", "err", err, "borrower_id", req.Borrower.ID, "correlation_id", ctxutil.CorrelationID(ctx))
		if status, ok := upstreamStatusCode(err); ok && status == http.StatusTooManyRequests {
			return "", newError(ErrorRateLimited, reasonGeminiRateLimited, err)
		}
		return "", newError(ErrorUpstream, reasonGemini, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", newError(ErrorUpstream, reasonGeminiEmpty, errors.New("empty reply"))
	}
	return reply, nil
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
