package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"collections-agent/internal/domain"
	"collections-agent/internal/usecase"
)

type BorrowerLister interface {
	ListBorrowers() []domain.Borrower
}

type ChatReplier interface {
	Reply(ctx context.Context, req usecase.ChatRequest) (string, error)
}

type Notifier interface {
	SendWhatsApp(ctx context.Context, to, body string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

type ConversationReader interface {
	Conversation(borrowerID int) (usecase.Snapshot, error)
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Directory     BorrowerLister
	Chat          ChatReplier
	Notifier      Notifier
	Turns         usecase.TurnSubmitter
	Conversations ConversationReader
	Logger        *slog.Logger
}

// Handler handles HTTP requests.
type Handler struct {
	directory     BorrowerLister
	chat          ChatReplier
	notifier      Notifier
	turns         usecase.TurnSubmitter
	conversations ConversationReader
	logger        *slog.Logger
}

func NewHandler(d Deps) (*Handler, error) {
	switch {
	case d.Directory == nil:
		return nil, errors.New("httpapi: directory must not be nil")
	case d.Chat == nil:
		return nil, errors.New("httpapi: chat replier must not be nil")
	case d.Notifier == nil:
		return nil, errors.New("httpapi: notifier must not be nil")
	case d.Turns == nil:
		return nil, errors.New("httpapi: turn submitter must not be nil")
	case d.Conversations == nil:
		return nil, errors.New("httpapi: conversation reader must not be nil")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		directory:     d.Directory,
		chat:          d.Chat,
		notifier:      d.Notifier,
		turns:         d.Turns,
		conversations: d.Conversations,
		logger:        logger,
	}, nil
}

// RegisterRoutes registers all routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/borrowers", h.ListBorrowers)

	// Provider adapters
	api.POST("/chat", h.Chat)
	api.POST("/whatsapp", h.WhatsApp)
	api.POST("/email", h.Email)

	// Orchestrated conversations
	api.GET("/conversations/:borrower_id", h.GetConversation)
	api.POST("/conversations/:borrower_id/messages", h.SubmitMessage)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// ListBorrowers returns the borrower directory.
// GET /api/borrowers
func (h *Handler) ListBorrowers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.directory.ListBorrowers())
}
