package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"collections-agent/internal/domain"
	"collections-agent/internal/usecase"
)

type chatRequest struct {
	Message  string           `json:"message"`
	Borrower domain.Borrower  `json:"borrower"`
	History  []domain.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type whatsappRequest struct {
	Message string `json:"message"`
	To      string `json:"to"`
}

type emailRequest struct {
	Message string `json:"message"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Chat relays one message to the AI provider.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return h.writeError(c, invalidInput("invalid_body"))
	}
	reply, err := h.chat.Reply(c.Request().Context(), usecase.ChatRequest{
		Message:  req.Message,
		Borrower: req.Borrower,
		History:  req.History,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

// WhatsApp sends one WhatsApp message.
// POST /api/whatsapp
func (h *Handler) WhatsApp(c echo.Context) error {
	var req whatsappRequest
	if err := c.Bind(&req); err != nil {
		return h.writeError(c, invalidInput("invalid_body"))
	}
	if err := h.notifier.SendWhatsApp(c.Request().Context(), req.To, req.Message); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Email sends one email.
// POST /api/email
func (h *Handler) Email(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return h.writeError(c, invalidInput("invalid_body"))
	}
	if err := h.notifier.SendEmail(c.Request().Context(), req.To, req.Subject, req.Message); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
