package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"collections-agent/internal/domain"
	"collections-agent/internal/usecase"
)

type submitRequest struct {
	Text string `json:"text"`
}

type conversationResponse struct {
	BorrowerID int              `json:"borrowerId"`
	Messages   []domain.Message `json:"messages"`
	Counters   domain.Counters  `json:"counters"`
}

type turnResponse struct {
	BorrowerID int              `json:"borrowerId"`
	Ignored    bool             `json:"ignored"`
	Appended   []domain.Message `json:"appended"`
	Messages   []domain.Message `json:"messages"`
	Counters   domain.Counters  `json:"counters"`
	Error      string           `json:"error,omitempty"`
	Code       string           `json:"code,omitempty"`
}

func borrowerIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("borrower_id"))
	if err != nil {
		return 0, invalidInput("invalid_borrower_id")
	}
	return id, nil
}

func orEmpty(msgs []domain.Message) []domain.Message {
	if msgs == nil {
		return []domain.Message{}
	}
	return msgs
}

// GetConversation returns a borrower's transcript and counters.
// GET /api/conversations/:borrower_id
func (h *Handler) GetConversation(c echo.Context) error {
	id, err := borrowerIDParam(c)
	if err != nil {
		return h.writeError(c, err)
	}
	snap, err := h.conversations.Conversation(id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, conversationResponse{
		BorrowerID: snap.BorrowerID,
		Messages:   orEmpty(snap.Messages),
		Counters:   snap.Counters,
	})
}

// SubmitMessage runs one orchestrated turn for a borrower.
// POST /api/conversations/:borrower_id/messages
func (h *Handler) SubmitMessage(c echo.Context) error {
	id, err := borrowerIDParam(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return h.writeError(c, invalidInput("invalid_body"))
	}

	res, turnErr := h.turns.Submit(c.Request().Context(), id, req.Text)
	if turnErr != nil && len(res.Appended) == 0 {
		return h.writeError(c, turnErr)
	}

	out := turnResponse{
		BorrowerID: id,
		Ignored:    res.Ignored,
		Appended:   orEmpty(res.Appended),
		Messages:   orEmpty(res.Conversation),
		Counters:   res.Counters,
	}
	status := http.StatusOK
	if turnErr != nil {
		ue := usecase.AsError(turnErr)
		out.Error = ue.Public()
		out.Code = string(ue.Code)
		status = statusFor(ue.Code)
	}
	return c.JSON(status, out)
}
