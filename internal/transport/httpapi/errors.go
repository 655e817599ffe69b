package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"collections-agent/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(code usecase.ErrorCode) int {
	switch code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest
	case usecase.ErrorNotFound:
		return http.StatusNotFound
	case usecase.ErrorConflict:
		return http.StatusConflict
	case usecase.ErrorRateLimited:
		return http.StatusTooManyRequests
	case usecase.ErrorUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c echo.Context, err error) error {
	ue := usecase.AsError(err)
	if ue.Code == usecase.ErrorInternal {
		h.logger.Error("unhandled error", "err", err, "path", c.Path())
	}
	return c.JSON(statusFor(ue.Code), errorResponse{Error: ue.Public(), Code: string(ue.Code)})
}

func invalidInput(reason string) error {
	return &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: reason}
}
