// Package handler serves the echo router behind API Gateway on AWS Lambda.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const headerCorrelationID = "X-Correlation-Id"

type Handler struct {
	proxy *echoadapter.EchoLambda
}

func NewHandler(e *echo.Echo) (*Handler, error) {
	if e == nil {
		return nil, errors.New("handler: echo router must not be nil")
	}
	return &Handler{proxy: echoadapter.New(e)}, nil
}

// Handle serves one proxy event through the wrapped router. Events that
// cannot be turned into a request get a 400 instead of a failed invocation.
func (h *Handler) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ev = withCorrelationID(ev)

	resp, err := h.proxy.ProxyWithContext(ctx, ev)
	if err != nil {
		slog.Warn("rejecting proxy event", "err", err, "path", ev.Path)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers: map[string]string{
				"Content-Type":      "application/json",
				headerCorrelationID: correlationID(ev),
			},
			Body: `{"error":"invalid request","code":"INVALID_INPUT"}`,
		}, nil
	}

	if resp.Headers == nil && len(resp.MultiValueHeaders) > 0 {
		resp.Headers = make(map[string]string, len(resp.MultiValueHeaders))
		for k, vs := range resp.MultiValueHeaders {
			if len(vs) > 0 {
				resp.Headers[k] = vs[0]
			}
		}
	}
	return resp, nil
}

func correlationID(ev events.APIGatewayProxyRequest) string {
	for k, v := range ev.Headers {
		if strings.EqualFold(k, headerCorrelationID) && strings.TrimSpace(v) != "" {
			return v
		}
	}
	for k, vs := range ev.MultiValueHeaders {
		if strings.EqualFold(k, headerCorrelationID) && len(vs) > 0 && strings.TrimSpace(vs[0]) != "" {
			return vs[0]
		}
	}
	return ""
}

// withCorrelationID stamps a fresh id on events that arrive without one so
// the id is fixed at the edge.
func withCorrelationID(ev events.APIGatewayProxyRequest) events.APIGatewayProxyRequest {
	if correlationID(ev) != "" {
		return ev
	}
	id := uuid.NewString()

	headers := maps.Clone(ev.Headers)
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers[headerCorrelationID] = id
	ev.Headers = headers

	if ev.MultiValueHeaders != nil {
		multi := maps.Clone(ev.MultiValueHeaders)
		multi[headerCorrelationID] = []string{id}
		ev.MultiValueHeaders = multi
	}
	return ev
}
