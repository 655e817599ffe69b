package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"collections-agent/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// generateRequest is the minimal request shape for models.generateContent.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("gemini: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client is a focused client for the Gemini generateContent endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	model      string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for model. An empty apiKey is accepted here;
// callers check credentials before generating.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("gemini: model must not be empty")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     strings.TrimSpace(apiKey),
		model:      model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func generateURL(baseURL, model string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if !strings.HasSuffix(base, "/v1beta") {
		base += "/v1beta"
	}
	return base + "/models/" + url.PathEscape(model) + ":generateContent"
}

// Generate sends turns as one generateContent request and returns the
// concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, turns []domain.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini: api key must not be empty")
	}
	if len(turns) == 0 {
		return "", errors.New("gemini: at least one turn is required")
	}

	reqBody := generateRequest{Contents: make([]content, 0, len(turns))}
	for _, t := range turns {
		reqBody.Contents = append(reqBody.Contents, content{Role: t.Role, Parts: []part{{Text: t.Text}}})
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := generateURL(c.baseURL, c.model)
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if reqErr != nil {
		return "", fmt.Errorf("gemini: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	raw, err := c.doJSONRequest(req, endpoint)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	return extractText(raw)
}

func extractText(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", errors.New("gemini: decode response: invalid JSON")
	}
	parsed := gjson.ParseBytes(raw)

	var sb strings.Builder
	parsed.Get("candidates.0.content.parts").ForEach(func(_, p gjson.Result) bool {
		sb.WriteString(p.Get("text").String())
		return true
	})
	if sb.Len() > 0 {
		return sb.String(), nil
	}

	if reason := parsed.Get("promptFeedback.blockReason").String(); reason != "" {
		return "", fmt.Errorf("gemini: prompt blocked: %s", reason)
	}
	if !parsed.Get("candidates.0").Exists() {
		return "", errors.New("gemini: no candidates in response")
	}
	return "", fmt.Errorf("gemini: empty candidate (finish reason %q)", parsed.Get("candidates.0.finishReason").String())
}

func (c *Client) doJSONRequest(req *http.Request, endpoint string) ([]byte, error) {
	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return nil, doErr
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		msg := gjson.GetBytes(buf, "error.message").String()
		if msg == "" {
			msg = string(buf)
		}
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        endpoint,
			Body:       msg,
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
