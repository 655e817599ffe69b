package twilio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	twiliogo "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	// MaxBodyLength is the WhatsApp body ceiling in characters.
	MaxBodyLength  = 1600
	ellipsis       = "..."
	whatsappScheme = "whatsapp:"
)

// messageAPI is the slice of the Twilio REST API used here.
// *openapi.ApiService satisfies it.
type messageAPI interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Client sends WhatsApp messages through Twilio's Messages resource.
type Client struct {
	api  messageAPI
	from string
}

// New builds a Client from account credentials. Empty credentials are
// accepted; callers check them before sending.
func New(accountSID, authToken, from string) *Client {
	rest := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Client{api: rest.Api, from: from}
}

func newWithAPI(api messageAPI, from string) *Client {
	return &Client{api: api, from: from}
}

// TruncateBody caps body at MaxBodyLength characters, replacing the tail
// with an ellipsis so the result is exactly MaxBodyLength long.
func TruncateBody(body string) string {
	runes := []rune(body)
	if len(runes) <= MaxBodyLength {
		return body
	}
	return string(runes[:MaxBodyLength-len(ellipsis)]) + ellipsis
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, whatsappScheme) {
		return number
	}
	return whatsappScheme + number
}

// SendWhatsApp delivers one message to the phone number to and returns the
// Twilio message SID. The Twilio SDK does not take a context, so ctx is only
// checked before the call.
func (c *Client) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	if c.api == nil {
		return "", errors.New("twilio: client not initialized")
	}
	if strings.TrimSpace(to) == "" {
		return "", errors.New("twilio: recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("twilio: %w", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(whatsappAddress(c.from))
	params.SetBody(TruncateBody(body))

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio: create message: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
