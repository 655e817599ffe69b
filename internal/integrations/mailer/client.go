// Package mailer delivers plain-text email over SMTP with implicit TLS.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Settings are the SMTP connection parameters. Username doubles as the
// From address.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

type dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Client sends one message per call, opening a fresh SMTP session each time.
type Client struct {
	settings  Settings
	newDialer func(Settings) (dialer, error)
}

func New(settings Settings) *Client {
	return &Client{settings: settings, newDialer: dialSMTP}
}

func dialSMTP(s Settings) (dialer, error) {
	opts := []mail.Option{
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
	}
	if s.Port > 0 {
		opts = append(opts, mail.WithPort(s.Port))
	}
	if s.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.Timeout))
	}
	c, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) buildMessage(to, subject, body string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(c.settings.Username); err != nil {
		return nil, fmt.Errorf("mailer: invalid sender: %w", err)
	}
	if err := m.To(strings.TrimSpace(to)); err != nil {
		return nil, fmt.Errorf("mailer: invalid recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)
	return m, nil
}

// SendEmail delivers body to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if c.newDialer == nil {
		return errors.New("mailer: client not initialized")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("mailer: recipient is required")
	}

	m, err := c.buildMessage(to, subject, body)
	if err != nil {
		return err
	}
	d, err := c.newDialer(c.settings)
	if err != nil {
		return fmt.Errorf("mailer: create smtp client: %w", err)
	}
	if err := d.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
