package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"collections-agent/internal/config"
	"collections-agent/internal/ctxutil"
)

const (
	reasonTwilio = "twilio_error"
	reasonSMTP   = "smtp_error"
)

// WhatsAppSender is satisfied by *twilio.Client.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

// EmailSender is satisfied by *mailer.Client.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotifyService hosts the WhatsApp and email adapters. Each send is one
// provider call with no retry.
type NotifyService struct {
	whatsapp WhatsAppSender
	email    EmailSender
	caps     CapabilityChecker
	logger   *slog.Logger
}

func NewNotifyService(whatsapp WhatsAppSender, email EmailSender, caps CapabilityChecker, logger *slog.Logger) (*NotifyService, error) {
	if whatsapp == nil {
		return nil, errors.New("usecase: whatsapp sender must not be nil")
	}
	if email == nil {
		return nil, errors.New("usecase: email sender must not be nil")
	}
	if caps == nil {
		return nil, errors.New("usecase: capability checker must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotifyService{whatsapp: whatsapp, email: email, caps: caps, logger: logger}, nil
}

func (s *NotifyService) SendWhatsApp(ctx context.Context, to, body string) error {
	if strings.TrimSpace(to) == "" {
		return newError(ErrorInvalidInput, "missing_recipient", nil)
	}
	if err := requireCapability(s.caps, config.CapabilityWhatsApp); err != nil {
		s.logger.Error("whatsapp provider not configured", "err", err, "correlation_id", ctxutil.CorrelationID(ctx))
		return err
	}
	sid, err := s.whatsapp.SendWhatsApp(ctx, to, body)
	if err != nil {
		s.logger.Error("whatsapp send failed", "err", err, "correlation_id", ctxutil.CorrelationID(ctx))
		return newError(ErrorUpstream, reasonTwilio, err)
	}
	s.logger.Info("whatsapp message sent", "sid", sid, "correlation_id", ctxutil.CorrelationID(ctx))
	return nil
}

func (s *NotifyService) SendEmail(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return newError(ErrorInvalidInput, "missing_recipient", nil)
	}
	if err := requireCapability(s.caps, config.CapabilityEmail); err != nil {
		s.logger.Error("email provider not configured", "err", err, "correlation_id", ctxutil.CorrelationID(ctx))
		return err
	}
	if err := s.email.SendEmail(ctx, to, subject, body); err != nil {
		s.logger.Error("email send failed", "err", err, "correlation_id", ctxutil.CorrelationID(ctx))
		return newError(ErrorUpstream, reasonSMTP, err)
	}
	s.logger.Info("email sent", "correlation_id", ctxutil.CorrelationID(ctx))
	return nil
}
