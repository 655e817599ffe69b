package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"collections-agent/internal/ctxutil"
	"collections-agent/internal/domain"
)

// Operator-facing status texts and the notification email subject.
const (
	StatusWhatsAppSent   = "WhatsApp message sent ✔️"
	StatusWhatsAppFailed = "WhatsApp message failed ❌"
	StatusEmailSent      = "Email sent ✔️"
	StatusEmailFailed    = "Email failed ❌"
	EmailSubject         = "Regarding your outstanding amount"
)

// BorrowerLookup is satisfied by repository.Directory.
type BorrowerLookup interface {
	Borrower(id int) (domain.Borrower, bool)
}

// ConversationStore is satisfied by *repository.MemoryStore.
type ConversationStore interface {
	Append(borrowerID int, msg domain.Message)
	History(borrowerID int) []domain.Message
	Counters(borrowerID int) domain.Counters
}

type Replier interface {
	Reply(ctx context.Context, req ChatRequest) (string, error)
}

type Notifier interface {
	SendWhatsApp(ctx context.Context, to, body string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

// TurnResult describes the state after one submitted turn.
type TurnResult struct {
	BorrowerID   int
	Ignored      bool
	Appended     []domain.Message
	Conversation []domain.Message
	Counters     domain.Counters
}

// Snapshot is the read view of one borrower's conversation.
type Snapshot struct {
	BorrowerID int
	Messages   []domain.Message
	Counters   domain.Counters
}

// ConversationService sequences a turn: record the user message, obtain the
// AI reply, then report WhatsApp and email delivery, strictly in that order.
// It assumes at most one turn per borrower is in flight; see TurnGate.
type ConversationService struct {
	directory BorrowerLookup
	store     ConversationStore
	chat      Replier
	notifier  Notifier
	logger    *slog.Logger
}

func NewConversationService(directory BorrowerLookup, store ConversationStore, chat Replier, notifier Notifier, logger *slog.Logger) (*ConversationService, error) {
	if directory == nil {
		return nil, errors.New("usecase: borrower directory must not be nil")
	}
	if store == nil {
		return nil, errors.New("usecase: conversation store must not be nil")
	}
	if chat == nil {
		return nil, errors.New("usecase: chat replier must not be nil")
	}
	if notifier == nil {
		return nil, errors.New("usecase: notifier must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationService{
		directory: directory,
		store:     store,
		chat:      chat,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

// Submit runs one turn for borrowerID. Blank text or a missing selection is
// ignored without touching state. When the AI call fails the user message
// stays recorded and the returned error is the conversation-level failure;
// notification failures never fail the turn.
func (s *ConversationService) Submit(ctx context.Context, borrowerID int, text string) (TurnResult, error) {
	if strings.TrimSpace(text) == "" || borrowerID <= 0 {
		return TurnResult{BorrowerID: borrowerID, Ignored: true}, nil
	}
	borrower, ok := s.directory.Borrower(borrowerID)
	if !ok {
		return TurnResult{BorrowerID: borrowerID}, newError(ErrorNotFound, "unknown_borrower", nil)
	}
	log := s.logger.With("borrower_id", borrowerID, "correlation_id", ctxutil.CorrelationID(ctx))

	prior := s.store.History(borrowerID)
	appended := make([]domain.Message, 0, 4)
	appendMsg := func(m domain.Message) {
		s.store.Append(borrowerID, m)
		appended = append(appended, m)
	}

	appendMsg(domain.UserMessage(text))

	reply, err := s.chat.Reply(ctx, ChatRequest{Message: text, Borrower: borrower, History: prior})
	if err != nil {
		if IsProviderError(err) {
			log.Warn("turn aborted: ai provider failed", "err", err)
		} else {
			log.Error("turn aborted: no ai reply", "err", err)
		}
		return s.result(borrowerID, appended), AsError(err)
	}
	appendMsg(domain.AIMessage(reply))

	// Delivery is attempted even if the caller goes away after the reply.
	notifyCtx := context.WithoutCancel(ctx)

	waStatus := StatusWhatsAppFailed
	if s.deliver(log, "whatsapp", func() error {
		return s.notifier.SendWhatsApp(notifyCtx, borrower.Phone, reply)
	}) {
		waStatus = StatusWhatsAppSent
	}
	appendMsg(domain.StatusMessage(waStatus))

	emailStatus := StatusEmailFailed
	if s.deliver(log, "email", func() error {
		return s.notifier.SendEmail(notifyCtx, borrower.Email, EmailSubject, reply)
	}) {
		emailStatus = StatusEmailSent
	}
	appendMsg(domain.StatusMessage(emailStatus))

	log.Info("turn complete", "whatsapp", waStatus, "email", emailStatus)
	return s.result(borrowerID, appended), nil
}

// deliver runs one notification and reports whether it succeeded. A panic
// in the provider SDK counts as a failed delivery.
func (s *ConversationService) deliver(log *slog.Logger, channel string, send func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("notification panicked", "channel", channel, "panic", r)
			ok = false
		}
	}()
	err := send()
	switch {
	case err == nil:
		return true
	case IsConfigurationError(err):
		log.Warn("notification skipped: provider not configured", "channel", channel, "err", err)
	default:
		log.Warn("notification failed", "channel", channel, "err", err)
	}
	return false
}

// Conversation returns the current transcript and counters for borrowerID.
func (s *ConversationService) Conversation(borrowerID int) (Snapshot, error) {
	if _, ok := s.directory.Borrower(borrowerID); !ok {
		return Snapshot{}, newError(ErrorNotFound, "unknown_borrower", nil)
	}
	return Snapshot{
		BorrowerID: borrowerID,
		Messages:   s.store.History(borrowerID),
		Counters:   s.store.Counters(borrowerID),
	}, nil
}

func (s *ConversationService) result(borrowerID int, appended []domain.Message) TurnResult {
	return TurnResult{
		BorrowerID:   borrowerID,
		Appended:     appended,
		Conversation: s.store.History(borrowerID),
		Counters:     s.store.Counters(borrowerID),
	}
}
