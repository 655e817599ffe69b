package usecase

import (
	"fmt"
	"strconv"

	"collections-agent/internal/domain"
)

// buildChatTurns replays prior history as user/model turns and ends with the
// directive collections prompt wrapping the in-flight message. Status
// entries are transcript-only and never reach the provider.
func buildChatTurns(b domain.Borrower, message string, history []domain.Message) []domain.ChatTurn {
	history = withoutInFlight(history, message)

	turns := make([]domain.ChatTurn, 0, len(history)+1)
	for _, m := range history {
		switch m.Sender {
		case domain.SenderUser:
			turns = append(turns, domain.ChatTurn{Role: domain.RoleUser, Text: m.Text})
		case domain.SenderAI:
			turns = append(turns, domain.ChatTurn{Role: domain.RoleModel, Text: m.Text})
		}
	}
	return append(turns, domain.ChatTurn{Role: domain.RoleUser, Text: buildCollectionsPrompt(b, message)})
}

// withoutInFlight drops a trailing user entry equal to message, for clients
// that post the full log including the message being answered.
func withoutInFlight(history []domain.Message, message string) []domain.Message {
	if n := len(history); n > 0 {
		last := history[n-1]
		if last.Sender == domain.SenderUser && last.Text == message {
			return history[:n-1]
		}
	}
	return history
}

func buildCollectionsPrompt(b domain.Borrower, message string) string {
	return fmt.Sprintf(
		"You are a friendly and empathetic debt collection agent. Help the borrower, %s, understand their outstanding amount of $%s. The user's latest message is: \"%s\"",
		b.Name,
		formatAmount(b.OutstandingAmount),
		message,
	)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
