package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"collections-agent/internal/domain"
)

func TestBuildCollectionsPrompt(t *testing.T) {
	got := buildCollectionsPrompt(asha, "When is this due?")
	require.Equal(t,
		`You are a friendly and empathetic debt collection agent. Help the borrower, Asha, understand their outstanding amount of $500. The user's latest message is: "When is this due?"`,
		got)

	b := asha
	b.OutstandingAmount = 1250.5
	require.Contains(t, buildCollectionsPrompt(b, "x"), "$1250.5.")
}

func TestBuildChatTurns_ReplaysHistoryWithoutStatus(t *testing.T) {
	history := []domain.Message{
		domain.UserMessage("hello"),
		domain.AIMessage("hi Asha"),
		domain.StatusMessage(StatusWhatsAppSent),
		domain.StatusMessage(StatusEmailFailed),
	}
	turns := buildChatTurns(asha, "When is this due?", history)

	require.Len(t, turns, 3)
	require.Equal(t, domain.ChatTurn{Role: domain.RoleUser, Text: "hello"}, turns[0])
	require.Equal(t, domain.ChatTurn{Role: domain.RoleModel, Text: "hi Asha"}, turns[1])
	require.Equal(t, domain.RoleUser, turns[2].Role)
	require.Contains(t, turns[2].Text, `"When is this due?"`)
}

func TestBuildChatTurns_DropsTrailingInFlightMessage(t *testing.T) {
	history := []domain.Message{
		domain.UserMessage("hello"),
		domain.AIMessage("hi"),
		domain.UserMessage("When is this due?"),
	}
	turns := buildChatTurns(asha, "When is this due?", history)
	require.Len(t, turns, 3)
	require.Equal(t, "hi", turns[1].Text)

	// An unanswered earlier message with different text is kept.
	history[2] = domain.UserMessage("are you there?")
	turns = buildChatTurns(asha, "When is this due?", history)
	require.Len(t, turns, 4)
	require.Equal(t, "are you there?", turns[2].Text)
}

func TestBuildChatTurns_EmptyHistory(t *testing.T) {
	turns := buildChatTurns(asha, "hi", nil)
	require.Len(t, turns, 1)
	require.Equal(t, domain.RoleUser, turns[0].Role)
}
