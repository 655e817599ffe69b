package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"collections-agent/internal/domain"
	"collections-agent/internal/usecase"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPrintBorrowers(t *testing.T) {
	var buf bytes.Buffer
	printBorrowers(&buf, []domain.Borrower{
		{ID: 1, Name: "Asha Verma", Email: "asha@example.com", Phone: "+919810000001", OutstandingAmount: 500},
		{ID: 4, Name: "Vikram Singh", Email: "vikram@example.com", Phone: "+919810000004"},
	})
	require.Equal(t,
		"  1  Asha Verma           $500.00  +919810000001  asha@example.com\n"+
			"  4  Vikram Singh         $0.00  +919810000004  vikram@example.com\n",
		buf.String())
}

func TestPrintTranscript(t *testing.T) {
	var buf bytes.Buffer
	printTranscript(&buf, []domain.Message{
		domain.UserMessage("Why do I owe 500?"),
		domain.AIMessage("Let me explain."),
		domain.StatusMessage("WhatsApp message sent ✔️"),
	})
	printCounters(&buf, domain.Counters{Sent: 1, Received: 1})

	require.Equal(t,
		"you: Why do I owe 500?\n"+
			"ai: Let me explain.\n"+
			"  WhatsApp message sent ✔️\n"+
			"sent: 1  received: 1\n",
		buf.String())
}

func TestReportTurn_UnknownBorrowerPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	err := reportTurn(&buf, usecase.TurnResult{BorrowerID: 99},
		&usecase.Error{Code: usecase.ErrorNotFound, Reason: "unknown_borrower"})

	require.EqualError(t, err, "unknown_borrower")
	require.Empty(t, buf.String())
}

func TestReportTurn_ChatFailureKeepsTranscript(t *testing.T) {
	var buf bytes.Buffer
	err := reportTurn(&buf, usecase.TurnResult{
		BorrowerID:   1,
		Appended:     []domain.Message{domain.UserMessage("hi")},
		Conversation: []domain.Message{domain.UserMessage("hi")},
		Counters:     domain.Counters{Sent: 1},
	}, &usecase.Error{Code: usecase.ErrorUpstream, Reason: "gemini_error", Err: errors.New("overloaded")})

	require.EqualError(t, err, "Gemini API Error: overloaded")
	require.Equal(t, "you: hi\nsent: 1  received: 0\n", buf.String())
}

func TestReportTurn_Ignored(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, reportTurn(&buf, usecase.TurnResult{Ignored: true}, nil))
	require.Empty(t, buf.String())
}
