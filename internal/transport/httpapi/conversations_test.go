package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"collections-agent/internal/domain"
	"collections-agent/internal/usecase"
)

func TestGetConversation(t *testing.T) {
	f := newFixture(t)
	f.convs.snap = usecase.Snapshot{
		BorrowerID: 1,
		Messages:   []domain.Message{domain.UserMessage("hi"), domain.AIMessage("hello")},
		Counters:   domain.Counters{Sent: 1, Received: 1},
	}

	rec := f.do(t, http.MethodGet, "/api/conversations/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"borrowerId": 1,
		"messages": [{"sender":"user","text":"hi"},{"sender":"ai","text":"hello"}],
		"counters": {"sent":1,"received":1}
	}`, rec.Body.String())
}

func TestGetConversationEmptyUsesArrays(t *testing.T) {
	f := newFixture(t)
	f.convs.snap = usecase.Snapshot{BorrowerID: 1}

	rec := f.do(t, http.MethodGet, "/api/conversations/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"borrowerId":1,"messages":[],"counters":{"sent":0,"received":0}}`, rec.Body.String())
}

func TestGetConversationErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/conversations/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.convs.err = &usecase.Error{Code: usecase.ErrorNotFound, Reason: "unknown_borrower"}
	rec = f.do(t, http.MethodGet, "/api/conversations/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decode(t, rec)["code"])
}

func TestSubmitMessage(t *testing.T) {
	f := newFixture(t)
	appended := []domain.Message{
		domain.UserMessage("Why 500?"),
		domain.AIMessage("Let me explain"),
		domain.StatusMessage(usecase.StatusWhatsAppSent),
		domain.StatusMessage(usecase.StatusEmailSent),
	}
	f.turns.res = usecase.TurnResult{
		BorrowerID:   1,
		Appended:     appended,
		Conversation: appended,
		Counters:     domain.Counters{Sent: 1, Received: 1},
	}

	rec := f.do(t, http.MethodPost, "/api/conversations/1/messages", `{"text":"Why 500?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, f.turns.id)
	require.Equal(t, "Why 500?", f.turns.txt)
	out := decode(t, rec)
	require.Equal(t, false, out["ignored"])
	require.Len(t, out["appended"], 4)
	require.Len(t, out["messages"], 4)
	require.NotContains(t, out, "error")
}

func TestSubmitMessageIgnored(t *testing.T) {
	f := newFixture(t)
	f.turns.res = usecase.TurnResult{BorrowerID: 1, Ignored: true}

	rec := f.do(t, http.MethodPost, "/api/conversations/1/messages", `{"text":"   "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"borrowerId":1,"ignored":true,"appended":[],"messages":[],"counters":{"sent":0,"received":0}}`, rec.Body.String())
}

func TestSubmitMessageChatFailureKeepsTranscript(t *testing.T) {
	f := newFixture(t)
	f.turns.res = usecase.TurnResult{
		BorrowerID:   1,
		Appended:     []domain.Message{domain.UserMessage("hi")},
		Conversation: []domain.Message{domain.UserMessage("hi")},
		Counters:     domain.Counters{Sent: 1},
	}
	f.turns.err = &usecase.Error{Code: usecase.ErrorUpstream, Reason: "gemini_error", Err: errors.New("overloaded")}

	rec := f.do(t, http.MethodPost, "/api/conversations/1/messages", `{"text":"hi"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	out := decode(t, rec)
	require.Equal(t, "Gemini API Error: overloaded", out["error"])
	require.Equal(t, "UPSTREAM_ERROR", out["code"])
	require.Len(t, out["messages"], 1)
	require.Equal(t, map[string]any{"sent": float64(1), "received": float64(0)}, out["counters"])
}

func TestSubmitMessageConflict(t *testing.T) {
	f := newFixture(t)
	f.turns.err = &usecase.Error{Code: usecase.ErrorConflict, Reason: "turn_in_flight"}

	rec := f.do(t, http.MethodPost, "/api/conversations/1/messages", `{"text":"hi"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"turn_in_flight","code":"CONFLICT"}`, rec.Body.String())
}
