package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"collections-agent/internal/config"
	"collections-agent/internal/domain"
)

// fakeCaps reports the listed env names as missing per capability.
type fakeCaps map[config.Capability][]string

func (f fakeCaps) Missing(c config.Capability) []string { return f[c] }

type fakeGenerator struct {
	reply string
	err   error
	turns []domain.ChatTurn
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, turns []domain.ChatTurn) (string, error) {
	f.calls++
	f.turns = turns
	return f.reply, f.err
}

type statusErr struct{ code int }

func (e *statusErr) Error() string       { return "upstream status" }
func (e *statusErr) HTTPStatusCode() int { return e.code }

func expectUsecaseError(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var usecaseErr *Error
	require.True(t, errors.As(err, &usecaseErr), "expected *usecase.Error, got %T", err)
	require.Equal(t, code, usecaseErr.Code)
	require.Equal(t, reason, usecaseErr.Reason)
}

var asha = domain.Borrower{ID: 1, Name: "Asha", Phone: "+910000", Email: "a@x.com", OutstandingAmount: 500}
