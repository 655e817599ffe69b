package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	require.Empty(t, CorrelationID(context.Background()))

	ctx := WithCorrelationID(context.Background(), "corr-1")
	require.Equal(t, "corr-1", CorrelationID(ctx))
}
