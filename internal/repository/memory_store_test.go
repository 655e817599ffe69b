package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"collections-agent/internal/domain"
)

func TestMemoryStore_AppendTracksCounters(t *testing.T) {
	s := NewMemoryStore()
	s.Append(1, domain.UserMessage("hi"))
	s.Append(1, domain.AIMessage("hello"))
	s.Append(1, domain.StatusMessage("Email sent ✔️"))
	s.Append(1, domain.UserMessage("again"))

	require.Equal(t, domain.Counters{Sent: 2, Received: 1}, s.Counters(1))
	require.Equal(t, []domain.Message{
		domain.UserMessage("hi"),
		domain.AIMessage("hello"),
		domain.StatusMessage("Email sent ✔️"),
		domain.UserMessage("again"),
	}, s.History(1))
}

func TestMemoryStore_UnknownBorrowerIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	require.Empty(t, s.History(42))
	require.Equal(t, domain.Counters{}, s.Counters(42))
}

func TestMemoryStore_HistoryIsACopy(t *testing.T) {
	s := NewMemoryStore()
	s.Append(1, domain.UserMessage("hi"))

	h := s.History(1)
	h[0].Text = "changed"
	require.Equal(t, "hi", s.History(1)[0].Text)
}

func TestMemoryStore_BorrowersAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for id := 1; id <= 8; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Append(id, domain.UserMessage("q"))
				s.Append(id, domain.AIMessage("a"))
			}
		}(id)
	}
	wg.Wait()

	for id := 1; id <= 8; id++ {
		require.Equal(t, domain.Counters{Sent: 50, Received: 50}, s.Counters(id))
		require.Len(t, s.History(id), 100)
	}
}
