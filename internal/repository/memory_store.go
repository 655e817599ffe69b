package repository

import (
	"sync"

	"collections-agent/internal/domain"
)

// MemoryStore holds every borrower's conversation log and counters for the
// lifetime of the process. Nothing is persisted.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[int][]domain.Message
	counters      map[int]domain.Counters
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[int][]domain.Message),
		counters:      make(map[int]domain.Counters),
	}
}

// Append adds msg to the borrower's log. User messages bump Sent and AI
// replies bump Received; status messages leave the counters alone.
func (s *MemoryStore) Append(borrowerID int, msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[borrowerID] = append(s.conversations[borrowerID], msg)
	c := s.counters[borrowerID]
	switch msg.Sender {
	case domain.SenderUser:
		c.Sent++
	case domain.SenderAI:
		c.Received++
	}
	s.counters[borrowerID] = c
}

// History returns a copy of the borrower's log in append order.
func (s *MemoryStore) History(borrowerID int) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.conversations[borrowerID]
	out := make([]domain.Message, len(log))
	copy(out, log)
	return out
}

func (s *MemoryStore) Counters(borrowerID int) domain.Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[borrowerID]
}
