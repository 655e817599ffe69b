package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type TurnSubmitter interface {
	Submit(ctx context.Context, borrowerID int, text string) (TurnResult, error)
}

// TurnGate lets at most one turn per borrower run at a time. Transports put
// it in front of the orchestrator the way a UI disables its send button.
type TurnGate struct {
	next TurnSubmitter

	mu       sync.Mutex
	inflight map[int]struct{}
}

func NewTurnGate(next TurnSubmitter) (*TurnGate, error) {
	if next == nil {
		return nil, errors.New("usecase: turn submitter must not be nil")
	}
	return &TurnGate{next: next, inflight: make(map[int]struct{})}, nil
}

func (g *TurnGate) Submit(ctx context.Context, borrowerID int, text string) (TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return g.next.Submit(ctx, borrowerID, text)
	}
	if !g.acquire(borrowerID) {
		return TurnResult{BorrowerID: borrowerID}, newError(ErrorConflict, "turn_in_flight", nil)
	}
	defer g.release(borrowerID)
	return g.next.Submit(ctx, borrowerID, text)
}

func (g *TurnGate) acquire(borrowerID int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[borrowerID]; busy {
		return false
	}
	g.inflight[borrowerID] = struct{}{}
	return true
}

func (g *TurnGate) release(borrowerID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, borrowerID)
}
