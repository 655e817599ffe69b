package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"collections-agent/internal/domain"
)

//go:embed borrowers.json
var defaultFixture []byte

// Directory is the read-only borrower lookup consumed by the orchestrator and
// the HTTP layer.
type Directory interface {
	ListBorrowers() []domain.Borrower
	Borrower(id int) (domain.Borrower, bool)
}

// StaticDirectory is an immutable, ordered borrower list.
type StaticDirectory struct {
	borrowers []domain.Borrower
	byID      map[int]int
}

// NewStaticDirectory validates the records and keeps them in the given order.
func NewStaticDirectory(borrowers []domain.Borrower) (*StaticDirectory, error) {
	d := &StaticDirectory{
		borrowers: make([]domain.Borrower, 0, len(borrowers)),
		byID:      make(map[int]int, len(borrowers)),
	}
	for _, b := range borrowers {
		if b.ID <= 0 {
			return nil, fmt.Errorf("repository: borrower id must be positive, got %d", b.ID)
		}
		if _, dup := d.byID[b.ID]; dup {
			return nil, fmt.Errorf("repository: duplicate borrower id %d", b.ID)
		}
		if b.OutstandingAmount < 0 {
			return nil, fmt.Errorf("repository: borrower %d has negative outstanding amount", b.ID)
		}
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("repository: borrower %d has no name", b.ID)
		}
		d.byID[b.ID] = len(d.borrowers)
		d.borrowers = append(d.borrowers, b)
	}
	return d, nil
}

// ParseFixture decodes a JSON array of borrowers.
func ParseFixture(raw []byte) (*StaticDirectory, error) {
	var borrowers []domain.Borrower
	if err := json.Unmarshal(raw, &borrowers); err != nil {
		return nil, fmt.Errorf("repository: decode borrower fixture: %w", err)
	}
	return NewStaticDirectory(borrowers)
}

// LoadFixture reads the fixture at path, or the embedded default when path is empty.
func LoadFixture(path string) (*StaticDirectory, error) {
	if strings.TrimSpace(path) == "" {
		return ParseFixture(defaultFixture)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("repository: read borrower fixture: %w", err)
	}
	return ParseFixture(raw)
}

func (d *StaticDirectory) ListBorrowers() []domain.Borrower {
	out := make([]domain.Borrower, len(d.borrowers))
	copy(out, d.borrowers)
	return out
}

func (d *StaticDirectory) Borrower(id int) (domain.Borrower, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return domain.Borrower{}, false
	}
	return d.borrowers[idx], true
}

func sortByID(borrowers []domain.Borrower) {
	sort.SliceStable(borrowers, func(i, j int) bool { return borrowers[i].ID < borrowers[j].ID })
}
