package discovery

import (
	"sync"

	"github.com/unilab-kr/boardmap/internal/models"
)

// Ledger accumulates manual review records across one run. It is safe
// for concurrent appends; record order is append order. A ledger lives
// for one run only and is handed to the caller at the end.
type Ledger struct {
	mu      sync.Mutex
	records []models.ReviewRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a record to the ledger.
func (l *Ledger) Append(record models.ReviewRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

// Records returns a copy of the accumulated records.
func (l *Ledger) Records() []models.ReviewRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ReviewRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of accumulated records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
