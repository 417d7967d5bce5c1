// Package live keeps derived views of the transaction store fresh.
//
// Instead of incremental live queries, every view is recomputed wholesale
// from the latest snapshot whenever the store reports a change. Recomputing
// is cheap at personal-ledger scale and needs no invalidation bookkeeping.
package live

import (
	"sync"
	"time"

	"moneta/internal/logger"
	"moneta/internal/models"
	"moneta/internal/services"
	"moneta/internal/stats"
	"moneta/internal/store"
)

// Snapshot is one consistent recomputation of all derived views. It is
// replaced wholesale on every rebuild and never mutated in place, so
// callers may read it without copying.
type Snapshot struct {
	Transactions []models.Transaction      `json:"transactions"`
	Monthly      []stats.MonthlyStat       `json:"monthly"`
	Breakdown    []stats.CategoryBreakdown `json:"breakdown"`
	Summary      stats.Summary             `json:"summary"`
}

// Refresher subscribes to store change notifications and recomputes the
// snapshot after each transaction mutation. Store failures during a rebuild
// are logged and degrade to empty views rather than propagating.
type Refresher struct {
	transactions services.TransactionServicer
	hub          *store.Hub
	now          func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot

	cancel func()
	done   chan struct{}
}

// NewRefresher builds an initial snapshot and starts watching the store.
// A nil clock defaults to time.Now; tests pin it to a fixed instant.
func NewRefresher(st *store.Store, transactions services.TransactionServicer, now func() time.Time) *Refresher {
	if now == nil {
		now = time.Now
	}

	r := &Refresher{
		transactions: transactions,
		hub:          st.Hub(),
		now:          now,
		done:         make(chan struct{}),
	}

	// Subscribe before the initial build so a mutation landing in between
	// leaves a pending notification instead of going unseen.
	notifications, cancel := r.hub.Subscribe()
	r.cancel = cancel
	r.rebuild()
	go r.run(notifications)

	return r
}

func (r *Refresher) run(notifications <-chan string) {
	defer close(r.done)
	for collection := range notifications {
		// Only transaction mutations change the derived views.
		if collection == store.CollectionTransactions {
			r.rebuild()
		}
	}
}

// rebuild recomputes every view against the latest store snapshot.
func (r *Refresher) rebuild() {
	txs, err := r.transactions.GetTransactions(nil)
	if err != nil {
		logger.Get().Warnw("Snapshot rebuild failed, serving empty views", "error", err)
	}
	if txs == nil {
		// Keep the serialized shape stable: an empty ledger is an empty
		// array, not null.
		txs = []models.Transaction{}
	}

	reference := r.now()
	month := reference.Format("2006-01")
	snapshot := Snapshot{
		Transactions: txs,
		Monthly:      stats.MonthlyRollup(txs, reference),
		Breakdown:    stats.MonthBreakdown(txs, month),
		Summary:      stats.Summarize(txs, month),
	}

	r.mu.Lock()
	r.snapshot = snapshot
	r.mu.Unlock()
}

// Snapshot returns the most recent recomputation.
func (r *Refresher) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Refresh recomputes immediately and returns the fresh snapshot. It exists
// for pull-based revalidation; the background watcher usually gets there
// first.
func (r *Refresher) Refresh() Snapshot {
	r.rebuild()
	return r.Snapshot()
}

// Close stops the watcher goroutine and waits for it to exit.
func (r *Refresher) Close() {
	r.cancel()
	<-r.done
}
