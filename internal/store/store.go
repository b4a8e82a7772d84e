// Package store keeps the session-scoped transaction collection. It mirrors
// the repository's view for the signed-in user, applies mutations
// optimistically after the backend confirms them, and never lets a backend
// failure escape as anything but a stored error and a false return.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"sumstra/internal/core"
	"sumstra/internal/events"
	"sumstra/internal/log"
	"sumstra/internal/records"
	"sumstra/internal/session"
)

// State tracks where the store is in its session lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateMutating State = "mutating"
	StateErrored  State = "errored"
)

// EventPublisher announces confirmed mutations. Publish failures are logged
// and never fail the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event *events.TransactionEvent) error
}

type Store struct {
	repo   records.Repository
	gate   *session.Gate
	pub    EventPublisher
	logger *log.Logger

	mu         sync.Mutex
	txns       []core.Transaction
	state      State
	lastErr    error
	generation uint64
	listeners  []func()
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher attaches a mutation event publisher.
func WithPublisher(pub EventPublisher) Option {
	return func(s *Store) { s.pub = pub }
}

// WithLogger overrides the default component logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New builds a store over the repository, gated by the given session gate.
// The store registers itself on the gate: sign-in triggers a refresh,
// sign-out clears the collection back to idle.
func New(repo records.Repository, gate *session.Gate, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		gate:   gate,
		state:  StateIdle,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentStore),
	}
	for _, opt := range opts {
		opt(s)
	}

	gate.OnChange(func(_ session.Session, active bool) {
		if active {
			// Best effort; the stored error reports a failed initial fetch.
			s.Refresh(context.Background())
			return
		}
		s.clear()
	})

	return s
}

// Subscribe registers a listener fired after every collection change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// clear drops the collection and returns to idle. Bumping the generation
// invalidates any fetch still in flight for the previous session.
func (s *Store) clear() {
	s.mu.Lock()
	s.txns = nil
	s.state = StateIdle
	s.lastErr = nil
	s.generation++
	s.mu.Unlock()
	s.notify()
}

// Refresh replaces the whole collection from the repository. A refresh that
// completes after the session changed underneath it is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	userID, err := s.gate.UserID()
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = StateLoading
	s.lastErr = nil
	s.mu.Unlock()

	txns, err := s.repo.GetAll(ctx, userID)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Discarding stale fetch", log.FieldUserID, userID)
		return nil
	}
	if err != nil {
		s.state = StateErrored
		s.lastErr = err
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "Failed to fetch transactions",
			log.FieldOperation, log.OpFetch,
			log.FieldUserID, userID,
			log.FieldError, err)
		return err
	}
	s.txns = txns
	s.state = StateReady
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transactions loaded",
		log.FieldUserID, userID,
		"count", len(txns))
	s.notify()
	return nil
}

// Transactions returns a copy of the current collection, newest first.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txns...)
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether a full fetch is in progress.
func (s *Store) Loading() bool {
	return s.State() == StateLoading
}

// Err returns the most recent operation error, if any. Each new operation
// clears it before running.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr drops the stored error.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// beginMutation clears the previous error and flips to mutating. It fails
// fast without a network call when no session is held or the local
// validation err is non-nil. The returned generation must match again when
// the mutation result is applied; like a stale fetch, a mutation that
// completes after the session changed is discarded.
func (s *Store) beginMutation(validationErr error) (uint64, bool) {
	s.mu.Lock()
	s.lastErr = nil
	if err := s.gate.Require(); err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return 0, false
	}
	if validationErr != nil {
		s.lastErr = validationErr
		s.mu.Unlock()
		return 0, false
	}
	s.state = StateMutating
	gen := s.generation
	s.mu.Unlock()
	return gen, true
}

func (s *Store) endMutation(gen uint64, err error) bool {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return false
	}
	s.state = StateReady
	s.lastErr = err
	s.mu.Unlock()
	return err == nil
}

// Add validates the input locally, creates it through the repository and
// prepends the confirmed record, which is returned. The collection is
// untouched on failure.
func (s *Store) Add(ctx context.Context, input core.NewTransaction) (core.Transaction, bool) {
	userID, err := s.gate.UserID()
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return core.Transaction{}, false
	}
	input.UserID = userID

	gen, ok := s.beginMutation(input.Validate())
	if !ok {
		return core.Transaction{}, false
	}

	created, err := s.repo.Create(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add transaction",
			log.FieldOperation, log.OpAdd,
			log.FieldError, err)
		return core.Transaction{}, s.endMutation(gen, err)
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Discarding add confirmed after session change",
			log.FieldTxnID, created.ID)
		return core.Transaction{}, false
	}
	s.txns = append([]core.Transaction{created}, s.txns...)
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTxnID, created.ID,
		log.FieldCategory, created.Category,
		log.FieldAmount, created.Amount.String())
	s.publish(ctx, events.ActionCreate, created.ID, userID)
	s.notify()
	return created, true
}

// Edit applies a partial update and replaces the matching record in place,
// preserving collection order.
func (s *Store) Edit(ctx context.Context, id string, update core.TransactionUpdate) bool {
	gen, ok := s.beginMutation(update.Validate())
	if !ok {
		return false
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to edit transaction",
			log.FieldOperation, log.OpEdit,
			log.FieldTxnID, id,
			log.FieldError, err)
		return s.endMutation(gen, err)
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Discarding edit confirmed after session change",
			log.FieldTxnID, id)
		return false
	}
	for i := range s.txns {
		if s.txns[i].ID == id {
			s.txns[i] = updated
			break
		}
	}
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()

	s.publish(ctx, events.ActionUpdate, id, updated.UserID)
	s.notify()
	return true
}

// Delete removes the matching record once the repository confirms.
func (s *Store) Delete(ctx context.Context, id string) bool {
	gen, ok := s.beginMutation(nil)
	if !ok {
		return false
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete transaction",
			log.FieldOperation, log.OpDelete,
			log.FieldTxnID, id,
			log.FieldError, err)
		return s.endMutation(gen, err)
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "Discarding delete confirmed after session change",
			log.FieldTxnID, id)
		return false
	}
	var userID string
	for i := range s.txns {
		if s.txns[i].ID == id {
			userID = s.txns[i].UserID
			s.txns = append(s.txns[:i], s.txns[i+1:]...)
			break
		}
	}
	s.state = StateReady
	s.lastErr = nil
	s.mu.Unlock()

	s.publish(ctx, events.ActionDelete, id, userID)
	s.notify()
	return true
}

// Summary returns the rows selected by filter together with their total.
func (s *Store) Summary(filter core.FilterType, now time.Time) ([]core.Transaction, decimal.Decimal) {
	filtered := core.Filter(s.Transactions(), filter, now)
	return filtered, core.SumAmounts(filtered)
}

// Income returns the income rows together with their total.
func (s *Store) Income() ([]core.Transaction, decimal.Decimal) {
	incomes := core.IncomeOnly(s.Transactions())
	return incomes, core.SumAmounts(incomes)
}

func (s *Store) publish(ctx context.Context, action events.Action, id, userID string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, events.NewTransactionEvent(action, id, userID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish transaction event",
			log.FieldTxnID, id,
			log.FieldError, err)
	}
}
