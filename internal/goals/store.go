// Package goals owns the per-user savings goal collection. Goal balances
// move by signed deltas (deposit/withdraw) clamped at zero.
package goals

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ametova/finkeeper/internal/common"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/partition"
	"github.com/ametova/finkeeper/internal/session"
)

const resource = "goals"

// PartitionKey returns the storage key for a user's goal partition.
func PartitionKey(userID string) string {
	return partition.Key(resource, userID)
}

// Store keeps the active user's goals in memory and rewrites the whole
// partition on every mutation.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	notifier notify.Notifier
	log      logging.Logger
	userID   string
	items    []models.Goal
	loading  bool

	now   func() time.Time
	newID func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithIDGenerator overrides the record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New builds a Store bound to sess: it reloads its partition every time the
// active user changes.
func New(kv kvstore.Store, sess *session.Store, notifier notify.Notifier, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	sess.Subscribe(func(id *models.Identity) {
		s.SetUser(context.Background(), id)
	})
	return s
}

// SetUser re-initializes the store for a new active identity, falling back
// to an empty collection (persisted immediately) on absent or malformed
// partitions.
func (s *Store) SetUser(ctx context.Context, id *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.userID = ""
		s.items = nil
		return
	}

	s.userID = id.ID
	s.loading = true
	defer func() { s.loading = false }()

	items, ok, err := partition.Load[models.Goal](ctx, s.kv, PartitionKey(id.ID))
	if err != nil {
		s.log.Error(ctx, "failed to load goals", "user_id", id.ID, "error", err)
		s.items = nil
		return
	}
	if !ok {
		items = []models.Goal{}
		if err := partition.Save(ctx, s.kv, PartitionKey(id.ID), items); err != nil {
			s.log.Error(ctx, "failed to persist goal fallback", "user_id", id.ID, "error", err)
		}
	}
	s.items = items
}

// Items returns the collection in insertion order.
func (s *Store) Items() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Goal, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a partition load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Add assigns a fresh id and creation timestamp to g, appends it, and
// persists the collection.
func (s *Store) Add(ctx context.Context, g models.Goal) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Goal{}, common.ErrNotAuthenticated
	}

	g.ID = s.newID()
	g.CreatedAt = s.now()
	s.items = append(s.items, g)
	if err := s.persist(ctx); err != nil {
		return models.Goal{}, err
	}
	s.notifier.Success(ctx, "Financial goal added")
	return g, nil
}

// Update applies the patch to the matching record. An unknown id is a
// silent no-op.
func (s *Store) Update(ctx context.Context, id string, patch models.GoalPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	for i := range s.items {
		if s.items[i].ID == id {
			patch.Apply(&s.items[i])
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, "Goal updated")
	return nil
}

// Delete removes the matching record. An unknown id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, "Goal deleted")
	return nil
}

// AddToGoal applies a signed delta to an existing goal's current amount,
// clamped so the balance never goes negative. An unknown id is a silent
// no-op; unlike budgets, a goal is never created on demand.
func (s *Store) AddToGoal(ctx context.Context, id string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	for i := range s.items {
		if s.items[i].ID == id {
			next := s.items[i].CurrentAmount.Add(delta)
			if next.IsNegative() {
				next = decimal.Zero
			}
			s.items[i].CurrentAmount = next
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}

	if delta.IsPositive() {
		s.notifier.Success(ctx, "Amount added to goal")
	} else {
		s.notifier.Success(ctx, "Amount withdrawn from goal")
	}
	return nil
}

// TotalTarget sums every goal's target amount.
func (s *Store) TotalTarget() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		total = total.Add(s.items[i].TargetAmount)
	}
	return total
}

// TotalSaved sums every goal's current amount.
func (s *Store) TotalSaved() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		total = total.Add(s.items[i].CurrentAmount)
	}
	return total
}

func (s *Store) persist(ctx context.Context) error {
	return partition.Save(ctx, s.kv, PartitionKey(s.userID), s.items)
}
