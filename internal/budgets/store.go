// Package budgets owns the per-user monthly budget collection. Budgets are
// logically keyed by their "YYYY-MM" month string: SetLimit and UpdateSpent
// upsert, so a month never has more than one record.
package budgets

import (
	"context"
	"fmt"
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

const resource = "budgets"

// PartitionKey returns the storage key for a user's budget partition.
func PartitionKey(userID string) string {
	return partition.Key(resource, userID)
}

// Store keeps the active user's budgets in memory and rewrites the whole
// partition on every mutation.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	notifier notify.Notifier
	log      logging.Logger
	userID   string
	items    []models.Budget
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

	items, ok, err := partition.Load[models.Budget](ctx, s.kv, PartitionKey(id.ID))
	if err != nil {
		s.log.Error(ctx, "failed to load budgets", "user_id", id.ID, "error", err)
		s.items = nil
		return
	}
	if !ok {
		items = []models.Budget{}
		if err := partition.Save(ctx, s.kv, PartitionKey(id.ID), items); err != nil {
			s.log.Error(ctx, "failed to persist budget fallback", "user_id", id.ID, "error", err)
		}
	}
	s.items = items
}

// Items returns the collection in insertion order.
func (s *Store) Items() []models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Budget, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a partition load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetLimit sets the limit for a month, creating the record if the month has
// none yet. Spent starts at zero on creation and is never touched here.
func (s *Store) SetLimit(ctx context.Context, month string, limit decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	found := false
	for i := range s.items {
		if s.items[i].Month == month {
			s.items[i].Limit = limit
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.Budget{
			ID:    s.newID(),
			Month: month,
			Limit: limit,
			Spent: decimal.Zero,
		})
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, fmt.Sprintf("Budget limit set for %s", month))
	return nil
}

// UpdateSpent applies a signed delta to a month's running spent counter,
// clamped so it never goes negative. A month with no record gets one with
// limit zero.
func (s *Store) UpdateSpent(ctx context.Context, month string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	found := false
	for i := range s.items {
		if s.items[i].Month == month {
			s.items[i].Spent = clampZero(s.items[i].Spent.Add(delta))
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.Budget{
			ID:    s.newID(),
			Month: month,
			Limit: decimal.Zero,
			Spent: clampZero(delta),
		})
	}

	return s.persist(ctx)
}

// ForMonth returns the budget for a month, or nil when none exists.
func (s *Store) ForMonth(month string) *models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Month == month {
			b := s.items[i]
			return &b
		}
	}
	return nil
}

// CurrentMonth returns the budget for the present month, or nil.
func (s *Store) CurrentMonth() *models.Budget {
	return s.ForMonth(models.MonthOf(s.now()))
}

func (s *Store) persist(ctx context.Context) error {
	return partition.Save(ctx, s.kv, PartitionKey(s.userID), s.items)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
