// Package expenses owns the per-user expense/income collection and its
// derived aggregates (totals, balance, per-category sums).
package expenses

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

const resource = "expenses"

// PartitionKey returns the storage key for a user's expense partition.
func PartitionKey(userID string) string {
	return partition.Key(resource, userID)
}

// DemoSeed is the fixed starter dataset written for the demo account the
// first time its partition is missing. No other user ever receives it.
func DemoSeed(now time.Time) []models.Expense {
	return []models.Expense{
		{ID: "1", Amount: decimal.NewFromFloat(45.99), Description: "Grocery shopping", Category: models.CategoryFood, Date: now},
		{ID: "2", Amount: decimal.NewFromInt(1200), Description: "Monthly salary", Category: models.CategoryOther, Date: now, IsIncome: true},
		{ID: "3", Amount: decimal.NewFromInt(30), Description: "Gas", Category: models.CategoryTransportation, Date: now},
		{ID: "4", Amount: decimal.NewFromInt(800), Description: "Rent", Category: models.CategoryHousing, Date: now},
	}
}

// Store keeps the active user's expense collection in memory and rewrites
// the whole partition on every mutation.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	notifier notify.Notifier
	log      logging.Logger
	userID   string
	items    []models.Expense
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

// SetUser re-initializes the store for a new active identity. With no
// identity the collection is emptied; otherwise the user's partition is
// loaded, falling back (and immediately persisting the fallback) when the
// partition is absent or malformed. The demo account falls back to the
// seed dataset, everyone else to an empty collection.
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

	items, ok, err := partition.Load[models.Expense](ctx, s.kv, PartitionKey(id.ID))
	if err != nil {
		s.log.Error(ctx, "failed to load expenses", "user_id", id.ID, "error", err)
		s.items = nil
		return
	}
	if !ok {
		if id.ID == session.DemoUserID {
			items = DemoSeed(s.now())
		} else {
			items = []models.Expense{}
		}
		if err := partition.Save(ctx, s.kv, PartitionKey(id.ID), items); err != nil {
			s.log.Error(ctx, "failed to persist expense fallback", "user_id", id.ID, "error", err)
		}
	}
	s.items = items
}

// Items returns the collection in insertion order.
func (s *Store) Items() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a partition load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Add assigns a fresh id to e, appends it, and persists the collection.
// The store trusts the caller's validation.
func (s *Store) Add(ctx context.Context, e models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Expense{}, common.ErrNotAuthenticated
	}

	e.ID = s.newID()
	s.items = append(s.items, e)
	if err := s.persist(ctx); err != nil {
		return models.Expense{}, err
	}

	if e.IsIncome {
		s.notifier.Success(ctx, "Income added")
	} else {
		s.notifier.Success(ctx, "Expense added")
	}
	return e, nil
}

// Update applies the patch to the matching record. An unknown id is a
// silent no-op.
func (s *Store) Update(ctx context.Context, id string, patch models.ExpensePatch) error {
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
	s.notifier.Success(ctx, "Transaction updated")
	return nil
}

// Delete removes the matching record. An unknown id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	income := false
	for i := range s.items {
		if s.items[i].ID == id {
			income = s.items[i].IsIncome
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}

	if income {
		s.notifier.Success(ctx, "Income deleted")
	} else {
		s.notifier.Success(ctx, "Expense deleted")
	}
	return nil
}

// TotalExpenses sums the amounts of all non-income records.
func (s *Store) TotalExpenses() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		if !s.items[i].IsIncome {
			total = total.Add(s.items[i].Amount)
		}
	}
	return total
}

// TotalIncome sums the amounts of all income records.
func (s *Store) TotalIncome() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for i := range s.items {
		if s.items[i].IsIncome {
			total = total.Add(s.items[i].Amount)
		}
	}
	return total
}

// Balance is income minus expenses.
func (s *Store) Balance() decimal.Decimal {
	return s.TotalIncome().Sub(s.TotalExpenses())
}

// ByCategory sums expense amounts per category. Income records are
// excluded, and categories whose total is zero are omitted.
func (s *Store) ByCategory() map[models.ExpenseCategory]decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[models.ExpenseCategory]decimal.Decimal)
	for i := range s.items {
		if s.items[i].IsIncome {
			continue
		}
		out[s.items[i].Category] = out[s.items[i].Category].Add(s.items[i].Amount)
	}
	for c, total := range out {
		if total.IsZero() {
			delete(out, c)
		}
	}
	return out
}

func (s *Store) persist(ctx context.Context) error {
	return partition.Save(ctx, s.kv, PartitionKey(s.userID), s.items)
}
