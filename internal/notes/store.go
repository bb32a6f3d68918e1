// Package notes owns the per-user note collection. UpdatedAt tracks the
// last content mutation.
package notes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ametova/finkeeper/internal/common"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/partition"
	"github.com/ametova/finkeeper/internal/session"
)

const resource = "notes"

// PartitionKey returns the storage key for a user's note partition.
func PartitionKey(userID string) string {
	return partition.Key(resource, userID)
}

// Store keeps the active user's notes in memory and rewrites the whole
// partition on every mutation.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	notifier notify.Notifier
	log      logging.Logger
	userID   string
	items    []models.Note
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

	items, ok, err := partition.Load[models.Note](ctx, s.kv, PartitionKey(id.ID))
	if err != nil {
		s.log.Error(ctx, "failed to load notes", "user_id", id.ID, "error", err)
		s.items = nil
		return
	}
	if !ok {
		items = []models.Note{}
		if err := partition.Save(ctx, s.kv, PartitionKey(id.ID), items); err != nil {
			s.log.Error(ctx, "failed to persist note fallback", "user_id", id.ID, "error", err)
		}
	}
	s.items = items
}

// Items returns the collection in insertion order.
func (s *Store) Items() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a partition load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Add assigns a fresh id and timestamps to n, appends it, and persists the
// collection.
func (s *Store) Add(ctx context.Context, n models.Note) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return models.Note{}, common.ErrNotAuthenticated
	}

	n.ID = s.newID()
	n.CreatedAt = s.now()
	n.UpdatedAt = n.CreatedAt
	s.items = append(s.items, n)
	if err := s.persist(ctx); err != nil {
		return models.Note{}, err
	}
	s.notifier.Success(ctx, "Note added")
	return n, nil
}

// Update applies the patch to the matching record and refreshes UpdatedAt.
// An unknown id is a silent no-op.
func (s *Store) Update(ctx context.Context, id string, patch models.NotePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return common.ErrNotAuthenticated
	}

	for i := range s.items {
		if s.items[i].ID == id {
			patch.Apply(&s.items[i])
			s.items[i].UpdatedAt = s.now()
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.Success(ctx, "Note updated")
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
	s.notifier.Success(ctx, "Note deleted")
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	return partition.Save(ctx, s.kv, PartitionKey(s.userID), s.items)
}
