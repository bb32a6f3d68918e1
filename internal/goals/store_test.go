package goals

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/models"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/partition"
	"github.com/ametova/finkeeper/internal/session"
)

func setup(t *testing.T) (*Store, *session.Store, *kvstore.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	kv := kvstore.NewMemoryStore()
	rec := notify.NewRecorder()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := session.New(kv, rec, log, session.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, sess.Restore(ctx))

	store := New(kv, sess, rec, log, WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, sess.Register(ctx, "User", "user@x.com", "pw123456"))
	return store, sess, kv
}

func newGoal(name string, target int64) models.Goal {
	return models.Goal{
		Name:         name,
		TargetAmount: decimal.NewFromInt(target),
		Category:     models.GoalVacation,
		TargetDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdd_AssignsIDAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setup(t)

	g, err := store.Add(ctx, newGoal("Trip", 3000))
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), g.CreatedAt)
	require.Len(t, store.Items(), 1)
}

func TestAddToGoal_ClampScenario(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setup(t)

	g, err := store.Add(ctx, newGoal("Trip", 3000))
	require.NoError(t, err)
	require.NoError(t, store.AddToGoal(ctx, g.ID, decimal.NewFromInt(500)))

	// Withdrawing more than the balance clamps to zero.
	require.NoError(t, store.AddToGoal(ctx, g.ID, decimal.NewFromInt(-1000)))

	items := store.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].CurrentAmount.IsZero())
}

func TestAddToGoal_UnknownIDIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setup(t)

	require.NoError(t, store.AddToGoal(ctx, "ghost", decimal.NewFromInt(100)))
	assert.Empty(t, store.Items())
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setup(t)

	g, err := store.Add(ctx, newGoal("Trip", 3000))
	require.NoError(t, err)

	name := "Big trip"
	require.NoError(t, store.Update(ctx, g.ID, models.GoalPatch{Name: &name}))
	assert.Equal(t, "Big trip", store.Items()[0].Name)
	assert.Equal(t, g.CreatedAt, store.Items()[0].CreatedAt, "CreatedAt is store-managed")

	require.NoError(t, store.Delete(ctx, g.ID))
	assert.Empty(t, store.Items())
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setup(t)

	a, err := store.Add(ctx, newGoal("A", 1000))
	require.NoError(t, err)
	_, err = store.Add(ctx, newGoal("B", 2500))
	require.NoError(t, err)
	require.NoError(t, store.AddToGoal(ctx, a.ID, decimal.NewFromInt(400)))

	assert.True(t, store.TotalTarget().Equal(decimal.NewFromInt(3500)))
	assert.True(t, store.TotalSaved().Equal(decimal.NewFromInt(400)))
}

func TestPersistedMatchesMemory(t *testing.T) {
	ctx := context.Background()
	store, sess, kv := setup(t)

	g, err := store.Add(ctx, newGoal("Trip", 3000))
	require.NoError(t, err)
	require.NoError(t, store.AddToGoal(ctx, g.ID, decimal.NewFromInt(250)))

	persisted, ok, err := partition.Load[models.Goal](ctx, kv, PartitionKey(sess.Current().ID))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, store.Items(), persisted)
}
