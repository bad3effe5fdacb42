package draftRepo

import (
	"context"
	"testing"
	"time"

	"reservodojo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStore_RoundTripAndExpiry(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	store := NewMemoryDraftStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	draft := &models.ScenarioDraft{
		GeneratedID:     "2026-10-15_09-00-00",
		AccommodationID: "acc-1",
		UserID:          "u-1",
		Scenario:        models.Scenario{GuestName: "Jane Doe"},
		EffectiveConfig: models.TrainerConfig{FollowUpTasks: []string{"Call guest"}},
	}
	require.NoError(t, store.Save(ctx, draft, time.Hour))

	got, err := store.Get(ctx, "acc-1", "u-1", draft.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Scenario.GuestName)

	got.EffectiveConfig.FollowUpTasks[0] = "changed"
	again, err := store.Get(ctx, "acc-1", "u-1", draft.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, "Call guest", again.EffectiveConfig.FollowUpTasks[0])

	_, err = store.Get(ctx, "acc-1", "u-2", draft.GeneratedID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, "acc-1", "u-1", draft.GeneratedID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestMemoryDraftStore_Delete(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()
	draft := &models.ScenarioDraft{GeneratedID: "g", AccommodationID: "a", UserID: "u"}
	require.NoError(t, store.Save(ctx, draft, 0))

	require.NoError(t, store.Delete(ctx, "a", "u", "g"))
	assert.ErrorIs(t, store.Delete(ctx, "a", "u", "g"), ErrDraftNotFound)
}

func TestMemoryDraftStore_SaveDoesNotOverwrite(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	store := NewMemoryDraftStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	first := &models.ScenarioDraft{GeneratedID: "g", AccommodationID: "a", UserID: "u", Scenario: models.Scenario{GuestName: "First"}}
	second := &models.ScenarioDraft{GeneratedID: "g", AccommodationID: "a", UserID: "u", Scenario: models.Scenario{GuestName: "Second"}}
	require.NoError(t, store.Save(ctx, first, time.Minute))
	assert.ErrorIs(t, store.Save(ctx, second, time.Minute), ErrDraftExists)

	got, err := store.Get(ctx, "a", "u", "g")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Scenario.GuestName)

	now = now.Add(time.Minute)
	require.NoError(t, store.Save(ctx, second, time.Minute))
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "draft:acc:user:2026-10-15_09-00-00", DraftKey("acc", "user", "2026-10-15_09-00-00"))
}
