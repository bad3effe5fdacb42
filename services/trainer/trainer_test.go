package trainer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	configRepo "reservodojo/database/repository/configs"
	draftRepo "reservodojo/database/repository/drafts"
	taskRepo "reservodojo/database/repository/tasks"
	"reservodojo/models"
	"reservodojo/services/export"
	"reservodojo/services/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type recordingEnqueuer struct {
	mu       sync.Mutex
	payloads []export.Payload
	err      error
}

func (r *recordingEnqueuer) Enqueue(ctx context.Context, p export.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	return r.err
}

type fixture struct {
	svc     *DefaultTrainerService
	configs *configRepo.MemoryConfigRepo
	tasks   *taskRepo.MemoryTaskRepo
	drafts  *draftRepo.MemoryDraftStore
	exports *recordingEnqueuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		configs: configRepo.NewMemoryConfigRepo(),
		tasks:   taskRepo.NewMemoryTaskRepo(),
		drafts:  draftRepo.NewMemoryDraftStore().WithClock(func() time.Time { return clock }),
		exports: &recordingEnqueuer{},
	}
	var next int64
	f.svc = &DefaultTrainerService{
		Configs:  f.configs,
		Tasks:    f.tasks,
		Drafts:   f.drafts,
		Exports:  f.exports,
		DraftTTL: time.Hour,
		Now:      func() time.Time { return clock },
		NewSeed: func() (int64, error) {
			next++
			return next, nil
		},
	}
	return f
}

func ptr[T any](v T) *T { return &v }

func hotelRaw() scenario.RawConfig {
	return scenario.RawConfig{
		BookingWindow:       &models.BookingWindow{EarliestArrival: "2026-11-01", LatestArrival: "2026-11-30"},
		MaxServices:         ptr(2),
		FollowUpProbability: ptr(1.0),
		Guests: []scenario.RawGuest{
			{FullName: "Jane Doe", MinGuests: ptr(1), MaxGuests: ptr(2)},
		},
		RoomCategories: []scenario.RawRoomCategory{
			{Name: "Double", MinGuests: ptr(1), MaxGuests: ptr(2), CategoryExtras: models.CategoryExtras{"Baby bed"}},
		},
		ExtraServices: []string{"Parking", "Late checkout"},
		FollowUpTasks: []string{"Guest asks for an invoice"},
		BreakfastPolicy: &scenario.RawBreakfastPolicy{
			Enabled:                 ptr(true),
			ProbabilityAnyBreakfast: ptr(1.0),
		},
		BreakfastTypes: []string{"Continental"},
	}
}

func TestGetConfig_DefaultWhenNothingStored(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.GetConfig(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.False(t, view.Stored)
	assert.Nil(t, view.UpdatedAt)
	assert.Equal(t, "2026-10-15", view.Config.BookingWindow.EarliestArrival)
	assert.Equal(t, "2027-01-13", view.Config.BookingWindow.LatestArrival)
	assert.NotNil(t, view.Errors)
}

func TestSaveConfig_InvalidStoresNothing(t *testing.T) {
	f := newFixture(t)
	raw := hotelRaw()
	raw.Guests[0].FullName = " "
	raw.StayLengthNights = &scenario.RawStayLength{Min: ptr(4), Max: ptr(2)}

	_, err := f.svc.SaveConfig(context.Background(), "acc-1", raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Errors), 2)

	_, err = f.configs.Get(context.Background(), "acc-1")
	assert.ErrorIs(t, err, configRepo.ErrConfigNotFound)
}

func TestSaveConfig_StoresNormalized(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)
	assert.True(t, view.Stored)
	assert.Empty(t, view.Errors)
	assert.Equal(t, scenario.DefaultStayMin, view.Config.StayLengthNights.Min)
	assert.Equal(t, scenario.DefaultBreakfastFullGroup, view.Config.BreakfastPolicy.ProbabilityFullGroupIfAny)
}

func TestNewScenario_ConfigErrorsPropagate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", nil)
	var cfgErr *scenario.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, scenario.ErrNoGuests)
}

func TestNewScenario_SeedIsReproducible(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)

	a, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", ptr(int64(99)))
	require.NoError(t, err)
	b, err := f.svc.NewScenario(context.Background(), "acc-1", "u-2", "hard", ptr(int64(99)))
	require.NoError(t, err)
	assert.Equal(t, a.Scenario, b.Scenario)
	assert.Equal(t, int64(99), a.Seed)
	assert.Equal(t, "2026-10-15_09-30-00", a.GeneratedID)
	assert.True(t, strings.HasPrefix(a.Scenario.ExtraServices, "Breakfast: "))

	stored, err := f.svc.GetDraft(context.Background(), "acc-1", "u-1", a.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, a.Scenario, stored.Scenario)
}

func TestNewScenario_Difficulty(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)

	for seed := int64(0); seed < 50; seed++ {
		d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "Medium", &seed)
		require.NoError(t, err)
		assert.Equal(t, scenario.NoExtras, d.Scenario.ExtraServices)
		assert.Equal(t, "medium", d.Difficulty)
	}

	d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "easy", nil)
	require.NoError(t, err)
	res, err := f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "BN-100")
	require.NoError(t, err)
	assert.Nil(t, res.Task.FollowUpText)
}

func TestFinishScenario(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)
	d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", nil)
	require.NoError(t, err)

	res, err := f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "  BN 4711 ")
	require.NoError(t, err)

	assert.Equal(t, "BN 4711", res.Task.BookingNumber)
	assert.Equal(t, models.ReviewStatusNew, res.Task.ReviewStatus)
	require.NotNil(t, res.Task.FollowUpText)
	assert.Equal(t, "Guest asks for an invoice", *res.Task.FollowUpText)
	assert.Equal(t, "PMS_Task_2026-10-15_09-30-00_BN-BN_4711.txt", res.FileName)
	assert.Contains(t, res.Text, "Follow-up: Guest asks for an invoice")

	stored, err := f.tasks.GetByID(context.Background(), "acc-1", res.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Scenario, stored.Scenario)

	_, err = f.drafts.Get(context.Background(), "acc-1", "u-1", d.GeneratedID)
	assert.ErrorIs(t, err, draftRepo.ErrDraftNotFound)

	require.Len(t, f.exports.payloads, 1)
	assert.Equal(t, res.Task.ID, f.exports.payloads[0].TaskID)
}

func TestNewScenario_SameSecondKeepsBothDrafts(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)

	first, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", ptr(int64(1)))
	require.NoError(t, err)
	second, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", ptr(int64(2)))
	require.NoError(t, err)

	assert.Equal(t, "2026-10-15_09-30-00", first.GeneratedID)
	assert.Equal(t, "2026-10-15_09-30-00-2", second.GeneratedID)

	stored, err := f.svc.GetDraft(context.Background(), "acc-1", "u-1", first.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Seed)
	stored, err = f.svc.GetDraft(context.Background(), "acc-1", "u-1", second.GeneratedID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Seed)
}

func TestFinishScenario_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)
	d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", nil)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		finished int
		missing  int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "BN-777")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				finished++
			case errors.Is(err, ErrDraftNotFound):
				missing++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, finished)
	assert.Equal(t, 7, missing)
	tasks, err := f.tasks.List(context.Background(), "acc-1", models.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

type failingTaskRepo struct {
	*taskRepo.MemoryTaskRepo
}

func (failingTaskRepo) Insert(ctx context.Context, task *models.Task) (string, error) {
	return "", errors.New("mongo unavailable")
}

func TestFinishScenario_InsertFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)
	d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", nil)
	require.NoError(t, err)

	f.svc.Tasks = failingTaskRepo{f.tasks}
	_, err = f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "BN-1")
	require.Error(t, err)

	_, err = f.drafts.Get(context.Background(), "acc-1", "u-1", d.GeneratedID)
	require.NoError(t, err)

	f.svc.Tasks = f.tasks
	_, err = f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "BN-1")
	require.NoError(t, err)
}

func TestFinishScenario_BookingNumberChecks(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FinishScenario(context.Background(), "acc-1", "u-1", "g", "   ")
	assert.ErrorIs(t, err, ErrBookingNumberRequired)
	_, err = f.svc.FinishScenario(context.Background(), "acc-1", "u-1", "g", "12")
	assert.ErrorIs(t, err, ErrBookingNumberTooShort)
	_, err = f.svc.FinishScenario(context.Background(), "acc-1", "u-1", "g", "123")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestFinishScenario_ExportFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.exports.err = errors.New("queue down")
	_, err := f.svc.SaveConfig(context.Background(), "acc-1", hotelRaw())
	require.NoError(t, err)
	d, err := f.svc.NewScenario(context.Background(), "acc-1", "u-1", "hard", nil)
	require.NoError(t, err)

	res, err := f.svc.FinishScenario(context.Background(), "acc-1", "u-1", d.GeneratedID, "BN-1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Task.ID)
}

func TestReviewAndRender(t *testing.T) {
	f := newFixture(t)
	id, err := f.tasks.Insert(context.Background(), &models.Task{
		AccommodationID: "acc-1",
		GeneratedID:     "2026-10-15_09-30-00",
		BookingNumber:   "BN-9",
		Scenario:        models.Scenario{GuestName: "Jane Doe", RoomCategory: "Double", GuestCount: 1, Nights: 1, ExtraServices: scenario.NoExtras},
		FinishedAt:      clock,
	})
	require.NoError(t, err)

	task, err := f.svc.SetReviewStatus(context.Background(), "acc-1", id, "needs_review")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusNeedsReview, task.ReviewStatus)

	_, err = f.svc.SetReviewStatus(context.Background(), "acc-1", id, "maybe")
	assert.ErrorIs(t, err, models.ErrInvalidReviewStatus)

	compact, err := f.svc.RenderTask(context.Background(), "acc-1", id, "")
	require.NoError(t, err)
	assert.Equal(t, "PMS_Task_2026-10-15_09-30-00_BN-BN-9.txt", compact.FileName)
	assert.True(t, strings.HasPrefix(compact.Content, "PMS TRAINING TASK | ID: 2026-10-15_09-30-00"))

	report, err := f.svc.RenderTask(context.Background(), "acc-1", id, "REPORT")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(report.Content, "\n"))

	_, err = f.svc.RenderTask(context.Background(), "acc-1", id, "pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = f.svc.RenderTask(context.Background(), "acc-2", id, "compact")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
