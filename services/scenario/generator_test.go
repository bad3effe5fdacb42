package scenario

import (
	"strings"
	"testing"

	"reservodojo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janeDoeConfig() models.TrainerConfig {
	return models.TrainerConfig{
		BookingWindow:    models.BookingWindow{EarliestArrival: "2027-01-01", LatestArrival: "2027-01-01"},
		StayLengthNights: models.StayLength{Min: 2, Max: 2},
		MaxServices:      0,
		Guests:           []models.GuestProfile{{FullName: "Jane Doe", MinGuests: 2, MaxGuests: 2}},
		RoomCategories:   []models.RoomCategory{{Name: "Suite", MinGuests: 1, MaxGuests: 3}},
		ExtraServices:    []string{"Parking", "Pet"},
		BreakfastPolicy:  models.BreakfastPolicy{Enabled: false, ProbabilityAnyBreakfast: 1, ProbabilityFullGroupIfAny: 1},
		BreakfastTypes:   []string{"Continental"},
	}
}

func TestGenerate_OnlyPossibleOutcome(t *testing.T) {
	want := models.Scenario{
		GuestName:     "Jane Doe",
		RoomCategory:  "Suite",
		GuestCount:    2,
		Arrival:       "2027-01-01",
		Departure:     "2027-01-03",
		Nights:        2,
		ExtraServices: NoExtras,
	}
	for seed := int64(1); seed <= 50; seed++ {
		got, err := GenerateScenario(seeded(seed), janeDoeConfig())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestGenerate_BreakfastComesFirst(t *testing.T) {
	cfg := models.TrainerConfig{
		BookingWindow:    models.BookingWindow{EarliestArrival: "2027-05-01", LatestArrival: "2027-05-01"},
		StayLengthNights: models.StayLength{Min: 1, Max: 1},
		MaxServices:      1,
		Guests:           []models.GuestProfile{{FullName: " Ann Lee ", Comment: " VIP ", MinGuests: 1, MaxGuests: 1}},
		RoomCategories:   []models.RoomCategory{{Name: "Single", MinGuests: 1, MaxGuests: 1, CategoryExtras: models.CategoryExtras{"Balcony"}}},
		ExtraServices:    []string{"Parking"},
		BreakfastPolicy:  enabledPolicy,
		BreakfastTypes:   []string{"Continental"},
	}
	// pair, count, arrival offset, nights, k, extra pick, breakfast type
	rng := script(t, []int{0, 0, 0, 0, 1, 1, 0}, []float64{0.1})

	got, err := NewGenerator(rng).Generate(cfg)
	require.NoError(t, err)
	rng.exhausted()
	assert.Equal(t, "Ann Lee", got.GuestName)
	assert.Equal(t, "VIP", got.GuestComment)
	assert.Equal(t, "Breakfast: 1x Continental, Balcony", got.ExtraServices)
}

func TestGenerate_BreakfastOnly(t *testing.T) {
	cfg := janeDoeConfig()
	cfg.BreakfastPolicy = models.BreakfastPolicy{Enabled: true, ProbabilityAnyBreakfast: 1, ProbabilityFullGroupIfAny: 1}

	got, err := GenerateScenario(seeded(3), cfg)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast: 2x Continental", got.ExtraServices)
}

func TestGenerate_PropagatesConfigErrors(t *testing.T) {
	cfg := janeDoeConfig()
	cfg.Guests = nil
	_, err := GenerateScenario(seeded(1), cfg)
	require.ErrorIs(t, err, ErrNoGuests)

	cfg = janeDoeConfig()
	cfg.Guests[0] = models.GuestProfile{FullName: "Crowd", MinGuests: 5, MaxGuests: 5}
	cfg.RoomCategories[0] = models.RoomCategory{Name: "Double", MinGuests: 1, MaxGuests: 2}
	_, err = GenerateScenario(seeded(1), cfg)
	require.ErrorIs(t, err, ErrNoCompatiblePair)

	cfg = janeDoeConfig()
	cfg.BookingWindow = models.BookingWindow{}
	_, err = GenerateScenario(seeded(1), cfg)
	require.ErrorIs(t, err, ErrMissingBookingWindow)
}

func hostelConfig() models.TrainerConfig {
	return models.TrainerConfig{
		BookingWindow:       models.BookingWindow{EarliestArrival: "2027-01-01", LatestArrival: "2027-03-01"},
		StayLengthNights:    models.StayLength{Min: 1, Max: 5},
		MaxServices:         3,
		FollowUpProbability: 0.33,
		Guests: []models.GuestProfile{
			{FullName: "John Doe", MinGuests: 1, MaxGuests: 99},
			{FullName: "Maria Rossi", Comment: "Arrives late", MinGuests: 2, MaxGuests: 4},
			{FullName: "School Trip", MinGuests: 6, MaxGuests: 12},
		},
		RoomCategories: []models.RoomCategory{
			{Name: "Double room", MinGuests: 1, MaxGuests: 2, CategoryExtras: models.CategoryExtras{"Baby bed", "Balcony"}},
			{Name: "Family room", MinGuests: 2, MaxGuests: 5, CategoryExtras: models.CategoryExtras{"Extra bed", "Parking"}},
			{Name: "Dorm", MinGuests: 4, MaxGuests: 10},
		},
		ExtraServices:   []string{"Late check-in", "Parking", "Pet"},
		FollowUpTasks:   []string{"Extend booking by one night"},
		BreakfastPolicy: enabledPolicy,
		BreakfastTypes:  []string{"Continental", "Vegan"},
	}
}

func TestGenerate_Invariants(t *testing.T) {
	cfg := hostelConfig()
	guests := map[string]models.GuestProfile{}
	for _, g := range cfg.Guests {
		guests[g.FullName] = g
	}
	cats := map[string]models.RoomCategory{}
	for _, c := range cfg.RoomCategories {
		cats[c.Name] = c
	}
	earliest, _ := ParseDate(cfg.BookingWindow.EarliestArrival)
	latest, _ := ParseDate(cfg.BookingWindow.LatestArrival)

	for seed := int64(1); seed <= 1000; seed++ {
		s, err := GenerateScenario(seeded(seed), cfg)
		require.NoError(t, err)

		g, c := guests[s.GuestName], cats[s.RoomCategory]
		require.GreaterOrEqual(t, s.GuestCount, max(g.MinGuests, c.MinGuests))
		require.LessOrEqual(t, s.GuestCount, min(g.MaxGuests, c.MaxGuests))

		arrival, err := ParseDate(s.Arrival)
		require.NoError(t, err)
		departure, err := ParseDate(s.Departure)
		require.NoError(t, err)
		require.False(t, arrival.Before(earliest) || arrival.After(latest))
		require.Equal(t, arrival.AddDate(0, 0, s.Nights), departure)
		require.True(t, s.Nights >= 1 && s.Nights <= 5)

		if idx := strings.Index(s.ExtraServices, "Breakfast"); idx >= 0 {
			require.Equal(t, 0, idx, "breakfast must come first: %q", s.ExtraServices)
			if s.GuestCount == 1 {
				require.Regexp(t, `^Breakfast: 1x [A-Za-z]+(, |$)`, s.ExtraServices)
				require.NotRegexp(t, `^Breakfast: 1x [A-Za-z]+, 1x `, s.ExtraServices)
			}
		}
	}
}

func TestGenerate_ExtrasWithoutBreakfast(t *testing.T) {
	cfg := hostelConfig()
	cfg.BreakfastPolicy.Enabled = false

	for seed := int64(1); seed <= 500; seed++ {
		s, err := GenerateScenario(seeded(seed), cfg)
		require.NoError(t, err)
		require.NotContains(t, s.ExtraServices, "Breakfast")
		if s.ExtraServices == NoExtras {
			continue
		}
		extras := strings.Split(s.ExtraServices, ", ")
		require.LessOrEqual(t, len(extras), cfg.MaxServices)
		seen := map[string]bool{}
		for _, e := range extras {
			require.False(t, seen[e], "duplicate extra %q", e)
			seen[e] = true
		}
	}
}
