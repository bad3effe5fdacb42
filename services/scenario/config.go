package scenario

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"reservodojo/models"

	"github.com/mitchellh/mapstructure"
)

// Defaults applied by NormalizeConfig when a key is absent.
const (
	DefaultWindowDays          = 90
	DefaultStayMin             = 1
	DefaultStayMax             = 5
	DefaultMaxServices         = 3
	DefaultFollowUpProbability = 0.33
	DefaultBreakfastAny        = 0.7
	DefaultBreakfastFullGroup  = 0.7
	DefaultGuestMin            = 1
	DefaultGuestMax            = 99
	DefaultCategoryMin         = 1

	// MaxStayNights is the longest stay a config may ask for.
	MaxStayNights = 365
)

const dateLayout = "2006-01-02"

// RawConfig is a trainer config as read from a file or request body. Pointer
// and nil fields mark keys that were absent.
type RawConfig struct {
	BookingWindow       *models.BookingWindow `json:"booking_window,omitempty" mapstructure:"booking_window"`
	StayLengthNights    *RawStayLength        `json:"stay_length_nights,omitempty" mapstructure:"stay_length_nights"`
	MaxServices         *int                  `json:"max_services,omitempty" mapstructure:"max_services"`
	FollowUpProbability *float64              `json:"follow_up_probability,omitempty" mapstructure:"follow_up_probability"`
	Guests              []RawGuest            `json:"guests,omitempty" mapstructure:"guests"`
	RoomCategories      []RawRoomCategory     `json:"room_categories,omitempty" mapstructure:"room_categories"`
	ExtraServices       []string              `json:"extra_services,omitempty" mapstructure:"extra_services"`
	FollowUpTasks       []string              `json:"follow_up_tasks,omitempty" mapstructure:"follow_up_tasks"`
	BreakfastPolicy     *RawBreakfastPolicy   `json:"breakfast_policy,omitempty" mapstructure:"breakfast_policy"`
	BreakfastTypes      []string              `json:"breakfast_types,omitempty" mapstructure:"breakfast_types"`
}

type RawStayLength struct {
	Min *int `json:"min,omitempty" mapstructure:"min"`
	Max *int `json:"max,omitempty" mapstructure:"max"`
}

type RawBreakfastPolicy struct {
	Enabled                   *bool    `json:"enabled,omitempty" mapstructure:"enabled"`
	ProbabilityAnyBreakfast   *float64 `json:"probability_any_breakfast,omitempty" mapstructure:"probability_any_breakfast"`
	ProbabilityFullGroupIfAny *float64 `json:"probability_full_group_if_any,omitempty" mapstructure:"probability_full_group_if_any"`
}

type RawGuest struct {
	FullName  string  `json:"full_name" mapstructure:"full_name"`
	Comment   *string `json:"comment,omitempty" mapstructure:"comment"`
	MinGuests *int    `json:"min_guests,omitempty" mapstructure:"min_guests"`
	MaxGuests *int    `json:"max_guests,omitempty" mapstructure:"max_guests"`
}

type RawRoomCategory struct {
	Name           string                `json:"name" mapstructure:"name"`
	MinGuests      *int                  `json:"min_guests,omitempty" mapstructure:"min_guests"`
	MaxGuests      *int                  `json:"max_guests,omitempty" mapstructure:"max_guests"`
	CategoryExtras models.CategoryExtras `json:"category_extras,omitempty" mapstructure:"category_extras"`
}

var categoryExtrasType = reflect.TypeOf(models.CategoryExtras{})

// DecodeRawConfig decodes a loosely typed document (viper settings, a JSON
// object bound to a map) into a RawConfig. Numeric strings are accepted and
// category_extras may be a list or a "a; b" string.
func DecodeRawConfig(input map[string]any) (RawConfig, error) {
	var raw RawConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
		DecodeHook: func(from, to reflect.Type, data any) (any, error) {
			if to == categoryExtrasType {
				return models.CategoryExtrasFrom(data)
			}
			return data, nil
		},
	})
	if err != nil {
		return RawConfig{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return RawConfig{}, fmt.Errorf("decode trainer config: %w", err)
	}
	return raw, nil
}

// DefaultConfig is the config used when an accommodation has none stored:
// a 90-day booking window starting today and empty pools.
func DefaultConfig(today time.Time) models.TrainerConfig {
	start := dateOf(today)
	return models.TrainerConfig{
		BookingWindow: models.BookingWindow{
			EarliestArrival: start.Format(dateLayout),
			LatestArrival:   start.AddDate(0, 0, DefaultWindowDays).Format(dateLayout),
		},
		StayLengthNights:    models.StayLength{Min: DefaultStayMin, Max: DefaultStayMax},
		MaxServices:         DefaultMaxServices,
		FollowUpProbability: DefaultFollowUpProbability,
		Guests:              []models.GuestProfile{},
		RoomCategories:      []models.RoomCategory{},
		ExtraServices:       []string{},
		FollowUpTasks:       []string{},
		BreakfastPolicy: models.BreakfastPolicy{
			Enabled:                   false,
			ProbabilityAnyBreakfast:   DefaultBreakfastAny,
			ProbabilityFullGroupIfAny: DefaultBreakfastFullGroup,
		},
		BreakfastTypes: []string{},
	}
}

// NormalizeConfig fills every absent key with its default. It never fails;
// malformed values are left for ValidateConfig to report.
func NormalizeConfig(raw RawConfig, today time.Time) models.TrainerConfig {
	cfg := DefaultConfig(today)

	if raw.BookingWindow != nil {
		cfg.BookingWindow = *raw.BookingWindow
	}
	if s := raw.StayLengthNights; s != nil {
		if s.Min != nil {
			cfg.StayLengthNights.Min = *s.Min
		}
		if s.Max != nil {
			cfg.StayLengthNights.Max = *s.Max
		}
	}
	if raw.MaxServices != nil {
		cfg.MaxServices = *raw.MaxServices
	}
	if raw.FollowUpProbability != nil {
		cfg.FollowUpProbability = *raw.FollowUpProbability
	}
	if b := raw.BreakfastPolicy; b != nil {
		if b.Enabled != nil {
			cfg.BreakfastPolicy.Enabled = *b.Enabled
		}
		if b.ProbabilityAnyBreakfast != nil {
			cfg.BreakfastPolicy.ProbabilityAnyBreakfast = *b.ProbabilityAnyBreakfast
		}
		if b.ProbabilityFullGroupIfAny != nil {
			cfg.BreakfastPolicy.ProbabilityFullGroupIfAny = *b.ProbabilityFullGroupIfAny
		}
	}

	for _, g := range raw.Guests {
		guest := models.GuestProfile{
			FullName:  g.FullName,
			MinGuests: DefaultGuestMin,
			MaxGuests: DefaultGuestMax,
		}
		if g.Comment != nil {
			guest.Comment = *g.Comment
		}
		if g.MinGuests != nil {
			guest.MinGuests = *g.MinGuests
		}
		if g.MaxGuests != nil {
			guest.MaxGuests = *g.MaxGuests
		}
		cfg.Guests = append(cfg.Guests, guest)
	}

	for _, c := range raw.RoomCategories {
		category := models.RoomCategory{
			Name:           c.Name,
			MinGuests:      DefaultCategoryMin,
			CategoryExtras: models.CategoryExtras{},
		}
		if c.MinGuests != nil {
			category.MinGuests = *c.MinGuests
		}
		// A category without max_guests holds exactly its minimum, which keeps
		// the range valid for any min_guests.
		category.MaxGuests = category.MinGuests
		if c.MaxGuests != nil {
			category.MaxGuests = *c.MaxGuests
		}
		if c.CategoryExtras != nil {
			category.CategoryExtras = append(category.CategoryExtras, c.CategoryExtras...)
		}
		cfg.RoomCategories = append(cfg.RoomCategories, category)
	}

	cfg.ExtraServices = append(cfg.ExtraServices, raw.ExtraServices...)
	cfg.FollowUpTasks = append(cfg.FollowUpTasks, raw.FollowUpTasks...)
	cfg.BreakfastTypes = append(cfg.BreakfastTypes, raw.BreakfastTypes...)
	return cfg
}

// RawFromConfig turns a normalized config back into a RawConfig with every
// key present.
func RawFromConfig(cfg models.TrainerConfig) RawConfig {
	window := cfg.BookingWindow
	stayMin, stayMax := cfg.StayLengthNights.Min, cfg.StayLengthNights.Max
	maxServices := cfg.MaxServices
	followUp := cfg.FollowUpProbability
	enabled := cfg.BreakfastPolicy.Enabled
	pAny := cfg.BreakfastPolicy.ProbabilityAnyBreakfast
	pFull := cfg.BreakfastPolicy.ProbabilityFullGroupIfAny

	raw := RawConfig{
		BookingWindow:       &window,
		StayLengthNights:    &RawStayLength{Min: &stayMin, Max: &stayMax},
		MaxServices:         &maxServices,
		FollowUpProbability: &followUp,
		BreakfastPolicy: &RawBreakfastPolicy{
			Enabled:                   &enabled,
			ProbabilityAnyBreakfast:   &pAny,
			ProbabilityFullGroupIfAny: &pFull,
		},
		Guests:         make([]RawGuest, 0, len(cfg.Guests)),
		RoomCategories: make([]RawRoomCategory, 0, len(cfg.RoomCategories)),
		ExtraServices:  append([]string{}, cfg.ExtraServices...),
		FollowUpTasks:  append([]string{}, cfg.FollowUpTasks...),
		BreakfastTypes: append([]string{}, cfg.BreakfastTypes...),
	}
	for _, g := range cfg.Guests {
		comment, lo, hi := g.Comment, g.MinGuests, g.MaxGuests
		raw.Guests = append(raw.Guests, RawGuest{FullName: g.FullName, Comment: &comment, MinGuests: &lo, MaxGuests: &hi})
	}
	for _, c := range cfg.RoomCategories {
		lo, hi := c.MinGuests, c.MaxGuests
		raw.RoomCategories = append(raw.RoomCategories, RawRoomCategory{
			Name:           c.Name,
			MinGuests:      &lo,
			MaxGuests:      &hi,
			CategoryExtras: append(models.CategoryExtras{}, c.CategoryExtras...),
		})
	}
	return raw
}

// ValidateConfig returns every field-level problem in cfg, or nil.
func ValidateConfig(cfg models.TrainerConfig) []string {
	var errs []string

	earliest, errEarliest := ParseDate(cfg.BookingWindow.EarliestArrival)
	latest, errLatest := ParseDate(cfg.BookingWindow.LatestArrival)
	switch {
	case errEarliest != nil || errLatest != nil:
		errs = append(errs, "booking_window dates must be valid ISO dates (YYYY-MM-DD)")
	case latest.Before(earliest):
		errs = append(errs, "booking_window.latest_arrival must be on or after earliest_arrival")
	}

	if cfg.StayLengthNights.Min < 1 {
		errs = append(errs, "stay_length_nights.min must be >= 1")
	}
	if cfg.StayLengthNights.Max < cfg.StayLengthNights.Min {
		errs = append(errs, "stay_length_nights.max must be >= stay_length_nights.min")
	}
	if cfg.StayLengthNights.Max > MaxStayNights {
		errs = append(errs, fmt.Sprintf("stay_length_nights.max must be <= %d", MaxStayNights))
	}
	if cfg.MaxServices < 0 {
		errs = append(errs, "max_services must be >= 0")
	}
	if !isProbability(cfg.FollowUpProbability) {
		errs = append(errs, "follow_up_probability must be between 0 and 1")
	}
	if !isProbability(cfg.BreakfastPolicy.ProbabilityAnyBreakfast) {
		errs = append(errs, "breakfast_policy.probability_any_breakfast must be between 0 and 1")
	}
	if !isProbability(cfg.BreakfastPolicy.ProbabilityFullGroupIfAny) {
		errs = append(errs, "breakfast_policy.probability_full_group_if_any must be between 0 and 1")
	}

	for i, g := range cfg.Guests {
		if strings.TrimSpace(g.FullName) == "" {
			errs = append(errs, fmt.Sprintf("guests[%d].full_name is empty", i))
		}
		errs = append(errs, rangeErrors(fmt.Sprintf("guests[%d]", i), g.MinGuests, g.MaxGuests)...)
	}
	for i, c := range cfg.RoomCategories {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Sprintf("room_categories[%d].name is empty", i))
		}
		errs = append(errs, rangeErrors(fmt.Sprintf("room_categories[%d]", i), c.MinGuests, c.MaxGuests)...)
	}
	return errs
}

func rangeErrors(prefix string, lo, hi int) []string {
	var errs []string
	if lo < 1 {
		errs = append(errs, prefix+".min_guests must be >= 1")
	}
	if hi < lo {
		errs = append(errs, prefix+".max_guests must be >= min_guests")
	}
	return errs
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// ParseDate parses an ISO calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
