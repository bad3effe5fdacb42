// File: models/trainer_config.go
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TrainerConfig is the full set of inputs the scenario generator samples from.
// Keys follow the snake_case layout of the trainer config files.
type TrainerConfig struct {
	BookingWindow       BookingWindow   `json:"booking_window" bson:"booking_window" mapstructure:"booking_window"`
	StayLengthNights    StayLength      `json:"stay_length_nights" bson:"stay_length_nights" mapstructure:"stay_length_nights"`
	MaxServices         int             `json:"max_services" bson:"max_services" mapstructure:"max_services"`
	FollowUpProbability float64         `json:"follow_up_probability" bson:"follow_up_probability" mapstructure:"follow_up_probability"`
	Guests              []GuestProfile  `json:"guests" bson:"guests" mapstructure:"guests"`
	RoomCategories      []RoomCategory  `json:"room_categories" bson:"room_categories" mapstructure:"room_categories"`
	ExtraServices       []string        `json:"extra_services" bson:"extra_services" mapstructure:"extra_services"`
	FollowUpTasks       []string        `json:"follow_up_tasks" bson:"follow_up_tasks" mapstructure:"follow_up_tasks"`
	BreakfastPolicy     BreakfastPolicy `json:"breakfast_policy" bson:"breakfast_policy" mapstructure:"breakfast_policy"`
	BreakfastTypes      []string        `json:"breakfast_types" bson:"breakfast_types" mapstructure:"breakfast_types"`
}

// BookingWindow bounds the arrival date. Both ends are ISO dates (YYYY-MM-DD).
type BookingWindow struct {
	EarliestArrival string `json:"earliest_arrival" bson:"earliest_arrival" mapstructure:"earliest_arrival"`
	LatestArrival   string `json:"latest_arrival" bson:"latest_arrival" mapstructure:"latest_arrival"`
}

type StayLength struct {
	Min int `json:"min" bson:"min" mapstructure:"min"`
	Max int `json:"max" bson:"max" mapstructure:"max"`
}

type BreakfastPolicy struct {
	Enabled                   bool    `json:"enabled" bson:"enabled" mapstructure:"enabled"`
	ProbabilityAnyBreakfast   float64 `json:"probability_any_breakfast" bson:"probability_any_breakfast" mapstructure:"probability_any_breakfast"`
	ProbabilityFullGroupIfAny float64 `json:"probability_full_group_if_any" bson:"probability_full_group_if_any" mapstructure:"probability_full_group_if_any"`
}

// GuestProfile is a named guest template with the party sizes it may travel with.
type GuestProfile struct {
	FullName  string `json:"full_name" bson:"full_name" mapstructure:"full_name"`
	Comment   string `json:"comment" bson:"comment" mapstructure:"comment"`
	MinGuests int    `json:"min_guests" bson:"min_guests" mapstructure:"min_guests"`
	MaxGuests int    `json:"max_guests" bson:"max_guests" mapstructure:"max_guests"`
}

// RoomCategory is a bookable room type. CategoryExtras are only offered when
// this category is the one drawn.
type RoomCategory struct {
	Name           string         `json:"name" bson:"name" mapstructure:"name"`
	MinGuests      int            `json:"min_guests" bson:"min_guests" mapstructure:"min_guests"`
	MaxGuests      int            `json:"max_guests" bson:"max_guests" mapstructure:"max_guests"`
	CategoryExtras CategoryExtras `json:"category_extras" bson:"category_extras" mapstructure:"category_extras"`
}

// CategoryExtras is the list form of a room category's extras. The config
// editor stores them as "Baby bed; Balcony", so decoding also accepts a
// semicolon-delimited string.
type CategoryExtras []string

// SplitCategoryExtras splits a semicolon-delimited extras string, trimming
// entries and dropping empty ones.
func SplitCategoryExtras(s string) CategoryExtras {
	out := CategoryExtras{}
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String renders the extras the way the config editor shows them.
func (e CategoryExtras) String() string {
	return strings.Join(e, "; ")
}

func (e *CategoryExtras) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extras, err := CategoryExtrasFrom(raw)
	if err != nil {
		return err
	}
	*e = extras
	return nil
}

// CategoryExtrasFrom converts a decoded value (nil, string or list) into
// CategoryExtras.
func CategoryExtrasFrom(v any) (CategoryExtras, error) {
	switch t := v.(type) {
	case nil:
		return CategoryExtras{}, nil
	case string:
		return SplitCategoryExtras(t), nil
	case CategoryExtras:
		return cleanExtras(t), nil
	case []string:
		return cleanExtras(t), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, fmt.Sprint(item))
		}
		return cleanExtras(items), nil
	default:
		return nil, fmt.Errorf("category_extras: unsupported type %T", v)
	}
}

func cleanExtras(items []string) CategoryExtras {
	out := CategoryExtras{}
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy so callers can adjust a config without touching
// the stored one.
func (c TrainerConfig) Clone() TrainerConfig {
	out := c
	out.Guests = slices.Clone(c.Guests)
	if c.RoomCategories != nil {
		out.RoomCategories = make([]RoomCategory, len(c.RoomCategories))
		for i, rc := range c.RoomCategories {
			rc.CategoryExtras = slices.Clone(rc.CategoryExtras)
			out.RoomCategories[i] = rc
		}
	}
	out.ExtraServices = slices.Clone(c.ExtraServices)
	out.FollowUpTasks = slices.Clone(c.FollowUpTasks)
	out.BreakfastTypes = slices.Clone(c.BreakfastTypes)
	return out
}
