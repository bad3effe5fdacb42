// File: models/scenario.go
package models

import "time"

// Scenario is one sampled training exercise. It is never mutated once generated.
type Scenario struct {
	GuestName     string `json:"guestName" bson:"guestName"`
	GuestComment  string `json:"guestComment" bson:"guestComment"`
	RoomCategory  string `json:"roomCategory" bson:"roomCategory"`
	GuestCount    int    `json:"guestCount" bson:"guestCount"`
	Arrival       string `json:"arrival" bson:"arrival"`
	Departure     string `json:"departure" bson:"departure"`
	Nights        int    `json:"nights" bson:"nights"`
	ExtraServices string `json:"extraServices" bson:"extraServices"`
}

// ScenarioDraft is a generated scenario waiting for the trainee to enter it
// into the PMS and mark it finished.
type ScenarioDraft struct {
	GeneratedID     string        `json:"generatedId"`
	AccommodationID string        `json:"accommodationId"`
	UserID          string        `json:"userId"`
	Difficulty      string        `json:"difficulty"`
	Seed            int64         `json:"seed"`
	Scenario        Scenario      `json:"scenario"`
	EffectiveConfig TrainerConfig `json:"effectiveConfig"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// StoredConfig is the per-accommodation trainer config document.
type StoredConfig struct {
	AccommodationID string        `json:"accommodationId" bson:"accommodationId"`
	Config          TrainerConfig `json:"config" bson:"config"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}
