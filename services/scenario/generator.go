// Package scenario samples front-desk training scenarios from a trainer config.
package scenario

import (
	"strings"

	"reservodojo/models"
)

// NoExtras is shown when a scenario has neither breakfast nor extras.
const NoExtras = "(none)"

// Generator samples scenarios from a trainer config using its own random
// source. A Generator is not safe for concurrent use; give each session its own.
type Generator struct {
	rng Rand
}

func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate draws, in order, the guest/category pairing, the stay, the extras
// and the breakfast. Any configuration error aborts generation.
func (g *Generator) Generate(cfg models.TrainerConfig) (models.Scenario, error) {
	pairing, err := ChooseGuestAndCategory(g.rng, cfg.Guests, cfg.RoomCategories)
	if err != nil {
		return models.Scenario{}, err
	}
	stay, err := SampleStay(g.rng, cfg.BookingWindow, cfg.StayLengthNights)
	if err != nil {
		return models.Scenario{}, err
	}

	extras := SampleExtras(g.rng, cfg.ExtraServices, pairing.Category.CategoryExtras, cfg.MaxServices)
	if breakfast, ok := SampleBreakfast(g.rng, cfg.BreakfastPolicy, cfg.BreakfastTypes, pairing.GuestCount); ok {
		extras = append([]string{BreakfastLabel + breakfast}, extras...)
	}

	summary := NoExtras
	if len(extras) > 0 {
		summary = strings.Join(extras, ", ")
	}

	return models.Scenario{
		GuestName:     strings.TrimSpace(pairing.Guest.FullName),
		GuestComment:  strings.TrimSpace(pairing.Guest.Comment),
		RoomCategory:  strings.TrimSpace(pairing.Category.Name),
		GuestCount:    pairing.GuestCount,
		Arrival:       FormatDate(stay.Arrival),
		Departure:     FormatDate(stay.Departure),
		Nights:        stay.Nights,
		ExtraServices: summary,
	}, nil
}

// GenerateScenario is a one-shot Generate.
func GenerateScenario(rng Rand, cfg models.TrainerConfig) (models.Scenario, error) {
	return NewGenerator(rng).Generate(cfg)
}
