package scenario

import (
	"fmt"
	"strings"

	"reservodojo/models"
)

// Pairing is a guest profile and room category whose occupancy ranges overlap
// on [Low, High]. GuestCount is set once a count has been drawn.
type Pairing struct {
	Guest      models.GuestProfile
	Category   models.RoomCategory
	Low        int
	High       int
	GuestCount int
}

// ValidGuests drops profiles that cannot take part in a pairing: an empty
// name or an occupancy range that is not 1 <= min <= max.
func ValidGuests(guests []models.GuestProfile) []models.GuestProfile {
	out := make([]models.GuestProfile, 0, len(guests))
	for _, g := range guests {
		if strings.TrimSpace(g.FullName) == "" || !validRange(g.MinGuests, g.MaxGuests) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// ValidRoomCategories applies the same rule as ValidGuests to categories.
func ValidRoomCategories(categories []models.RoomCategory) []models.RoomCategory {
	out := make([]models.RoomCategory, 0, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" || !validRange(c.MinGuests, c.MaxGuests) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func validRange(lo, hi int) bool {
	return lo >= 1 && hi >= lo
}

// CompatiblePairs returns every (guest, category) pair with a non-empty
// occupancy intersection, guest-major in input order.
func CompatiblePairs(guests []models.GuestProfile, categories []models.RoomCategory) []Pairing {
	var pairs []Pairing
	for _, g := range guests {
		for _, c := range categories {
			low := max(g.MinGuests, c.MinGuests)
			high := min(g.MaxGuests, c.MaxGuests)
			if low <= high {
				pairs = append(pairs, Pairing{Guest: g, Category: c, Low: low, High: high})
			}
		}
	}
	return pairs
}

// ChooseGuestAndCategory draws one compatible pair uniformly and then a guest
// count uniformly from its intersection. Invalid entries are skipped; the
// call fails only when nothing usable remains.
func ChooseGuestAndCategory(rng Rand, guests []models.GuestProfile, categories []models.RoomCategory) (Pairing, error) {
	if len(guests) == 0 {
		return Pairing{}, configError("guests", ErrNoGuests, "Config has no guests. Add at least one guest profile.")
	}
	if len(categories) == 0 {
		return Pairing{}, configError("room_categories", ErrNoRoomCategories, "Config has no room_categories. Add at least one room category.")
	}

	validGuests := ValidGuests(guests)
	if len(validGuests) == 0 {
		return Pairing{}, configError("guests", ErrNoGuests,
			"Config has no usable guests: every guest needs a full_name and 1 <= min_guests <= max_guests.")
	}
	validCategories := ValidRoomCategories(categories)
	if len(validCategories) == 0 {
		return Pairing{}, configError("room_categories", ErrNoRoomCategories,
			"Config has no usable room_categories: every category needs a name and 1 <= min_guests <= max_guests.")
	}

	pairs := CompatiblePairs(validGuests, validCategories)
	if len(pairs) == 0 {
		return Pairing{}, configError("guests", ErrNoCompatiblePair,
			"No valid guest/category combinations. Guests %s cannot share a room with categories %s; check guest/room min/max in config.",
			describeGuests(validGuests), describeCategories(validCategories))
	}

	p := pairs[rng.Intn(len(pairs))]
	p.GuestCount = intBetween(rng, p.Low, p.High)
	return p, nil
}

func describeGuests(guests []models.GuestProfile) string {
	parts := make([]string, len(guests))
	for i, g := range guests {
		parts[i] = fmt.Sprintf("%q (%d-%d)", g.FullName, g.MinGuests, g.MaxGuests)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func describeCategories(categories []models.RoomCategory) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = fmt.Sprintf("%q (%d-%d)", c.Name, c.MinGuests, c.MaxGuests)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
