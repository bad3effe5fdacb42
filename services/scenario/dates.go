package scenario

import (
	"strings"
	"time"

	"reservodojo/models"
)

const secondsPerDay = 24 * 60 * 60

// Stay is a sampled arrival/departure pair. Departure is Arrival plus Nights.
type Stay struct {
	Arrival   time.Time
	Departure time.Time
	Nights    int
}

// SampleStay draws the arrival day uniformly inside the booking window
// (both ends included) and the number of nights uniformly from the stay range.
func SampleStay(rng Rand, window models.BookingWindow, stay models.StayLength) (Stay, error) {
	if strings.TrimSpace(window.EarliestArrival) == "" || strings.TrimSpace(window.LatestArrival) == "" {
		return Stay{}, configError("booking_window", ErrMissingBookingWindow,
			`Config missing booking_window. Add "booking_window": {"earliest_arrival":"YYYY-MM-DD","latest_arrival":"YYYY-MM-DD"}`)
	}
	earliest, err := ParseDate(window.EarliestArrival)
	if err != nil {
		return Stay{}, configError("booking_window", ErrInvalidBookingWindow,
			"booking_window.earliest_arrival %q is not a valid YYYY-MM-DD date", window.EarliestArrival)
	}
	latest, err := ParseDate(window.LatestArrival)
	if err != nil {
		return Stay{}, configError("booking_window", ErrInvalidBookingWindow,
			"booking_window.latest_arrival %q is not a valid YYYY-MM-DD date", window.LatestArrival)
	}
	if latest.Before(earliest) {
		return Stay{}, configError("booking_window", ErrInvalidBookingWindow,
			"booking_window.latest_arrival must be on or after booking_window.earliest_arrival")
	}
	if stay.Min < 1 || stay.Max < stay.Min || stay.Max > MaxStayNights {
		return Stay{}, configError("stay_length_nights", ErrInvalidStayLength,
			"stay_length_nights needs 1 <= min <= max <= %d (got min=%d, max=%d)", MaxStayNights, stay.Min, stay.Max)
	}

	// Both dates are UTC midnight. time.Duration saturates after ~292 years,
	// so count seconds instead of calling Sub.
	days := int((latest.Unix() - earliest.Unix()) / secondsPerDay)
	arrival := earliest.AddDate(0, 0, intBetween(rng, 0, days))
	nights := intBetween(rng, stay.Min, stay.Max)
	return Stay{
		Arrival:   arrival,
		Departure: arrival.AddDate(0, 0, nights),
		Nights:    nights,
	}, nil
}
