// File: models/task.go
package models

import (
	"errors"
	"strings"
	"time"
)

// ReviewStatus is the trainer's verdict on a finished task.
type ReviewStatus string

const (
	ReviewStatusNew         ReviewStatus = "new"
	ReviewStatusOkay        ReviewStatus = "okay"
	ReviewStatusNeedsReview ReviewStatus = "needs_review"
)

var ErrInvalidReviewStatus = errors.New("review status must be one of new, okay, needs_review")

// ParseReviewStatus accepts the three stored values, case-insensitively.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ReviewStatusNew:
		return ReviewStatusNew, nil
	case ReviewStatusOkay:
		return ReviewStatusOkay, nil
	case ReviewStatusNeedsReview:
		return ReviewStatusNeedsReview, nil
	}
	return "", ErrInvalidReviewStatus
}

// Task is a finished scenario together with what the trainee entered.
type Task struct {
	ID              string       `json:"id" bson:"id"`
	AccommodationID string       `json:"accommodationId" bson:"accommodationId"`
	CreatedBy       string       `json:"createdBy" bson:"createdBy"`
	GeneratedID     string       `json:"generatedId" bson:"generatedId"`
	BookingNumber   string       `json:"bookingNumber" bson:"bookingNumber"`
	Scenario        Scenario     `json:"scenario" bson:"scenario"`
	FollowUpText    *string      `json:"followUpText" bson:"followUpText"`
	Difficulty      string       `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	FinishedAt      time.Time    `json:"finishedAt" bson:"finishedAt"`
	ReviewStatus    ReviewStatus `json:"reviewStatus" bson:"reviewStatus"`
}

// FollowUp returns the follow-up text or "" when none was drawn.
func (t Task) FollowUp() string {
	if t.FollowUpText == nil {
		return ""
	}
	return *t.FollowUpText
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Limit    int
	HideOkay bool
}
