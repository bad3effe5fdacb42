package draftRepo

import (
	"context"
	"errors"
	"time"

	"reservodojo/models"
)

const draftPrefix = "draft:"

var (
	ErrDraftNotFound = errors.New("scenario draft not found or expired")
	ErrDraftExists   = errors.New("scenario draft already exists")
)

// DraftStore holds generated scenarios until the trainee marks them finished.
// Save never overwrites a live draft; it returns ErrDraftExists instead.
type DraftStore interface {
	Save(ctx context.Context, draft *models.ScenarioDraft, ttl time.Duration) error
	Get(ctx context.Context, accommodationID, userID, generatedID string) (*models.ScenarioDraft, error)
	Delete(ctx context.Context, accommodationID, userID, generatedID string) error
}

// DraftKey is the cache key of one draft.
func DraftKey(accommodationID, userID, generatedID string) string {
	return draftPrefix + accommodationID + ":" + userID + ":" + generatedID
}
