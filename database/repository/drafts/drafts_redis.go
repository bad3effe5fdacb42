package draftRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reservodojo/models"

	"github.com/go-redis/redis/v8"
)

type RedisDraftStore struct {
	client *redis.Client
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client}
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *models.ScenarioDraft, ttl time.Duration) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	key := DraftKey(draft.AccommodationID, draft.UserID, draft.GeneratedID)
	ok, err := s.client.SetNX(ctx, key, b, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store draft %s: %w", draft.GeneratedID, err)
	}
	if !ok {
		return ErrDraftExists
	}
	return nil
}

func (s *RedisDraftStore) Get(ctx context.Context, accommodationID, userID, generatedID string) (*models.ScenarioDraft, error) {
	data, err := s.client.Get(ctx, DraftKey(accommodationID, userID, generatedID)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", generatedID, err)
	}
	var draft models.ScenarioDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", generatedID, err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, accommodationID, userID, generatedID string) error {
	n, err := s.client.Del(ctx, DraftKey(accommodationID, userID, generatedID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", generatedID, err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}
