package configRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reservodojo/database"
	"reservodojo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfigRepo implements ConfigRepository using MongoDB.
type MongoConfigRepo struct {
	coll *mongo.Collection
}

// NewMongoConfigRepo creates a ConfigRepository on the "configs" collection.
func NewMongoConfigRepo() ConfigRepository {
	repo := &MongoConfigRepo{coll: database.Collection("configs")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoConfigRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "accommodationId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoConfigRepo) Get(ctx context.Context, accommodationID string) (*models.StoredConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stored models.StoredConfig
	err := r.coll.FindOne(ctx, bson.M{"accommodationId": accommodationID}).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to fetch config for %s: %w", accommodationID, err)
	}
	return &stored, nil
}

func (r *MongoConfigRepo) Upsert(ctx context.Context, accommodationID string, cfg models.TrainerConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := models.StoredConfig{
		AccommodationID: accommodationID,
		Config:          cfg,
		UpdatedAt:       time.Now().UTC(),
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"accommodationId": accommodationID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save config for %s: %w", accommodationID, err)
	}
	return nil
}
