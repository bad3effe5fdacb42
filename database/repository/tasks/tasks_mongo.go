package taskRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reservodojo/database"
	"reservodojo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskRepo implements TaskRepository using MongoDB.
type MongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo creates a TaskRepository on the "tasks" collection.
func NewMongoTaskRepo() TaskRepository {
	repo := &MongoTaskRepo{coll: database.Collection("tasks")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTaskRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accommodationId", Value: 1}, {Key: "finishedAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTaskRepo) Insert(ctx context.Context, task *models.Task) (string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.ReviewStatus == "" {
		task.ReviewStatus = models.ReviewStatusNew
	}
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return task.ID, nil
}

func (r *MongoTaskRepo) GetByID(ctx context.Context, accommodationID, id string) (*models.Task, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"id": id, "accommodationId": accommodationID}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task with id %s: %w", id, err)
	}
	return &task, nil
}

func (r *MongoTaskRepo) List(ctx context.Context, accommodationID string, filter models.TaskFilter) ([]models.Task, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"accommodationId": accommodationID}
	if filter.HideOkay {
		query["reviewStatus"] = bson.M{"$ne": models.ReviewStatusOkay}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(int64(EffectiveLimit(filter.Limit)))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *MongoTaskRepo) UpdateReviewStatus(ctx context.Context, accommodationID, id string, status models.ReviewStatus) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "accommodationId": accommodationID},
		bson.M{"$set": bson.M{"reviewStatus": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update task with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}
