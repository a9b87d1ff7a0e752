package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MessageRepository defines the message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, chatID string, cursor *pagination.Cursor, limit int64) (pagination.CursorPage[models.Message], error)
	AddReaction(ctx context.Context, messageID string, reaction models.Reaction) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database, logger *zap.SugaredLogger) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages"), logger: logger}
}

// CreateMessage stores a message after enforcing the body variant invariant:
// exactly one of text, photo URL or video URL must be set.
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	if !message.HasValidBody() {
		return fmt.Errorf("message needs exactly one of text, photo_url, video_url: %w", pagination.ErrInvalidArgument)
	}
	if message.ChatID == "" {
		return fmt.Errorf("chat id: %w", pagination.ErrInvalidArgument)
	}

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return storeErr("insert message", err)
	}
	return nil
}

// ListMessages pages a chat's history newest-first with a keyset cursor, so
// concurrent inserts can't skip or duplicate rows across page boundaries.
// It fetches limit+1 rows to decide hasNext without a second query.
func (r *MongoMessageRepository) ListMessages(ctx context.Context, chatID string, cursor *pagination.Cursor, limit int64) (pagination.CursorPage[models.Message], error) {
	var empty pagination.CursorPage[models.Message]

	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if chatID == "" {
		return empty, fmt.Errorf("chat id: %w", pagination.ErrInvalidArgument)
	}

	filter := bson.M{"chat_id": chatID}
	if cursor != nil {
		lastID, err := primitive.ObjectIDFromHex(cursor.ID)
		if err != nil {
			return empty, fmt.Errorf("cursor id %q: %w", cursor.ID, pagination.ErrInvalidArgument)
		}
		// Strictly after the cursor row in (created_at desc, _id desc) order.
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": cursor.CreatedAt}},
			bson.M{"created_at": cursor.CreatedAt, "_id": bson.M{"$lt": lastID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return empty, storeErr("find messages", err)
	}
	defer cur.Close(ctx)

	var messages []models.Message
	if err = cur.All(ctx, &messages); err != nil {
		return empty, storeErr("decode messages", err)
	}

	hasNext := int64(len(messages)) > limit
	if hasNext {
		messages = messages[:limit]
	}
	return pagination.NewCursorPage(hasNext, messages), nil
}

// AddReaction appends a reaction with the reacting user's summary.
func (r *MongoMessageRepository) AddReaction(ctx context.Context, messageID string, reaction models.Reaction) error {
	objID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return fmt.Errorf("message id %q: %w", messageID, pagination.ErrInvalidArgument)
	}

	update := bson.M{"$push": bson.M{"reactions": reaction}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return storeErr("add reaction", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("message %s not found", messageID)
	}
	return nil
}
