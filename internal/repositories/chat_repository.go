package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rifat-hasan/socialine/backend/internal/models"
	"github.com/rifat-hasan/socialine/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ChatRepository defines the chat data operations
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	GetChatByID(ctx context.Context, id string) (*models.Chat, error)
	FindChatsWithLatestMessage(ctx context.Context, userID string, offset, limit int64) (pagination.Paginated[models.ChatWithLatestMessage], error)
}

// MongoChatRepository implements ChatRepository for MongoDB
type MongoChatRepository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

// NewMongoChatRepository creates a new MongoChatRepository
func NewMongoChatRepository(db *mongo.Database, logger *zap.SugaredLogger) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chats"), logger: logger}
}

// CreateChat creates a new chat document.
func (r *MongoChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	chat.ID = primitive.NewObjectID()
	chat.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, chat); err != nil {
		return storeErr("insert chat", err)
	}
	return nil
}

// GetChatByID retrieves a chat by ID.
func (r *MongoChatRepository) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("chat id %q: %w", id, pagination.ErrInvalidArgument)
	}

	var chat models.Chat
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find chat", err)
	}
	return &chat, nil
}

// chatFeedPipeline joins each of the user's chats to its single most recent
// message and windows the result in one $facet, so totalCount and page come
// from the same server-side execution. Chats with no messages survive the
// $lookup with a null slot; a missing sort key ranks last under descending
// sort, so they trail every chat that has a message.
func chatFeedPipeline(userID string, offset, limit int64) mongo.Pipeline {
	pageStages := bson.A{bson.M{"$skip": offset}}
	if limit > 0 {
		pageStages = append(pageStages, bson.M{"$limit": limit})
	} else {
		// $limit rejects zero; an impossible match empties the page while
		// the count facet still runs.
		pageStages = bson.A{bson.M{"$match": bson.M{"_id": bson.M{"$exists": false}}}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"members.id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "messages",
			"let":  bson.M{"chat_id": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$chat_id", "$$chat_id"}}}},
				bson.M{"$sort": bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
				bson.M{"$limit": 1},
			},
			"as": "latest_message",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$latest_message",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "latest_message.created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$facet", Value: bson.M{
			"total": bson.A{bson.M{"$count": "count"}},
			"page":  pageStages,
		}}},
	}
}

// chatFeedResult is the $facet output shape.
type chatFeedResult struct {
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
	Page []models.ChatWithLatestMessage `bson:"page"`
}

// FindChatsWithLatestMessage returns the paginated chat feed for a user:
// every chat they are a member of, each joined to its most recent message,
// ordered by that message's timestamp descending.
func (r *MongoChatRepository) FindChatsWithLatestMessage(ctx context.Context, userID string, offset, limit int64) (pagination.Paginated[models.ChatWithLatestMessage], error) {
	var empty pagination.Paginated[models.ChatWithLatestMessage]

	if err := pagination.ValidateRange(offset, limit); err != nil {
		return empty, err
	}
	if strings.TrimSpace(userID) == "" {
		return empty, fmt.Errorf("user id: %w", pagination.ErrInvalidArgument)
	}

	cursor, err := r.collection.Aggregate(ctx, chatFeedPipeline(userID, offset, limit))
	if err != nil {
		return empty, storeErr("aggregate chat feed", err)
	}
	defer cursor.Close(ctx)

	var results []chatFeedResult
	if err = cursor.All(ctx, &results); err != nil {
		return empty, storeErr("decode chat feed", err)
	}
	if len(results) == 0 {
		return pagination.NewPaginated[models.ChatWithLatestMessage](0, nil), nil
	}

	var total int64
	if len(results[0].Total) > 0 {
		total = results[0].Total[0].Count
	}
	return pagination.NewPaginated(total, results[0].Page), nil
}
