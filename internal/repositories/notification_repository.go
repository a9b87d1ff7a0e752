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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// actorStalenessBound is how far back the bulk actor rewrite reaches. Events
// older than this fall outside every query window and intentionally keep
// their stale embedded summaries.
const actorStalenessBound = 4 // months

// NotificationRepository defines the notification feed operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, event *models.NotificationEvent) error
	FindDailyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error)
	FindWeeklyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error)
	FindMonthlyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error)
	FindEarlierNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error)
	UpdateActorAcrossNotifications(ctx context.Context, actorID string, update models.ActorUpdate) error
	HasUnseenNotifications(ctx context.Context, subjectID string) (bool, error)
	MarkSeen(ctx context.Context, subjectID string, at time.Time) error
}

// MongoNotificationRepository implements NotificationRepository on two
// collections: raw events and per-user seen watermarks.
type MongoNotificationRepository struct {
	events *mongo.Collection
	seen   *mongo.Collection
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database, logger *zap.SugaredLogger) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		events: db.Collection("notifications"),
		seen:   db.Collection("notification_seen"),
		logger: logger,
		now:    time.Now,
	}
}

// CreateNotification stores one raw event.
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, event *models.NotificationEvent) error {
	if event.Kind != models.NotificationFollow && event.Post == nil {
		return fmt.Errorf("%s event without post reference: %w", event.Kind, pagination.ErrInvalidArgument)
	}
	event.ID = primitive.NewObjectID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}
	if _, err := r.events.InsertOne(ctx, event); err != nil {
		return storeErr("insert notification", err)
	}
	return nil
}

// FindDailyNotifications groups today's events by hour.
func (r *MongoNotificationRepository) FindDailyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return r.findGrouped(ctx, subjectID, dailyWindow(r.now()), offset, limit)
}

// FindWeeklyNotifications groups this week's events (before today) by day.
func (r *MongoNotificationRepository) FindWeeklyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return r.findGrouped(ctx, subjectID, weeklyWindow(r.now()), offset, limit)
}

// FindMonthlyNotifications groups this month's events (before this week) by day.
func (r *MongoNotificationRepository) FindMonthlyNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return r.findGrouped(ctx, subjectID, monthlyWindow(r.now()), offset, limit)
}

// FindEarlierNotifications groups the trailing four months (before this
// month) by ISO week.
func (r *MongoNotificationRepository) FindEarlierNotifications(ctx context.Context, subjectID string, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	return r.findGrouped(ctx, subjectID, earlierWindow(r.now()), offset, limit)
}

// findGrouped runs the shared algorithm: one filtered, time-sorted query,
// one in-process grouping pass, then offset pagination over the groups.
// Count and page both derive from that single query execution, so the total
// reflects feed-visible cards, never raw events.
func (r *MongoNotificationRepository) findGrouped(ctx context.Context, subjectID string, w notificationWindow, offset, limit int64) (pagination.Paginated[models.NotificationGroup], error) {
	var empty pagination.Paginated[models.NotificationGroup]

	if err := pagination.ValidateRange(offset, limit); err != nil {
		return empty, err
	}
	if strings.TrimSpace(subjectID) == "" {
		return empty, fmt.Errorf("subject id: %w", pagination.ErrInvalidArgument)
	}

	filter := bson.M{
		"subject_id": subjectID,
		"created_at": bson.M{"$gte": w.Start, "$lt": w.End},
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return empty, storeErr("find notifications", err)
	}
	defer cursor.Close(ctx)

	var events []models.NotificationEvent
	if err = cursor.All(ctx, &events); err != nil {
		return empty, storeErr("decode notifications", err)
	}

	groups := groupNotifications(events, w.Granularity)
	return pagination.NewPaginated(int64(len(groups)), pagination.SliceOffset(groups, offset, limit)), nil
}

// actorRewriteFilter bounds the bulk rewrite to this actor's events newer
// than the staleness cutoff; older events fall outside every query window
// and keep their stale summaries.
func actorRewriteFilter(actorID string, now time.Time) bson.M {
	return bson.M{
		"actor.id":   actorID,
		"created_at": bson.M{"$gte": now.AddDate(0, -actorStalenessBound, 0)},
	}
}

// unseenFilter matches any event for the subject newer than the watermark.
func unseenFilter(subjectID string, watermark time.Time) bson.M {
	return bson.M{
		"subject_id": subjectID,
		"created_at": bson.M{"$gt": watermark},
	}
}

// markSeenUpdate sets the watermark to at; repeating it with the same
// timestamp is a no-op.
func markSeenUpdate(at time.Time) bson.M {
	return bson.M{"$set": bson.M{"updated_at": at}}
}

// UpdateActorAcrossNotifications rewrites the embedded actor summary on every
// event by this actor within the staleness bound. Older events stay stale on
// purpose; a failure mid-update is not rolled back.
func (r *MongoNotificationRepository) UpdateActorAcrossNotifications(ctx context.Context, actorID string, update models.ActorUpdate) error {
	if strings.TrimSpace(actorID) == "" {
		return fmt.Errorf("actor id: %w", pagination.ErrInvalidArgument)
	}

	set := bson.M{"$set": bson.M{
		"actor.username":  update.Username,
		"actor.photo_url": update.PhotoURL,
	}}

	res, err := r.events.UpdateMany(ctx, actorRewriteFilter(actorID, r.now()), set)
	if err != nil {
		return storeErr("update actor summaries", err)
	}
	r.logger.Debugw("rewrote actor summaries", "actor_id", actorID, "modified", res.ModifiedCount)
	return nil
}

// HasUnseenNotifications reports whether any event for the subject is newer
// than their watermark. A missing watermark defaults to epoch zero. The check
// is a single FindOne so the store stops at the first match.
func (r *MongoNotificationRepository) HasUnseenNotifications(ctx context.Context, subjectID string) (bool, error) {
	if strings.TrimSpace(subjectID) == "" {
		return false, fmt.Errorf("subject id: %w", pagination.ErrInvalidArgument)
	}

	var wm models.NotificationWatermark
	err := r.seen.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&wm)
	if err != nil && err != mongo.ErrNoDocuments {
		return false, storeErr("find watermark", err)
	}

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err = r.events.FindOne(ctx, unseenFilter(subjectID, wm.UpdatedAt), opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, storeErr("find unseen notification", err)
	}
	return true, nil
}

// MarkSeen upserts the subject's watermark to at.
func (r *MongoNotificationRepository) MarkSeen(ctx context.Context, subjectID string, at time.Time) error {
	if strings.TrimSpace(subjectID) == "" {
		return fmt.Errorf("subject id: %w", pagination.ErrInvalidArgument)
	}

	filter := bson.M{"subject_id": subjectID}
	if _, err := r.seen.UpdateOne(ctx, filter, markSeenUpdate(at), options.Update().SetUpsert(true)); err != nil {
		return storeErr("upsert watermark", err)
	}
	return nil
}
