package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind enumerates the raw event kinds.
type NotificationKind string

const (
	NotificationFollow  NotificationKind = "follow"
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
)

// PostRef points at the post a like/comment event concerns. Absent for
// follow events.
type PostRef struct {
	ID        string   `bson:"id" json:"id"`
	PhotoURLs []string `bson:"photo_urls,omitempty" json:"photo_urls,omitempty"`
}

// NotificationEvent is one raw per-actor event (MongoDB). Immutable once
// written, except for the embedded actor summary, which is bulk-rewritten
// when the actor's profile changes.
type NotificationEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind      NotificationKind   `bson:"kind" json:"kind"`
	SubjectID string             `bson:"subject_id" json:"subject_id"`
	Actor     UserSummary        `bson:"actor" json:"actor"`
	Post      *PostRef           `bson:"post,omitempty" json:"post,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// NotificationGroup is one feed-visible card summarizing one or more raw
// events that share a time bucket, post and kind. Derived on every query,
// never persisted.
type NotificationGroup struct {
	ID           string           `json:"id"` // id of the group's most recent event
	Kind         NotificationKind `json:"kind"`
	Post         *PostRef         `json:"post,omitempty"`
	CreatedAt    time.Time        `json:"created_at"` // most recent event's timestamp
	LatestActors []UserSummary    `json:"latest_actors"`
	ActorsCount  int              `json:"actors_count"` // distinct actors, counted before truncation
}

// NotificationWatermark marks when a user last saw their notifications.
// One per user, upserted.
type NotificationWatermark struct {
	SubjectID string    `bson:"subject_id" json:"subject_id"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ActorUpdate carries the refreshed display fields for the bulk actor
// rewrite.
type ActorUpdate struct {
	Username string `json:"username"`
	PhotoURL string `json:"photo_url"`
}
