package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is a conversation document (MongoDB). Creator and member summaries are
// denormalized copies, refreshed independently of the users table.
type Chat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Creator   UserSummary        `bson:"creator" json:"creator"`
	Members   []UserSummary      `bson:"members" json:"members"` // unique by id
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ChatWithLatestMessage is one row of the chat feed: a chat joined to its most
// recent message. LatestMessage is nil for a chat with no messages yet; such
// chats sort after every chat that has one.
type ChatWithLatestMessage struct {
	Chat          `bson:",inline"`
	LatestMessage *Message `bson:"latest_message,omitempty" json:"latest_message"`
}

type CreateChatRequest struct {
	MemberIDs []uint `json:"member_ids" validate:"required,min=1,unique"`
}
