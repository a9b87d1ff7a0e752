package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a chat message document (MongoDB). Exactly one of Text,
// PhotoURL, VideoURL is non-empty; the write path rejects anything else.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    string             `bson:"chat_id" json:"chat_id"`
	Creator   UserSummary        `bson:"creator" json:"creator"`
	Text      string             `bson:"text,omitempty" json:"text,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	VideoURL  string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	ReplyTo   string             `bson:"reply_to,omitempty" json:"reply_to,omitempty"`
	Reactions []Reaction         `bson:"reactions,omitempty" json:"reactions,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// HasValidBody reports whether exactly one body variant is set.
func (m *Message) HasValidBody() bool {
	n := 0
	for _, v := range []string{m.Text, m.PhotoURL, m.VideoURL} {
		if v != "" {
			n++
		}
	}
	return n == 1
}

// Reaction is an emoji-style reaction with the reacting user's summary.
type Reaction struct {
	Reaction string      `bson:"reaction" json:"reaction"`
	User     UserSummary `bson:"user" json:"user"`
}

type SendMessageRequest struct {
	Text     string `json:"text,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
	VideoURL string `json:"video_url,omitempty" validate:"omitempty,url"`
	ReplyTo  string `json:"reply_to,omitempty"`
}

type AddReactionRequest struct {
	Reaction string `json:"reaction" validate:"required,max=16"`
}
