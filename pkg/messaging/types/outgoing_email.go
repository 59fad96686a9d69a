package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OutgoingEmail struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageType     string             `bson:"messageType" json:"messageType"`
	To              []string           `bson:"to" json:"to"`
	Subject         string             `bson:"subject" json:"subject"`
	Content         string             `bson:"content" json:"content"`
	AddedAt         int64              `bson:"addedAt" json:"addedAt"`
	SentAt          time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	LastSendAttempt int64              `bson:"lastSendAttempt" json:"lastSendAttempt"`
	LastError       string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
}
