package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SentSMS struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageType string             `bson:"messageType" json:"messageType"`
	SentAt      time.Time          `bson:"sentAt" json:"sentAt"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
}

type SMSGatewayConfig struct {
	URL            string        `json:"url" yaml:"url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	From           string        `json:"from" yaml:"from"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}
