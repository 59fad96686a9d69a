package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForSentSMSCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "phoneNumber", Value: 1},
			{Key: "sentAt", Value: 1},
			{Key: "messageType", Value: 1},
		},
		Options: options.Index().SetName("phoneNumber_sentAt_messageType_1"),
	},
}

func (dbService *MessagingDBService) CreateDefaultIndexesForSentSMSCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionSentSMS().Indexes().CreateMany(ctx, indexesForSentSMSCollection)
	if err != nil {
		slog.Error("Error creating index for sent SMS", slog.String("error", err.Error()))
	}
}

func (dbService *MessagingDBService) AddToSentSMS(ctx context.Context, sms types.SentSMS) (types.SentSMS, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	if sms.SentAt.IsZero() {
		sms.SentAt = time.Now().UTC()
	}
	sms.ID = primitive.NilObjectID
	res, err := dbService.collectionSentSMS().InsertOne(ctx, sms)
	if err != nil {
		return sms, err
	}
	sms.ID = res.InsertedID.(primitive.ObjectID)
	return sms, nil
}
