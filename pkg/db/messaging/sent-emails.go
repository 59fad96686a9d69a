package messaging

import (
	"context"
	"log/slog"
	"time"

	messagingTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForSentEmailsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "messageType", Value: 1},
			{Key: "sentAt", Value: 1},
		},
		Options: options.Index().SetName("messageType_sentAt_1"),
	},
}

func (dbService *MessagingDBService) CreateDefaultIndexesForSentEmailsCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionSentEmails().Indexes().CreateMany(ctx, indexesForSentEmailsCollection)
	if err != nil {
		slog.Error("Error creating index for sent emails", slog.String("error", err.Error()))
	}
}

// AddToSentEmails records a delivered email without its content or recipients
func (dbService *MessagingDBService) AddToSentEmails(ctx context.Context, email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()
	email.Content = ""
	email.SentAt = time.Now().UTC()
	email.To = []string{}

	email.ID = primitive.NilObjectID
	res, err := dbService.collectionSentEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}
