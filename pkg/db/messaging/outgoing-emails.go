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

var indexesForOutgoingEmailsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "addedAt", Value: 1},
		},
		Options: options.Index().SetName("addedAt_1"),
	},
}

func (dbService *MessagingDBService) CreateDefaultIndexesForOutgoingEmailsCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionOutgoingEmails().Indexes().CreateMany(ctx, indexesForOutgoingEmailsCollection)
	if err != nil {
		slog.Error("Error creating index for outgoing emails", slog.String("error", err.Error()))
	}
}

// AddToOutgoingEmails keeps an email that could not be delivered so a later job can retry it
func (dbService *MessagingDBService) AddToOutgoingEmails(ctx context.Context, email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	if email.AddedAt <= 0 {
		email.AddedAt = time.Now().Unix()
	}

	email.ID = primitive.NilObjectID
	res, err := dbService.collectionOutgoingEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}
