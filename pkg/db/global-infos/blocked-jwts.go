package globalinfos

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlockedJwt struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

var indexesForBlockedJwtsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "token", Value: 1},
		},
		Options: options.Index().SetName("token_1"),
	},
	{
		Keys: bson.D{
			{Key: "expiresAt", Value: 1},
		},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expiresAt_1"),
	},
}

func (dbService *GlobalInfosDBService) CreateDefaultIndexesForBlockedJwtsCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionBlockedJwts().Indexes().CreateMany(ctx, indexesForBlockedJwtsCollection)
	if err != nil {
		slog.Error("Error creating index for blocked jwts", slog.String("error", err.Error()))
	}
}

// AddBlockedJwt adds a session token to the blocked list until it would have expired anyway
func (dbService *GlobalInfosDBService) AddBlockedJwt(ctx context.Context, token string, expiresAt time.Time) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	blockedJwt := BlockedJwt{
		Token:     token,
		ExpiresAt: expiresAt,
	}

	_, err := dbService.collectionBlockedJwts().InsertOne(ctx, blockedJwt)
	if err != nil {
		slog.Error("Error adding JWT to blocked list", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// IsJwtBlocked checks if a session token is in the blocked list
func (dbService *GlobalInfosDBService) IsJwtBlocked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{"token": token}

	count, err := dbService.collectionBlockedJwts().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		slog.Error("Error checking if JWT is blocked", slog.String("error", err.Error()))
		return false, err
	}
	return count > 0, nil
}
