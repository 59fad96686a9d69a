package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
)

const DEFAULT_DB_NAME = "messageDB"

// collection names
const (
	COLLECTION_NAME_OUTGOING_EMAILS = "outgoing-emails"
	COLLECTION_NAME_SENT_EMAILS     = "sent-emails"
	COLLECTION_NAME_SENT_SMS        = "sent-sms"
)

type MessagingDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	dbName          string
}

func NewMessagingDBService(configs db.MongoConfig) (*MessagingDBService, error) {
	dbClient, err := db.Connect(configs)
	if err != nil {
		return nil, err
	}

	messagingDBSc := &MessagingDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		dbName:          configs.DatabaseName(DEFAULT_DB_NAME),
	}

	if configs.RunIndexCreation {
		messagingDBSc.ensureIndexes()
	}
	return messagingDBSc, nil
}

func (dbService *MessagingDBService) collectionOutgoingEmails() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_OUTGOING_EMAILS)
}

func (dbService *MessagingDBService) collectionSentEmails() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_SENT_EMAILS)
}

func (dbService *MessagingDBService) collectionSentSMS() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_SENT_SMS)
}

func (dbService *MessagingDBService) getContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *MessagingDBService) ensureIndexes() {
	slog.Debug("Ensuring indexes for messaging DB")
	dbService.CreateDefaultIndexesForSentSMSCollection()
	dbService.CreateDefaultIndexesForSentEmailsCollection()
	dbService.CreateDefaultIndexesForOutgoingEmailsCollection()
}
