package globalinfos

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
)

const DEFAULT_DB_NAME = "global-infos"

// collection names
const (
	COLLECTION_NAME_BLOCKED_JWTS = "blocked-jwts"
)

type GlobalInfosDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	dbName          string
}

func NewGlobalInfosDBService(configs db.MongoConfig) (*GlobalInfosDBService, error) {
	dbClient, err := db.Connect(configs)
	if err != nil {
		return nil, err
	}

	giDBSc := &GlobalInfosDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		dbName:          configs.DatabaseName(DEFAULT_DB_NAME),
	}

	if configs.RunIndexCreation {
		giDBSc.ensureIndexes()
	}
	return giDBSc, nil
}

func (dbService *GlobalInfosDBService) getContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *GlobalInfosDBService) collectionBlockedJwts() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_BLOCKED_JWTS)
}

func (dbService *GlobalInfosDBService) ensureIndexes() {
	slog.Debug("Ensuring indexes for global infos DB")
	dbService.CreateDefaultIndexesForBlockedJwtsCollection()
}
