package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/mongo"
)

const DEFAULT_DB_NAME = "playflix"

// collection names
const (
	COLLECTION_NAME_ACCOUNTS            = "registros"
	COLLECTION_NAME_RESTRICTED_PROFILES = "usuariosrestringidos"
	COLLECTION_NAME_PLAYLISTS           = "playlists"
	COLLECTION_NAME_VIDEOS              = "videos"
)

type CatalogDBService struct {
	DBClient         *mongo.Client
	timeout          int
	noCursorTimeout  bool
	dbName           string
	profileNameScope string
}

func NewCatalogDBService(configs db.MongoConfig, profileNameScope string) (*CatalogDBService, error) {
	dbClient, err := db.Connect(configs)
	if err != nil {
		return nil, err
	}

	if profileNameScope != userTypes.PROFILE_NAME_SCOPE_OWNER {
		profileNameScope = userTypes.PROFILE_NAME_SCOPE_GLOBAL
	}

	catalogDBSc := &CatalogDBService{
		DBClient:         dbClient,
		timeout:          configs.Timeout,
		noCursorTimeout:  configs.NoCursorTimeout,
		dbName:           configs.DatabaseName(DEFAULT_DB_NAME),
		profileNameScope: profileNameScope,
	}

	if configs.RunIndexCreation {
		catalogDBSc.CreateDefaultIndexes()
	}
	return catalogDBSc, nil
}

// getContext derives a store deadline from the caller's context.
func (dbService *CatalogDBService) getContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *CatalogDBService) collectionAccounts() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_ACCOUNTS)
}

func (dbService *CatalogDBService) collectionRestrictedProfiles() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_RESTRICTED_PROFILES)
}

func (dbService *CatalogDBService) collectionPlaylists() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_PLAYLISTS)
}

func (dbService *CatalogDBService) collectionVideos() *mongo.Collection {
	return dbService.DBClient.Database(dbService.dbName).Collection(COLLECTION_NAME_VIDEOS)
}

func (dbService *CatalogDBService) CreateDefaultIndexes() {
	slog.Debug("Ensuring indexes for catalog DB")
	dbService.CreateDefaultIndexesForAccountsCollection()
	dbService.CreateDefaultIndexesForRestrictedProfilesCollection()
	dbService.CreateDefaultIndexesForPlaylistsCollection()
	dbService.CreateDefaultIndexesForVideosCollection()
}
