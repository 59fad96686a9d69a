package catalog

import (
	"context"
	"log/slog"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	indexNameProfileNameGlobal = "nombreCompleto_1"
	indexNameProfileNameOwner  = "userId_1_nombreCompleto_1"
)

func (dbService *CatalogDBService) indexesForRestrictedProfilesCollection() []mongo.IndexModel {
	nameIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "nombreCompleto", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(indexNameProfileNameGlobal),
	}
	if dbService.profileNameScope == userTypes.PROFILE_NAME_SCOPE_OWNER {
		nameIndex = mongo.IndexModel{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "nombreCompleto", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName(indexNameProfileNameOwner),
		}
	}

	return []mongo.IndexModel{
		nameIndex,
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
			},
			Options: options.Index().SetName("userId_1"),
		},
		{
			Keys: bson.D{
				{Key: "pin", Value: 1},
			},
			Options: options.Index().SetName("pin_1"),
		},
	}
}

func (dbService *CatalogDBService) CreateDefaultIndexesForRestrictedProfilesCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	coll := dbService.collectionRestrictedProfiles()

	// a unique index from the other name scope would keep rejecting names the current scope allows
	staleIndex := indexNameProfileNameOwner
	if dbService.profileNameScope == userTypes.PROFILE_NAME_SCOPE_OWNER {
		staleIndex = indexNameProfileNameGlobal
	}
	exists, err := db.HasIndex(ctx, coll, staleIndex)
	if err != nil {
		slog.Error("Error listing indexes for restricted profiles", slog.String("error", err.Error()))
	} else if exists {
		if _, err := coll.Indexes().DropOne(ctx, staleIndex); err != nil {
			slog.Error("Error dropping index for restricted profiles", slog.String("error", err.Error()), slog.String("indexName", staleIndex))
		}
	}

	_, err = coll.Indexes().CreateMany(ctx, dbService.indexesForRestrictedProfilesCollection())
	if err != nil {
		slog.Error("Error creating index for restricted profiles", slog.String("error", err.Error()))
	}
}

func (dbService *CatalogDBService) AddRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	profile.ID = primitive.NilObjectID
	res, err := dbService.collectionRestrictedProfiles().InsertOne(ctx, profile)
	if err != nil {
		return profile, db.TranslateError(err)
	}
	profile.ID = res.InsertedID.(primitive.ObjectID)
	return profile, nil
}

// FindRestrictedProfileByName looks the name up across all owners when ownerID is empty.
func (dbService *CatalogDBService) FindRestrictedProfileByName(ctx context.Context, fullName string, ownerID string) (userTypes.RestrictedProfile, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{"nombreCompleto": fullName}
	if ownerID != "" {
		filter["userId"] = ownerID
	}

	var profile userTypes.RestrictedProfile
	err := dbService.collectionRestrictedProfiles().FindOne(ctx, filter).Decode(&profile)
	return profile, db.TranslateError(err)
}

func (dbService *CatalogDBService) FindRestrictedProfileByPin(ctx context.Context, pin string, ownerID string) (userTypes.RestrictedProfile, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{"pin": pin}
	if ownerID != "" {
		filter["userId"] = ownerID
	}

	var profile userTypes.RestrictedProfile
	err := dbService.collectionRestrictedProfiles().FindOne(ctx, filter).Decode(&profile)
	return profile, db.TranslateError(err)
}

func (dbService *CatalogDBService) ListRestrictedProfilesByOwner(ctx context.Context, ownerID string) ([]userTypes.RestrictedProfile, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	opts := options.Find().SetNoCursorTimeout(dbService.noCursorTimeout)
	cursor, err := dbService.collectionRestrictedProfiles().Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []userTypes.RestrictedProfile{}
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateRestrictedProfile replaces the editable fields of a profile owned by profile.OwnerID and returns the stored profile.
func (dbService *CatalogDBService) UpdateRestrictedProfile(ctx context.Context, profile userTypes.RestrictedProfile) (userTypes.RestrictedProfile, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"nombreCompleto": profile.FullName,
		"pin":            profile.Pin,
		"avatar":         profile.Avatar,
		"edad":           profile.Age,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated userTypes.RestrictedProfile
	err := dbService.collectionRestrictedProfiles().FindOneAndUpdate(ctx, bson.M{"_id": profile.ID, "userId": profile.OwnerID}, update, opts).Decode(&updated)
	return updated, db.TranslateError(err)
}

func (dbService *CatalogDBService) DeleteRestrictedProfile(ctx context.Context, id primitive.ObjectID, ownerID string) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	res, err := dbService.collectionRestrictedProfiles().DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return db.TranslateError(err)
	}
	if res.DeletedCount < 1 {
		return db.ErrNotFound
	}
	return nil
}
