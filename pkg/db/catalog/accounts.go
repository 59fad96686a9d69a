package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForAccountsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "correoElectronico", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("correoElectronico_1"),
	},
	{
		Keys: bson.D{
			{Key: "pin", Value: 1},
		},
		Options: options.Index().SetName("pin_1"),
	},
}

func (dbService *CatalogDBService) CreateDefaultIndexesForAccountsCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionAccounts().Indexes().CreateMany(ctx, indexesForAccountsCollection)
	if err != nil {
		slog.Error("Error creating index for accounts", slog.String("error", err.Error()))
	}
}

// AddAccount inserts a new account. A second account with the same email fails with db.ErrDuplicateKey.
func (dbService *CatalogDBService) AddAccount(ctx context.Context, account userTypes.Account) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	account.ID = primitive.NilObjectID
	res, err := dbService.collectionAccounts().InsertOne(ctx, account)
	if err != nil {
		return account, db.TranslateError(err)
	}
	account.ID = res.InsertedID.(primitive.ObjectID)
	return account, nil
}

func (dbService *CatalogDBService) findOneAccount(ctx context.Context, filter bson.M) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var account userTypes.Account
	err := dbService.collectionAccounts().FindOne(ctx, filter).Decode(&account)
	return account, db.TranslateError(err)
}

func (dbService *CatalogDBService) FindAccountByEmail(ctx context.Context, email string) (userTypes.Account, error) {
	return dbService.findOneAccount(ctx, bson.M{"correoElectronico": email})
}

// FindVerifiedAccountByEmail matches email and verification state in a single query.
func (dbService *CatalogDBService) FindVerifiedAccountByEmail(ctx context.Context, email string) (userTypes.Account, error) {
	return dbService.findOneAccount(ctx, bson.M{"correoElectronico": email, "verificado": true})
}

func (dbService *CatalogDBService) FindAccountByPin(ctx context.Context, pin int) (userTypes.Account, error) {
	return dbService.findOneAccount(ctx, bson.M{"pin": pin})
}

func (dbService *CatalogDBService) FindAccountByEmailAndCode(ctx context.Context, email string, code string) (userTypes.Account, error) {
	return dbService.findOneAccount(ctx, bson.M{"correoElectronico": email, "codigoUnico": code})
}

// MarkAccountVerified flips the unverified account matching email and code to verified.
// Returns db.ErrNotFound when no unverified account matches.
func (dbService *CatalogDBService) MarkAccountVerified(ctx context.Context, email string, code string) (userTypes.Account, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{
		"correoElectronico": email,
		"codigoUnico":       code,
		"verificado":        false,
	}
	update := bson.M{"$set": bson.M{
		"verificado":            true,
		"timestamps.verifiedAt": time.Now().Unix(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account userTypes.Account
	err := dbService.collectionAccounts().FindOneAndUpdate(ctx, filter, update, opts).Decode(&account)
	return account, db.TranslateError(err)
}

// UpdateVerificationCode replaces the pending code of an unverified account.
func (dbService *CatalogDBService) UpdateVerificationCode(ctx context.Context, email string, code string) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{"correoElectronico": email, "verificado": false}
	update := bson.M{"$set": bson.M{
		"codigoUnico":             code,
		"timestamps.codeIssuedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionAccounts().UpdateOne(ctx, filter, update)
	if err != nil {
		return db.TranslateError(err)
	}
	if res.MatchedCount < 1 {
		return db.ErrNotFound
	}
	return nil
}

func (dbService *CatalogDBService) UpdateLastLogin(ctx context.Context, accountID primitive.ObjectID) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	filter := bson.M{"_id": accountID}
	update := bson.M{"$set": bson.M{"timestamps.lastLogin": time.Now().Unix()}}
	_, err := dbService.collectionAccounts().UpdateOne(ctx, filter, update)
	return db.TranslateError(err)
}
