package catalog

import (
	"context"
	"errors"
	"log/slog"

	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForPlaylistsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("name_1"),
	},
	{
		Keys: bson.D{
			{Key: "associatedProfiles", Value: 1},
		},
		Options: options.Index().SetName("associatedProfiles_1"),
	},
	{
		Keys: bson.D{
			{Key: "videos", Value: 1},
		},
		Options: options.Index().SetName("videos_1"),
	},
}

func (dbService *CatalogDBService) CreateDefaultIndexesForPlaylistsCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionPlaylists().Indexes().CreateMany(ctx, indexesForPlaylistsCollection)
	if err != nil {
		slog.Error("Error creating index for playlists", slog.String("error", err.Error()))
	}
}

func (dbService *CatalogDBService) AddPlaylist(ctx context.Context, playlist catalogTypes.Playlist) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	playlist.ID = primitive.NilObjectID
	if playlist.AssociatedProfiles == nil {
		playlist.AssociatedProfiles = []primitive.ObjectID{}
	}
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}

	res, err := dbService.collectionPlaylists().InsertOne(ctx, playlist)
	if err != nil {
		return playlist, db.TranslateError(err)
	}
	playlist.ID = res.InsertedID.(primitive.ObjectID)
	return playlist, nil
}

func (dbService *CatalogDBService) FindPlaylistByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

func (dbService *CatalogDBService) FindPlaylistByName(ctx context.Context, name string) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOne(ctx, bson.M{"name": name}).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

func (dbService *CatalogDBService) ListPlaylistsByProfile(ctx context.Context, profileID primitive.ObjectID) ([]catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	opts := options.Find().SetNoCursorTimeout(dbService.noCursorTimeout)
	cursor, err := dbService.collectionPlaylists().Find(ctx, bson.M{"associatedProfiles": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	playlists := []catalogTypes.Playlist{}
	if err = cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (dbService *CatalogDBService) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, upd catalogTypes.PlaylistUpdate) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.AssociatedProfiles != nil {
		set["associatedProfiles"] = upd.AssociatedProfiles
	}
	if upd.Videos != nil {
		set["videos"] = upd.Videos
	}
	if len(set) == 0 {
		return dbService.FindPlaylistByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

// AppendVideoToPlaylist pushes the video id to the end of the list without deduplication.
func (dbService *CatalogDBService) AppendVideoToPlaylist(ctx context.Context, playlistID primitive.ObjectID, videoID primitive.ObjectID) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$push": bson.M{"videos": videoID}}

	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOneAndUpdate(ctx, bson.M{"_id": playlistID}, update, opts).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

// AddVideoToDefaultPlaylist appends the video to the single default playlist, creating it on first use.
// profileID is added to the associated profiles when it is not the nil id.
func (dbService *CatalogDBService) AddVideoToDefaultPlaylist(ctx context.Context, videoID primitive.ObjectID, profileID primitive.ObjectID) (catalogTypes.Playlist, error) {
	update := bson.M{
		"$push": bson.M{"videos": videoID},
	}
	if profileID.IsZero() {
		update["$setOnInsert"] = bson.M{"associatedProfiles": []primitive.ObjectID{}}
	} else {
		update["$addToSet"] = bson.M{"associatedProfiles": profileID}
	}

	playlist, err := dbService.upsertDefaultPlaylist(ctx, update)
	// two concurrent upserts can race on the unique name index; the loser retries as a plain update
	if errors.Is(err, db.ErrDuplicateKey) {
		playlist, err = dbService.upsertDefaultPlaylist(ctx, update)
	}
	return playlist, err
}

func (dbService *CatalogDBService) upsertDefaultPlaylist(ctx context.Context, update bson.M) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	filter := bson.M{"name": catalogTypes.DEFAULT_PLAYLIST_NAME}

	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOneAndUpdate(ctx, filter, update, opts).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

func (dbService *CatalogDBService) DeletePlaylist(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var playlist catalogTypes.Playlist
	err := dbService.collectionPlaylists().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&playlist)
	return playlist, db.TranslateError(err)
}

// RemoveVideoFromPlaylists pulls every occurrence of the video id from all playlists.
func (dbService *CatalogDBService) RemoveVideoFromPlaylists(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	res, err := dbService.collectionPlaylists().UpdateMany(ctx,
		bson.M{"videos": videoID},
		bson.M{"$pull": bson.M{"videos": videoID}},
	)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return res.ModifiedCount, nil
}
