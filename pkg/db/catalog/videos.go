package catalog

import (
	"context"
	"log/slog"

	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForVideosCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetName("userId_1"),
	},
	{
		Keys: bson.D{
			{Key: "playlist", Value: 1},
		},
		Options: options.Index().SetName("playlist_1").SetSparse(true),
	},
}

func (dbService *CatalogDBService) CreateDefaultIndexesForVideosCollection() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionVideos().Indexes().CreateMany(ctx, indexesForVideosCollection)
	if err != nil {
		slog.Error("Error creating index for videos", slog.String("error", err.Error()))
	}
}

func (dbService *CatalogDBService) AddVideo(ctx context.Context, video catalogTypes.Video) (catalogTypes.Video, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	video.ID = primitive.NilObjectID
	res, err := dbService.collectionVideos().InsertOne(ctx, video)
	if err != nil {
		return video, db.TranslateError(err)
	}
	video.ID = res.InsertedID.(primitive.ObjectID)
	return video, nil
}

func (dbService *CatalogDBService) FindVideoByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Video, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var video catalogTypes.Video
	err := dbService.collectionVideos().FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	return video, db.TranslateError(err)
}

// FindVideosByIDs returns the existing videos among ids, in no particular order.
func (dbService *CatalogDBService) FindVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalogTypes.Video, error) {
	if len(ids) == 0 {
		return []catalogTypes.Video{}, nil
	}

	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	cursor, err := dbService.collectionVideos().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []catalogTypes.Video{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ListVideosByOwner returns name and URL of every video the owner created.
func (dbService *CatalogDBService) ListVideosByOwner(ctx context.Context, ownerID string) ([]catalogTypes.Video, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "youtubeUrl": 1}).
		SetNoCursorTimeout(dbService.noCursorTimeout)
	cursor, err := dbService.collectionVideos().Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []catalogTypes.Video{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideo changes a video of ownerID. An empty update only reads the video.
func (dbService *CatalogDBService) UpdateVideo(ctx context.Context, id primitive.ObjectID, ownerID string, upd catalogTypes.VideoUpdate) (catalogTypes.Video, error) {
	filter := bson.M{"_id": id, "userId": ownerID}
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.YoutubeURL != nil {
		set["youtubeUrl"] = *upd.YoutubeURL
	}

	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var video catalogTypes.Video
	if len(set) == 0 {
		err := dbService.collectionVideos().FindOne(ctx, filter).Decode(&video)
		return video, db.TranslateError(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := dbService.collectionVideos().FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&video)
	return video, db.TranslateError(err)
}

func (dbService *CatalogDBService) SetVideoPlaylist(ctx context.Context, videoID primitive.ObjectID, playlistID primitive.ObjectID) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	res, err := dbService.collectionVideos().UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{"playlist": playlistID}},
	)
	if err != nil {
		return db.TranslateError(err)
	}
	if res.MatchedCount < 1 {
		return db.ErrNotFound
	}
	return nil
}

// ClearPlaylistReferences unsets the back-reference on every video pointing to the playlist.
func (dbService *CatalogDBService) ClearPlaylistReferences(ctx context.Context, playlistID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	res, err := dbService.collectionVideos().UpdateMany(ctx,
		bson.M{"playlist": playlistID},
		bson.M{"$unset": bson.M{"playlist": 1}},
	)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return res.ModifiedCount, nil
}

func (dbService *CatalogDBService) DeleteVideo(ctx context.Context, id primitive.ObjectID, ownerID string) (catalogTypes.Video, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var video catalogTypes.Video
	err := dbService.collectionVideos().FindOneAndDelete(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&video)
	return video, db.TranslateError(err)
}
