package repositories

import (
	"context"
	"time"

	"github.com/aryb086/eyes-app/config"
	"github.com/aryb086/eyes-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository is the capability surface over the posts collection.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	// Feed returns posts whose author is in authors, optionally filtered by
	// visibility, newest first, paginated by skip/limit, each joined with a
	// current snapshot of its author's public profile.
	Feed(ctx context.Context, authors []primitive.ObjectID, visibility string, skip, limit int64) ([]models.FeedPost, error)
}

type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository returns a PostRepository backed by the posts collection
// of db.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{
		collection: db.Collection(string(config.DB_Collection.Posts)),
	}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *mongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}})
	return err
}

func (r *mongoPostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

// feedRow is the shape produced by the feed aggregation before ids are
// converted to strings.
type feedRow struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Content   string               `bson:"content"`
	Images    []string             `bson:"images"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Comments  []models.Comment     `bson:"comments"`
	CreatedAt time.Time            `bson:"createdAt"`
	Author    struct {
		ID             primitive.ObjectID `bson:"id"`
		Username       string             `bson:"username"`
		FullName       string             `bson:"fullName"`
		ProfilePicture string             `bson:"profilePicture"`
	} `bson:"author"`
}

func (r *mongoPostRepository) Feed(ctx context.Context, authors []primitive.ObjectID, visibility string, skip, limit int64) ([]models.FeedPost, error) {
	match := bson.M{"author": bson.M{"$in": authors}}
	if visibility != "" {
		match["visibility"] = visibility
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         string(config.DB_Collection.Users),
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author_info",
		}}},
		{{Key: "$unwind", Value: "$author_info"}},
		{{Key: "$project", Value: bson.M{
			"content":   1,
			"images":    1,
			"likes":     1,
			"comments":  1,
			"createdAt": 1,
			"author": bson.M{
				"id":             "$author_info._id",
				"username":       "$author_info.username",
				"fullName":       "$author_info.fullName",
				"profilePicture": "$author_info.profilePicture",
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []feedRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	feed := make([]models.FeedPost, 0, len(rows))
	for _, row := range rows {
		feed = append(feed, row.toFeedPost())
	}
	return feed, nil
}

func (row feedRow) toFeedPost() models.FeedPost {
	likes := make([]string, 0, len(row.Likes))
	for _, id := range row.Likes {
		likes = append(likes, id.Hex())
	}
	images := row.Images
	if images == nil {
		images = []string{}
	}
	comments := row.Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	return models.FeedPost{
		ID:        row.ID.Hex(),
		Content:   row.Content,
		Images:    images,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: row.CreatedAt,
		Author: models.AuthorSummary{
			ID:             row.Author.ID.Hex(),
			Username:       row.Author.Username,
			FullName:       row.Author.FullName,
			ProfilePicture: row.Author.ProfilePicture,
		},
	}
}
