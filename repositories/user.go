package repositories

import (
	"context"
	"log"
	"time"

	"github.com/aryb086/eyes-app/config"
	"github.com/aryb086/eyes-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository is the capability surface over the users collection.
// Lookups return (nil, nil) when no document matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	AddFollow(ctx context.Context, follower, target primitive.ObjectID) error
	RemoveFollow(ctx context.Context, follower, target primitive.ObjectID) error
	SetLocation(ctx context.Context, id primitive.ObjectID, loc models.Location, at time.Time) error
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository returns a UserRepository backed by the users collection
// of db.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(string(config.DB_Collection.Users)),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		log.Println("Error fetching user:", err)
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLogin": at}})
	return err
}

// AddFollow puts target into follower's following set and follower into
// target's followers set. The two updates are individually atomic but not
// jointly: a crash between them leaves an asymmetric relationship.
func (r *mongoUserRepository) AddFollow(ctx context.Context, follower, target primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$addToSet": bson.M{"following": target}})
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$addToSet": bson.M{"followers": follower}})
	return err
}

func (r *mongoUserRepository) RemoveFollow(ctx context.Context, follower, target primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$pull": bson.M{"following": target}})
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$pull": bson.M{"followers": follower}})
	return err
}

func (r *mongoUserRepository) SetLocation(ctx context.Context, id primitive.ObjectID, loc models.Location, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"location": loc, "updatedAt": at}})
	return err
}
