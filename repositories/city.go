package repositories

import (
	"context"

	"github.com/aryb086/eyes-app/config"
	"github.com/aryb086/eyes-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CityRepository is the capability surface over the cities collection.
type CityRepository interface {
	// List returns all cities with their neighborhoods omitted.
	List(ctx context.Context) ([]models.City, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.City, error)
	GetByNameLower(ctx context.Context, nameLower string) (*models.City, error)
	Create(ctx context.Context, city *models.City) (primitive.ObjectID, error)
	AddNeighborhood(ctx context.Context, cityID primitive.ObjectID, n models.Neighborhood) error
	// IncrementMemberCount bumps the denormalized member counter of one
	// neighborhood. The counter is never decremented.
	IncrementMemberCount(ctx context.Context, cityID primitive.ObjectID, neighborhoodID string) error
}

type mongoCityRepository struct {
	collection *mongo.Collection
}

// NewCityRepository returns a CityRepository backed by the cities collection
// of db.
func NewCityRepository(db *mongo.Database) CityRepository {
	return &mongoCityRepository{
		collection: db.Collection(string(config.DB_Collection.Cities)),
	}
}

func (r *mongoCityRepository) List(ctx context.Context) ([]models.City, error) {
	opts := options.Find().SetProjection(bson.M{"neighborhoods": 0})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cities []models.City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []models.City{}
	}
	return cities, nil
}

func (r *mongoCityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.City, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoCityRepository) GetByNameLower(ctx context.Context, nameLower string) (*models.City, error) {
	return r.findOne(ctx, bson.M{"name_lower": nameLower})
}

func (r *mongoCityRepository) findOne(ctx context.Context, filter bson.M) (*models.City, error) {
	var city models.City
	err := r.collection.FindOne(ctx, filter).Decode(&city)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *mongoCityRepository) Create(ctx context.Context, city *models.City) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, city)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// IsDuplicateKey reports whether err is a unique-index violation. The
// folded-name pre-check in the service is advisory; the index is what
// actually closes the create race.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (r *mongoCityRepository) AddNeighborhood(ctx context.Context, cityID primitive.ObjectID, n models.Neighborhood) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": cityID},
		bson.M{"$push": bson.M{"neighborhoods": n}})
	return err
}

func (r *mongoCityRepository) IncrementMemberCount(ctx context.Context, cityID primitive.ObjectID, neighborhoodID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cityID, "neighborhoods.id": neighborhoodID},
		bson.M{"$inc": bson.M{"neighborhoods.$.member_count": 1}})
	return err
}
