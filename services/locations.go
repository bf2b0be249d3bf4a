package services

import (
	"context"
	"log"
	"strings"
	"time"

	locationdto "github.com/aryb086/eyes-app/dto/location"
	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationService struct {
	cities repositories.CityRepository
	users  repositories.UserRepository
}

func NewLocationService(cities repositories.CityRepository, users repositories.UserRepository) *LocationService {
	return &LocationService{cities: cities, users: users}
}

// ListCities returns all cities without their neighborhood lists.
func (s *LocationService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.cities.List(ctx)
}

// GetCity fetches a city with its neighborhoods.
func (s *LocationService) GetCity(ctx context.Context, id primitive.ObjectID) (*models.City, error) {
	city, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, notFound("City not found")
	}
	return city, nil
}

// CreateCity creates a city, rejecting case-insensitive duplicates. The
// folded-name pre-check is advisory; the unique index on name_lower closes
// the race at the store.
func (s *LocationService) CreateCity(ctx context.Context, in locationdto.CityCreateDTO) (*models.City, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("City name is required")
	}

	nameLower := strings.ToLower(name)
	existing, err := s.cities.GetByNameLower(ctx, nameLower)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateCityError{CityID: existing.ID.Hex()}
	}

	country := in.Country
	if country == "" {
		country = "USA"
	}

	now := time.Now().UTC()
	city := &models.City{
		Name:          name,
		NameLower:     nameLower,
		State:         in.State,
		Country:       country,
		Neighborhoods: []models.Neighborhood{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.cities.Create(ctx, city)
	if err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, &DuplicateCityError{}
		}
		return nil, err
	}
	city.ID = id
	return city, nil
}

// AddNeighborhood appends a neighborhood to a city, rejecting
// case-insensitive name duplicates within that city. The id is an opaque
// token.
func (s *LocationService) AddNeighborhood(ctx context.Context, cityID primitive.ObjectID, in locationdto.NeighborhoodCreateDTO) (*models.Neighborhood, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("Neighborhood name is required")
	}

	city, err := s.cities.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, notFound("City not found")
	}

	nameLower := strings.ToLower(name)
	for _, n := range city.Neighborhoods {
		if n.NameLower == nameLower {
			return nil, validation("Neighborhood already exists in this city")
		}
	}

	neighborhood := models.Neighborhood{
		ID:          uuid.NewString(),
		Name:        name,
		NameLower:   nameLower,
		CreatedAt:   time.Now().UTC(),
		MemberCount: 0,
	}

	if err := s.cities.AddNeighborhood(ctx, cityID, neighborhood); err != nil {
		return nil, err
	}
	return &neighborhood, nil
}

// UpdateUserLocation points a user at an existing city/neighborhood pair,
// denormalizing both names onto the user, and bumps the neighborhood's
// member counter. The two writes are not transactional; a counter bump that
// fails after the profile write is logged and dropped.
func (s *LocationService) UpdateUserLocation(ctx context.Context, userID primitive.ObjectID, in locationdto.LocationUpdateDTO) (*models.Location, error) {
	if in.CityID == "" || in.NeighborhoodID == "" {
		return nil, validation("City ID and Neighborhood ID are required")
	}

	cityID, err := primitive.ObjectIDFromHex(in.CityID)
	if err != nil {
		return nil, validation("Invalid ID format")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	city, err := s.cities.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, notFound("City or neighborhood not found")
	}

	neighborhood := city.FindNeighborhood(in.NeighborhoodID)
	if neighborhood == nil {
		return nil, notFound("City or neighborhood not found")
	}

	location := models.Location{
		CityID:           in.CityID,
		CityName:         city.Name,
		NeighborhoodID:   in.NeighborhoodID,
		NeighborhoodName: neighborhood.Name,
	}

	if err := s.users.SetLocation(ctx, userID, location, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.cities.IncrementMemberCount(ctx, cityID, in.NeighborhoodID); err != nil {
		log.Printf("member_count increment failed for city %s neighborhood %s: %v",
			in.CityID, in.NeighborhoodID, err)
	}

	return &location, nil
}
