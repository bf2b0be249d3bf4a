package services

import (
	"context"
	"testing"

	locationdto "github.com/aryb086/eyes-app/dto/location"
	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/repositories"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationServiceSuite struct {
	suite.Suite
	cities *repositories.MemoryCityRepository
	users  *repositories.MemoryUserRepository
	svc    *LocationService
}

func (s *LocationServiceSuite) SetupTest() {
	s.cities = repositories.NewMemoryCityRepository()
	s.users = repositories.NewMemoryUserRepository()
	s.svc = NewLocationService(s.cities, s.users)
}

func (s *LocationServiceSuite) createCity(name string) *models.City {
	city, err := s.svc.CreateCity(context.Background(), locationdto.CityCreateDTO{Name: name, State: "TX"})
	s.Require().NoError(err)
	return city
}

func (s *LocationServiceSuite) addNeighborhood(cityID primitive.ObjectID, name string) *models.Neighborhood {
	n, err := s.svc.AddNeighborhood(context.Background(), cityID, locationdto.NeighborhoodCreateDTO{Name: name})
	s.Require().NoError(err)
	return n
}

func TestLocationServiceSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceSuite))
}

func (s *LocationServiceSuite) TestCreateCity_Defaults() {
	city := s.createCity("Austin")

	s.Equal("Austin", city.Name)
	s.Equal("austin", city.NameLower)
	s.Equal("USA", city.Country)
	s.False(city.ID.IsZero())
}

func (s *LocationServiceSuite) TestCreateCity_CaseInsensitiveDuplicate() {
	first := s.createCity("Austin")

	_, err := s.svc.CreateCity(context.Background(), locationdto.CityCreateDTO{Name: "austin"})
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Equal("City already exists", err.Error())

	var dup *DuplicateCityError
	s.Require().ErrorAs(err, &dup)
	s.Equal(first.ID.Hex(), dup.CityID)
}

func (s *LocationServiceSuite) TestCreateCity_NameRequired() {
	_, err := s.svc.CreateCity(context.Background(), locationdto.CityCreateDTO{Name: "  "})
	s.Require().Error(err)
	s.Equal("City name is required", err.Error())
}

func (s *LocationServiceSuite) TestAddNeighborhood() {
	city := s.createCity("Austin")

	n := s.addNeighborhood(city.ID, "Hyde Park")
	s.NotEmpty(n.ID)
	s.Equal("Hyde Park", n.Name)
	s.Equal("hyde park", n.NameLower)
	s.EqualValues(0, n.MemberCount)

	stored, err := s.svc.GetCity(context.Background(), city.ID)
	s.Require().NoError(err)
	s.Len(stored.Neighborhoods, 1)
}

func (s *LocationServiceSuite) TestAddNeighborhood_CaseInsensitiveDuplicate() {
	city := s.createCity("Austin")
	s.addNeighborhood(city.ID, "Hyde Park")

	_, err := s.svc.AddNeighborhood(context.Background(), city.ID, locationdto.NeighborhoodCreateDTO{Name: "HYDE PARK"})
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Equal("Neighborhood already exists in this city", err.Error())
}

func (s *LocationServiceSuite) TestAddNeighborhood_CityMissing() {
	_, err := s.svc.AddNeighborhood(context.Background(), primitive.NewObjectID(), locationdto.NeighborhoodCreateDTO{Name: "Hyde Park"})
	s.Require().Error(err)
	s.True(IsNotFound(err))
	s.Equal("City not found", err.Error())
}

func (s *LocationServiceSuite) TestUpdateUserLocation() {
	ctx := context.Background()
	city := s.createCity("Austin")
	n := s.addNeighborhood(city.ID, "Hyde Park")

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	userID, err := s.users.Create(ctx, user)
	s.Require().NoError(err)

	location, err := s.svc.UpdateUserLocation(ctx, userID, locationdto.LocationUpdateDTO{
		CityID:         city.ID.Hex(),
		NeighborhoodID: n.ID,
	})
	s.Require().NoError(err)
	s.Equal("Austin", location.CityName)
	s.Equal("Hyde Park", location.NeighborhoodName)

	stored, _ := s.users.GetByID(ctx, userID)
	s.Require().NotNil(stored.Location)
	s.Equal(n.ID, stored.Location.NeighborhoodID)

	updated, _ := s.cities.GetByID(ctx, city.ID)
	s.EqualValues(1, updated.Neighborhoods[0].MemberCount)

	// the counter is monotonic: re-applying the same location bumps it again
	_, err = s.svc.UpdateUserLocation(ctx, userID, locationdto.LocationUpdateDTO{
		CityID:         city.ID.Hex(),
		NeighborhoodID: n.ID,
	})
	s.Require().NoError(err)
	updated, _ = s.cities.GetByID(ctx, city.ID)
	s.EqualValues(2, updated.Neighborhoods[0].MemberCount)
}

func (s *LocationServiceSuite) TestUpdateUserLocation_Validation() {
	ctx := context.Background()
	city := s.createCity("Austin")
	n := s.addNeighborhood(city.ID, "Hyde Park")

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	userID, err := s.users.Create(ctx, user)
	s.Require().NoError(err)

	_, err = s.svc.UpdateUserLocation(ctx, userID, locationdto.LocationUpdateDTO{})
	s.Require().Error(err)
	s.Equal("City ID and Neighborhood ID are required", err.Error())

	_, err = s.svc.UpdateUserLocation(ctx, userID, locationdto.LocationUpdateDTO{
		CityID:         "not-an-id",
		NeighborhoodID: n.ID,
	})
	s.Require().Error(err)
	s.Equal("Invalid ID format", err.Error())

	_, err = s.svc.UpdateUserLocation(ctx, userID, locationdto.LocationUpdateDTO{
		CityID:         city.ID.Hex(),
		NeighborhoodID: "missing-neighborhood",
	})
	s.Require().Error(err)
	s.True(IsNotFound(err))
	s.Equal("City or neighborhood not found", err.Error())

	_, err = s.svc.UpdateUserLocation(ctx, primitive.NewObjectID(), locationdto.LocationUpdateDTO{
		CityID:         city.ID.Hex(),
		NeighborhoodID: n.ID,
	})
	s.Require().Error(err)
	s.Equal("User not found", err.Error())
}

func (s *LocationServiceSuite) TestListCities_OmitsNeighborhoods() {
	city := s.createCity("Austin")
	s.addNeighborhood(city.ID, "Hyde Park")

	cities, err := s.svc.ListCities(context.Background())
	s.Require().NoError(err)
	s.Require().Len(cities, 1)
	s.Empty(cities[0].Neighborhoods)
}
