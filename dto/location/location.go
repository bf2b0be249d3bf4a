package location

// CityCreateDTO is the payload for POST /api/locations/cities.
type CityCreateDTO struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// NeighborhoodCreateDTO is the payload for POST /api/locations/cities/:id/neighborhoods.
type NeighborhoodCreateDTO struct {
	Name string `json:"name"`
}

// LocationUpdateDTO is the payload for PUT /api/users/:id/location.
type LocationUpdateDTO struct {
	CityID         string `json:"city_id"`
	NeighborhoodID string `json:"neighborhood_id"`
}
