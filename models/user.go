package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is the denormalized city/neighborhood pair stored on a user.
type Location struct {
	CityID           string `bson:"city_id" json:"city_id"`
	CityName         string `bson:"city_name" json:"city_name"`
	NeighborhoodID   string `bson:"neighborhood_id" json:"neighborhood_id"`
	NeighborhoodName string `bson:"neighborhood_name" json:"neighborhood_name"`
}

// User represents a user in the system. Followers and Following are mutual
// mirrors: A in B.Followers iff B in A.Following.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName       string               `bson:"fullName" json:"fullName"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	Bio            string               `bson:"bio,omitempty" json:"bio"`
	ProfilePicture string               `bson:"profilePicture,omitempty" json:"profilePicture"`
	Followers      []primitive.ObjectID `bson:"followers,omitempty" json:"followers"`
	Following      []primitive.ObjectID `bson:"following,omitempty" json:"following"`
	Location       *Location            `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"-"`
	LastLogin      time.Time            `bson:"lastLogin,omitempty" json:"-"`
}

// Profile is the sanitized user representation returned by the API. The
// credential hash never appears here; Email is only populated for the
// user's own profile.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	FullName       string    `json:"fullName"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Followers      []string  `json:"followers"`
	Following      []string  `json:"following"`
	Location       *Location `json:"location,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile builds the sanitized representation of u. includeEmail controls
// whether the email address is exposed (own profile only).
func (u *User) Profile(includeEmail bool) Profile {
	p := Profile{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Followers:      hexIDs(u.Followers),
		Following:      hexIDs(u.Following),
		Location:       u.Location,
		CreatedAt:      u.CreatedAt,
	}
	if includeEmail {
		p.Email = u.Email
	}
	return p
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
