package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Neighborhood is a sub-document of a city. ID is an opaque token.
// MemberCount only ever increases; it is an approximation, not a live count.
type Neighborhood struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	NameLower   string    `bson:"name_lower" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	MemberCount int64     `bson:"member_count" json:"member_count"`
}

// City holds a display name plus a folded key for case-insensitive
// uniqueness, enforced by a unique index on name_lower. Neighborhood names
// are unique per city, also case-insensitively.
type City struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	NameLower     string             `bson:"name_lower" json:"-"`
	State         string             `bson:"state" json:"state"`
	Country       string             `bson:"country" json:"country"`
	Neighborhoods []Neighborhood     `bson:"neighborhoods" json:"neighborhoods,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"-"`
}

// FindNeighborhood returns the neighborhood with the given id, or nil.
func (c *City) FindNeighborhood(id string) *Neighborhood {
	for i := range c.Neighborhoods {
		if c.Neighborhoods[i].ID == id {
			return &c.Neighborhoods[i]
		}
	}
	return nil
}
