package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post visibility tiers.
const (
	VisibilityCity         = "city"
	VisibilityNeighborhood = "neighborhood"
)

// ValidVisibility reports whether v is a recognized visibility tier.
func ValidVisibility(v string) bool {
	return v == VisibilityCity || v == VisibilityNeighborhood
}

// Comment is a comment sub-document on a post.
type Comment struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a user post. Likes is a set of user ids.
type Post struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content    string               `bson:"content" json:"content"`
	Images     []string             `bson:"images" json:"images"`
	Author     primitive.ObjectID   `bson:"author" json:"author"`
	Visibility string               `bson:"visibility" json:"visibility"`
	Likes      []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments   []Comment            `bson:"comments" json:"comments"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"-"`
}

// AuthorSummary is the author snapshot joined onto feed posts at query time.
type AuthorSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
}

// FeedPost is a post enriched with its author's current public profile.
type FeedPost struct {
	ID        string        `json:"_id"`
	Content   string        `json:"content"`
	Images    []string      `json:"images"`
	Likes     []string      `json:"likes"`
	Comments  []Comment     `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    AuthorSummary `json:"author"`
}
