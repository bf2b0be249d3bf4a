package services

import (
	"context"
	"strings"
	"time"

	postdto "github.com/aryb086/eyes-app/dto/post"
	"github.com/aryb086/eyes-app/models"
	"github.com/aryb086/eyes-app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 100
)

type PostService struct {
	posts repositories.PostRepository
}

func NewPostService(posts repositories.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create stores a new post authored by author. Visibility defaults to
// neighborhood.
func (s *PostService) Create(ctx context.Context, author primitive.ObjectID, in postdto.PostCreateDTO) (primitive.ObjectID, error) {
	if strings.TrimSpace(in.Content) == "" {
		return primitive.NilObjectID, validation("Post content is required")
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityNeighborhood
	}
	if !models.ValidVisibility(visibility) {
		return primitive.NilObjectID, validation("Visibility must be city or neighborhood")
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now().UTC()
	post := &models.Post{
		Content:    in.Content,
		Images:     images,
		Author:     author,
		Visibility: visibility,
		Likes:      []primitive.ObjectID{},
		Comments:   []models.Comment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.posts.Create(ctx, post)
}

// Feed returns the page of posts visible to user: their own posts plus posts
// from everyone they follow, newest first. An unrecognized visibility value
// is ignored rather than rejected, matching the read path's lenient filter.
func (s *PostService) Feed(ctx context.Context, user *models.User, page, limit int64, visibility string) ([]models.FeedPost, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}
	if !models.ValidVisibility(visibility) {
		visibility = ""
	}

	authors := make([]primitive.ObjectID, 0, len(user.Following)+1)
	authors = append(authors, user.Following...)
	authors = append(authors, user.ID)

	return s.posts.Feed(ctx, authors, visibility, (page-1)*limit, limit)
}

// ToggleLike flips user's membership in the post's like set and reports
// whether the post is now liked by them.
func (s *PostService) ToggleLike(ctx context.Context, user, postID primitive.ObjectID) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, notFound("Post not found")
	}

	for _, id := range post.Likes {
		if id == user {
			if err := s.posts.RemoveLike(ctx, postID, user); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	if err := s.posts.AddLike(ctx, postID, user); err != nil {
		return false, err
	}
	return true, nil
}
