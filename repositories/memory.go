package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aryb086/eyes-app/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repository interfaces. They back the test
// suites and keep the access layer substitutable without a running MongoDB.
// Semantics mirror the Mongo implementations, including (nil, nil) lookups
// and set behavior for follows and likes.

type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Followers = append([]primitive.ObjectID(nil), u.Followers...)
	clone.Following = append([]primitive.ObjectID(nil), u.Following...)
	return &clone
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *MemoryUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) SetLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastLogin = at
	}
	return nil
}

func (r *MemoryUserRepository) AddFollow(_ context.Context, follower, target primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[follower]; ok {
		u.Following = addToSet(u.Following, target)
	}
	if u, ok := r.users[target]; ok {
		u.Followers = addToSet(u.Followers, follower)
	}
	return nil
}

func (r *MemoryUserRepository) RemoveFollow(_ context.Context, follower, target primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[follower]; ok {
		u.Following = pull(u.Following, target)
	}
	if u, ok := r.users[target]; ok {
		u.Followers = pull(u.Followers, follower)
	}
	return nil
}

func (r *MemoryUserRepository) SetLocation(_ context.Context, id primitive.ObjectID, loc models.Location, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		locCopy := loc
		u.Location = &locCopy
		u.UpdatedAt = at
	}
	return nil
}

type MemoryPostRepository struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
	users *MemoryUserRepository
}

// NewMemoryPostRepository needs the user repository to perform the author
// join the Mongo implementation does with $lookup.
func NewMemoryPostRepository(users *MemoryUserRepository) *MemoryPostRepository {
	return &MemoryPostRepository{
		posts: make(map[primitive.ObjectID]*models.Post),
		users: users,
	}
}

func (r *MemoryPostRepository) Create(_ context.Context, post *models.Post) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	clone := *post
	r.posts[post.ID] = &clone
	return post.ID, nil
}

func (r *MemoryPostRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		clone := *p
		clone.Likes = append([]primitive.ObjectID(nil), p.Likes...)
		return &clone, nil
	}
	return nil, nil
}

func (r *MemoryPostRepository) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.Likes = addToSet(p.Likes, userID)
	}
	return nil
}

func (r *MemoryPostRepository) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok {
		p.Likes = pull(p.Likes, userID)
	}
	return nil
}

func (r *MemoryPostRepository) Feed(ctx context.Context, authors []primitive.ObjectID, visibility string, skip, limit int64) ([]models.FeedPost, error) {
	r.mu.Lock()
	var matched []models.Post
	for _, p := range r.posts {
		if !containsID(authors, p.Author) {
			continue
		}
		if visibility != "" && p.Visibility != visibility {
			continue
		}
		matched = append(matched, *p)
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if skip >= int64(len(matched)) {
		return []models.FeedPost{}, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}

	feed := make([]models.FeedPost, 0, len(matched))
	for _, p := range matched {
		author, err := r.users.GetByID(ctx, p.Author)
		if err != nil {
			return nil, err
		}
		if author == nil {
			// $unwind drops posts whose author document is gone
			continue
		}
		likes := make([]string, 0, len(p.Likes))
		for _, id := range p.Likes {
			likes = append(likes, id.Hex())
		}
		images := p.Images
		if images == nil {
			images = []string{}
		}
		comments := p.Comments
		if comments == nil {
			comments = []models.Comment{}
		}
		feed = append(feed, models.FeedPost{
			ID:        p.ID.Hex(),
			Content:   p.Content,
			Images:    images,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			Author: models.AuthorSummary{
				ID:             author.ID.Hex(),
				Username:       author.Username,
				FullName:       author.FullName,
				ProfilePicture: author.ProfilePicture,
			},
		})
	}
	return feed, nil
}

type MemoryCityRepository struct {
	mu     sync.Mutex
	cities map[primitive.ObjectID]*models.City
}

func NewMemoryCityRepository() *MemoryCityRepository {
	return &MemoryCityRepository{cities: make(map[primitive.ObjectID]*models.City)}
}

func (r *MemoryCityRepository) List(_ context.Context) ([]models.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.City, 0, len(r.cities))
	for _, c := range r.cities {
		clone := *c
		clone.Neighborhoods = nil
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameLower < out[j].NameLower })
	return out, nil
}

func (r *MemoryCityRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cities[id]; ok {
		clone := *c
		clone.Neighborhoods = append([]models.Neighborhood(nil), c.Neighborhoods...)
		return &clone, nil
	}
	return nil, nil
}

func (r *MemoryCityRepository) GetByNameLower(_ context.Context, nameLower string) (*models.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cities {
		if c.NameLower == nameLower {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemoryCityRepository) Create(_ context.Context, city *models.City) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if city.ID.IsZero() {
		city.ID = primitive.NewObjectID()
	}
	clone := *city
	r.cities[city.ID] = &clone
	return city.ID, nil
}

func (r *MemoryCityRepository) AddNeighborhood(_ context.Context, cityID primitive.ObjectID, n models.Neighborhood) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cities[cityID]; ok {
		c.Neighborhoods = append(c.Neighborhoods, n)
	}
	return nil
}

func (r *MemoryCityRepository) IncrementMemberCount(_ context.Context, cityID primitive.ObjectID, neighborhoodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cities[cityID]; ok {
		for i := range c.Neighborhoods {
			if c.Neighborhoods[i].ID == neighborhoodID {
				c.Neighborhoods[i].MemberCount++
			}
		}
	}
	return nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if containsID(set, id) {
		return set
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, member := range set {
		if member != id {
			out = append(out, member)
		}
	}
	return out
}

func containsID(set []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}
