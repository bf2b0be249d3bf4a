package post

// PostCreateDTO is the payload for POST /api/posts.
type PostCreateDTO struct {
	Content    string   `json:"content"`
	Images     []string `json:"images"`
	Visibility string   `json:"visibility"`
}
