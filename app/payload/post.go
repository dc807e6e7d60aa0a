package payload

// Post is the boundary representation of a blog post.
type Post struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,min=10"`
	Content     string `json:"content" validate:"required"`
}

// Validate checks the request rules for a post body.
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// PostPage is one page of the post listing.
type PostPage struct {
	Page  int    `json:"page"`
	Posts []Post `json:"posts"`
}
