package payload

// Comment is the boundary representation of a comment. It carries no
// reference to the owning post; the post id always travels in the URL.
type Comment struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Body  string `json:"body" validate:"required,min=10,max=5000"`
}

// Validate checks the request rules for a comment body.
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// Sanitize strips markup from the free-text fields.
func (c *Comment) Sanitize() {
	c.Name = sanitize(c.Name)
	c.Body = sanitize(c.Body)
}
