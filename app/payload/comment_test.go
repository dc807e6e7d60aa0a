package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentValidate(t *testing.T) {
	tests := []struct {
		name       string
		comment    Comment
		wantFields []string
	}{
		{
			name:    "valid comment",
			comment: Comment{Name: "Ada", Email: "ada@example.com", Body: "A perfectly fine comment"},
		},
		{
			name:       "missing everything",
			comment:    Comment{},
			wantFields: []string{"name", "email", "body"},
		},
		{
			name:       "bad email",
			comment:    Comment{Name: "Ada", Email: "not-an-email", Body: "A perfectly fine comment"},
			wantFields: []string{"email"},
		},
		{
			name:       "short body",
			comment:    Comment{Name: "Ada", Email: "ada@example.com", Body: "too short"},
			wantFields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			fields := Describe(err)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestDescribeMessages(t *testing.T) {
	c := Comment{Name: "Ada", Email: "nope", Body: "short"}
	fields := Describe(c.Validate())

	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 10 characters", fields["body"])
}

func TestDescribeIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Describe(errors.New("boom")))
	assert.Nil(t, Describe(nil))
}

func TestCommentSanitize(t *testing.T) {
	c := Comment{
		Name:  "  <b>Ada</b> ",
		Email: "ada@example.com",
		Body:  "<script>alert(1)</script>Nice post, thanks",
	}

	c.Sanitize()

	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "Nice post, thanks", c.Body)
	assert.Equal(t, "ada@example.com", c.Email)
}

func TestPostValidate(t *testing.T) {
	valid := Post{Title: "Hello", Description: "A description", Content: "Body"}
	assert.NoError(t, valid.Validate())

	invalid := Post{Title: "H", Description: "short"}
	fields := Describe(invalid.Validate())
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "content")
}

func TestCommentSanitizeKeepsPlainText(t *testing.T) {
	c := Comment{
		Name: "Conan O'Brien",
		Body: `Tom & Jerry said "5 < 6" <i>twice</i>`,
	}

	c.Sanitize()
	assert.Equal(t, "Conan O'Brien", c.Name)
	assert.Equal(t, `Tom & Jerry said "5 < 6" twice`, c.Body)

	again := c
	again.Sanitize()
	assert.Equal(t, c, again)
}
