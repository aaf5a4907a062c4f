package post

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Post is a blog article row. Content is nullable in storage.
type Post struct {
	ID      int64   `db:"id"      json:"id"`
	Title   string  `db:"title"   json:"title"`
	Content *string `db:"content" json:"content"`
}

// Body returns the content or an empty string when the column is NULL.
func (p *Post) Body() string {
	if p == nil || p.Content == nil {
		return ""
	}
	return *p.Content
}

// CreateInput carries a submitted create form.
type CreateInput struct {
	Title   string  `validate:"required"`
	Content *string `validate:"-"`
}

var validate = validator.New()

// Validate reports a *ValidationError when the input cannot be persisted.
func (in *CreateInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return &ValidationError{Messages: msgs, Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required!"
	default:
		return strings.TrimSpace(fe.Field() + " is invalid")
	}
}
