// Package posts implements private, owner-scoped notes.
package posts

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is a note owned exclusively by one user.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Command carries the mutable fields of a post for create and update.
type Command struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content"`
}

// Normalize trims the title. Blank content is stored as NULL.
func (c *Command) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	if c.Content != nil && strings.TrimSpace(*c.Content) == "" {
		c.Content = nil
	}
}
