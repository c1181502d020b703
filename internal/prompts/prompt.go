// Package prompts implements the community prompt library: search,
// categories, owner-managed prompts, and per-user favorites with a
// denormalized favorites counter.
package prompts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lexicon/pkg/pagination"
)

// Prompt is a shareable text template with category and tag metadata.
type Prompt struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	Author         string    `json:"author"`
	UserID         uuid.UUID `json:"user_id"`
	FavoritesCount int       `json:"favorites_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FavoriteState reports the caller's favorite state for a prompt after a
// favorite mutation, along with the prompt's resulting counter.
type FavoriteState struct {
	PromptID       uuid.UUID `json:"prompt_id"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favorites_count"`
}

// CreateCommand carries the data needed to create a prompt.
type CreateCommand struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags"`
}

// Normalize trims string input and drops blank tags.
func (c *CreateCommand) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Category = strings.TrimSpace(c.Category)
	if strings.TrimSpace(c.Content) == "" {
		c.Content = ""
	}
	c.Tags = normalizeTags(c.Tags)
}

// UpdateCommand replaces every mutable field of a prompt.
type UpdateCommand struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Tags     []string `json:"tags"`
}

// Normalize trims string input and drops blank tags.
func (c *UpdateCommand) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Category = strings.TrimSpace(c.Category)
	if strings.TrimSpace(c.Content) == "" {
		c.Content = ""
	}
	c.Tags = normalizeTags(c.Tags)
}

// SearchRequest combines free-text, category, and pagination criteria.
type SearchRequest struct {
	Query    *string `json:"query,omitempty"`
	Category *string `json:"category,omitempty"`
	pagination.PageRequest
}

// Normalize trims the query and category; blank values disable the filter.
func (s *SearchRequest) Normalize() {
	s.Query = trimOptional(s.Query)
	s.Category = trimOptional(s.Category)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
