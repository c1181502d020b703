package posts

import (
	"github.com/JaimeStill/lexicon/pkg/query"
	"github.com/JaimeStill/lexicon/pkg/repository"
	"github.com/JaimeStill/lexicon/pkg/validation"
)

var projection = query.
	NewProjectionMap("public", "posts", "po").
	Project("id", "ID").
	Project("title", "Title").
	Project("content", "Content").
	Project("user_id", "UserID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID"},
}

var messages = validation.Messages{
	"title.required": "Title is required",
}

func scanPost(s repository.Scanner) (Post, error) {
	var p Post
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
