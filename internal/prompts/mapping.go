package prompts

import (
	"net/url"

	"github.com/JaimeStill/lexicon/pkg/pagination"
	"github.com/JaimeStill/lexicon/pkg/query"
	"github.com/JaimeStill/lexicon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("content", "Content").
	Project("category", "Category").
	Project("tags", "Tags").
	Project("author", "Author").
	Project("user_id", "UserID").
	Project("favorites_count", "FavoritesCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Most favorited first; id keeps pages stable across equal counts.
var defaultSort = []query.SortField{
	{Field: "FavoritesCount", Descending: true},
	{Field: "CreatedAt", Descending: true},
	{Field: "ID"},
}

var newestSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID"},
}

const favoritedBy = "SELECT 1 FROM public.prompt_favorites f WHERE f.prompt_id = p.id AND f.user_id = ?"

// SearchRequestFromQuery reads q, category, page, and limit query parameters.
func SearchRequestFromQuery(values url.Values) (SearchRequest, error) {
	page, err := pagination.PageRequestFromQuery(values)
	if err != nil {
		return SearchRequest{}, err
	}

	req := SearchRequest{PageRequest: page}
	if q := values.Get("q"); q != "" {
		req.Query = &q
	}
	if c := values.Get("category"); c != "" {
		req.Category = &c
	}
	return req, nil
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Category,
		repository.Array(&p.Tags),
		&p.Author,
		&p.UserID,
		&p.FavoritesCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
