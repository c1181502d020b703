package prompts

import "github.com/JaimeStill/lexicon/pkg/openapi"

func intPtr(n int) *int { return &n }

// Schemas returns the component schemas referenced by prompt operations.
func Schemas() map[string]*openapi.Schema {
	command := &openapi.Schema{
		Type:     "object",
		Required: []string{"title", "content", "category"},
		Properties: map[string]*openapi.Schema{
			"title":    {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(200)},
			"content":  {Type: "string", MinLength: intPtr(1)},
			"category": {Type: "string", MinLength: intPtr(1)},
			"tags":     {Type: "array", Items: &openapi.Schema{Type: "string"}, Default: []string{}},
		},
	}

	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"title":           {Type: "string"},
				"content":         {Type: "string"},
				"category":        {Type: "string"},
				"tags":            {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"author":          {Type: "string"},
				"user_id":         {Type: "string", Format: "uuid"},
				"favorites_count": {Type: "integer"},
				"created_at":      {Type: "string", Format: "date-time"},
				"updated_at":      {Type: "string", Format: "date-time"},
			},
		},
		"PromptPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Prompt")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"limit":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"FavoriteState": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompt_id":       {Type: "string", Format: "uuid"},
				"favorited":       {Type: "boolean"},
				"favorites_count": {Type: "integer"},
			},
		},
		"CreatePromptCommand": command,
		"UpdatePromptCommand": command,
		"PromptSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"query":    {Type: "string", Description: "Case-insensitive substring of title or content"},
				"category": {Type: "string", Description: "Exact category"},
				"page":     {Type: "integer", Default: 1},
				"limit":    {Type: "integer", Default: 12},
			},
		},
	}
}

var pageParams = openapi.PageParams(12, 50)

var idParam = openapi.PathParam("id", "Prompt ID")

var docs = struct {
	list, search, categories, mine, favorites, favoriteIDs *openapi.Operation
	find, create, update, delete                           *openapi.Operation
	toggle, favorite, unfavorite                           *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "Search prompts",
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("q", "string", "Case-insensitive substring of title or content", false),
			openapi.QueryParam("category", "string", "Exact category", false),
		}, pageParams...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompts ordered by favorites", "PromptPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	search: &openapi.Operation{
		Summary:     "Search prompts with a JSON body",
		RequestBody: openapi.RequestBodyJSON("PromptSearchRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompts ordered by favorites", "PromptPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	categories: &openapi.Operation{
		Summary: "List distinct categories",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Categories in alphabetical order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	},
	mine: &openapi.Operation{
		Summary:    "List the caller's prompts",
		Security:   openapi.Bearer(),
		Parameters: pageParams,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Caller's prompts, newest first", "PromptPage"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	favorites: &openapi.Operation{
		Summary:    "List the caller's favorited prompts",
		Security:   openapi.Bearer(),
		Parameters: pageParams,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Favorited prompts ordered by favorites", "PromptPage"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	favoriteIDs: &openapi.Operation{
		Summary:  "List the ids of the caller's favorited prompts",
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Favorited prompt ids",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string", Format: "uuid"}}},
				},
			},
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Find a prompt",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Create a prompt",
		Security:    openapi.Bearer(),
		RequestBody: openapi.RequestBodyJSON("CreatePromptCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	update: &openapi.Operation{
		Summary:     "Update a prompt the caller owns",
		Security:    openapi.Bearer(),
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("UpdatePromptCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete a prompt the caller owns",
		Security:   openapi.Bearer(),
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Prompt deleted"},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	toggle:     favoriteDoc("Toggle the caller's favorite"),
	favorite:   favoriteDoc("Favorite a prompt"),
	unfavorite: favoriteDoc("Unfavorite a prompt"),
}

func favoriteDoc(summary string) *openapi.Operation {
	return &openapi.Operation{
		Summary:    summary,
		Security:   openapi.Bearer(),
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting favorite state", "FavoriteState"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}
