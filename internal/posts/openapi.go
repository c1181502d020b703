package posts

import "github.com/JaimeStill/lexicon/pkg/openapi"

// Schemas returns the component schemas referenced by post operations.
func Schemas() map[string]*openapi.Schema {
	minLen := 1
	return map[string]*openapi.Schema{
		"Post": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"title":      {Type: "string"},
				"content":    {Type: "string", Description: "Null when the post has no body"},
				"user_id":    {Type: "string", Format: "uuid"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"PostPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Post")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"limit":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"PostCommand": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":   {Type: "string", MinLength: &minLen},
				"content": {Type: "string"},
			},
		},
	}
}

var idParam = openapi.PathParam("id", "Post ID")

var docs = struct {
	list, find, create, update, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary:    "List the caller's posts",
		Security:   openapi.Bearer(),
		Parameters: openapi.PageParams(12, 50),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Caller's posts, newest first", "PostPage"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Find one of the caller's posts",
		Security:   openapi.Bearer(),
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Post", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Create a post",
		Security:    openapi.Bearer(),
		RequestBody: openapi.RequestBodyJSON("PostCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created post", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	update: &openapi.Operation{
		Summary:     "Update a post the caller owns",
		Security:    openapi.Bearer(),
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("PostCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated post", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete a post the caller owns",
		Security:   openapi.Bearer(),
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Post deleted"},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
