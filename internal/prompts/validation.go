package prompts

import "github.com/JaimeStill/lexicon/pkg/validation"

var messages = validation.Messages{
	"title.required":    "Title is required",
	"title.max":         "Title too long",
	"content.required":  "Content is required",
	"category.required": "Category is required",
}
