package api

import (
	"github.com/JaimeStill/lexicon/internal/posts"
	"github.com/JaimeStill/lexicon/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Posts   posts.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Posts: posts.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
		Prompts: prompts.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
