package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/lexicon/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

// Document adds every documented route in groups to spec, with paths
// rooted at basePath. Group tags apply to operations that declare none.
func Document(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		documentGroup(spec, basePath, nil, group)
	}
}

func documentGroup(spec *openapi.Spec, parentPrefix string, parentTags []string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	for _, route := range group.Routes {
		if route.Doc == nil {
			continue
		}
		op := *route.Doc
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		path := strings.ReplaceAll(fullPrefix+route.Pattern, "...}", "}")
		spec.AddOperation(route.Method, path, &op)
	}

	for _, child := range group.Children {
		documentGroup(spec, fullPrefix, tags, child)
	}
}
