package routes

import (
	"net/http"

	"github.com/JaimeStill/lexicon/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// Doc, when set, describes the route in the generated OpenAPI document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Doc     *openapi.Operation
}
