package openapi

import "maps"

func errorSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"error": {Type: "string", Description: "Error message"},
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: errorSchema()},
		},
	}
}

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":  {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"limit": {Type: "integer", Description: "Results per page", Example: 12},
				},
			},
			"ValidationError": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message", Example: "validation failed"},
					"fields": {
						Type:        "object",
						Description: "Per-field validation messages keyed by JSON field name",
					},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("ValidationError")},
				},
			},
			"Unauthorized": errorResponse("Authentication required"),
			"Forbidden":    errorResponse("Caller does not own the resource"),
			"NotFound":     errorResponse("Resource not found"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			BearerScheme: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
				Description:  "Access token issued by the configured identity provider",
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
