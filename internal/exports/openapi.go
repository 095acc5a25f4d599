package exports

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
}

// Spec documents the snapshot endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List snapshot files",
		Tags:    []string{"Exports"},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Blob keys under the snapshot prefix",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create snapshot",
		Description: "Uploads every table as CSV under a new snapshot id.",
		Tags:        []string{"Exports"},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Snapshot", "Snapshot"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

// Schemas returns the component schemas referenced by the export operations.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Snapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid"},
				"createdAt": {Type: "string", Format: "date-time"},
				"files": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"table": {Type: "string"},
							"key":   {Type: "string"},
							"rows":  {Type: "integer"},
							"size":  {Type: "string", Example: "1.2 KB"},
						},
					},
				},
			},
		},
	}
}
