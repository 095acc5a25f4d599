package host

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	Setup    *openapi.Operation
	Submit   *openapi.Operation
	Dispatch *openapi.Operation
	Tables   *openapi.Operation
	Rows     *openapi.Operation
	EditCell *openapi.Operation
}

var editResponse = &openapi.Response{
	Description: "Results from each edit handler",
	Content: map[string]*openapi.MediaType{
		"application/json": {
			Schema: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"results": {Type: "array", Items: openapi.SchemaRef("EditResult")},
				},
			},
		},
	},
}

// Spec documents the host endpoints.
var Spec = spec{
	Setup: &openapi.Operation{
		Summary:     "Create library tables",
		Description: "Creates the Library and History tables with their headers. Existing tables are left alone.",
		Tags:        []string{"Host"},
		Responses: map[int]*openapi.Response{
			204: {Description: "Tables exist"},
		},
	},
	Submit: &openapi.Operation{
		Summary:     "Add prompt",
		Tags:        []string{"Host"},
		RequestBody: openapi.RequestBodyJSON("Form", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created prompt", "Record"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Dispatch: &openapi.Operation{
		Summary:     "Deliver edit event",
		Description: "Runs the edit handlers for a cell edit already applied to the store.",
		Tags:        []string{"Host"},
		RequestBody: openapi.RequestBodyJSON("EditEvent", true),
		Responses: map[int]*openapi.Response{
			200: editResponse,
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Tables: &openapi.Operation{
		Summary: "List tables",
		Tags:    []string{"Tables"},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Table names in creation order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	},
	Rows: &openapi.Operation{
		Summary: "Read table rows",
		Tags:    []string{"Tables"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("table", "string", "Table name"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Every row, header first",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "array"}}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	EditCell: &openapi.Operation{
		Summary:     "Edit cell",
		Description: "Writes one cell, then delivers the edit to every registered handler.",
		Tags:        []string{"Tables"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("table", "string", "Table name"),
			openapi.PathParam("row", "integer", "1-based row"),
			openapi.PathParam("column", "integer", "1-based column"),
		},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/json": {
					Schema: &openapi.Schema{
						Type:       "object",
						Properties: map[string]*openapi.Schema{"value": {Description: "New cell value"}},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			200: editResponse,
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
