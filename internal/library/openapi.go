package library

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List          *openapi.Operation
	Find          *openapi.Operation
	PromptHistory *openapi.Operation
	History       *openapi.Operation
}

// Spec documents the library read endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List prompts",
		Description: "Pages through Library rows. Search matches id, name, description, and category.",
		Tags:        []string{"Library"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Case-insensitive substring search", false),
			openapi.QueryParam("category", "string", "Exact category (case-insensitive)", false),
			openapi.QueryParam("owner", "string", "Exact owner (case-insensitive)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt page", "RecordPage"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Get prompt",
		Tags:    []string{"Library"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "string", "Prompt id (PR-n)"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "Record"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	PromptHistory: &openapi.Operation{
		Summary:     "Prompt history",
		Description: "Archived text for one prompt in the order it was archived.",
		Tags:        []string{"Library"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "string", "Prompt id (PR-n)"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("History entries", "HistoryEntry"),
		},
	},
	History: &openapi.Operation{
		Summary: "List history",
		Tags:    []string{"Library"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("History page", "HistoryPage"),
		},
	},
}

// Schemas returns the component schemas referenced by the library and host operations.
func (spec) Schemas() map[string]*openapi.Schema {
	record := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"row":         {Type: "integer", Description: "1-based row in the Library table"},
			"id":          {Type: "string", Example: "PR-1001"},
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"category":    {Type: "string"},
			"text":        {Type: "string"},
			"version":     {Type: "integer", Example: 1},
			"lastUpdated": {Type: "string", Format: "date-time"},
			"owner":       {Type: "string"},
		},
	}
	entry := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string"},
			"name":       {Type: "string"},
			"version":    {Type: "integer", Description: "Version the archived text belonged to"},
			"text":       {Type: "string"},
			"archivedAt": {Type: "string", Format: "date-time"},
			"editor":     {Type: "string"},
		},
	}

	return map[string]*openapi.Schema{
		"Record":       record,
		"HistoryEntry": entry,
		"RecordPage":   pageSchema("Record"),
		"HistoryPage":  pageSchema("HistoryEntry"),
		"Form": {
			Type:     "object",
			Required: []string{"name", "promptText"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"category":    {Type: "string"},
				"promptText":  {Type: "string"},
			},
		},
		"EditEvent": {
			Type:     "object",
			Required: []string{"table", "row", "column"},
			Properties: map[string]*openapi.Schema{
				"table":    {Type: "string", Example: LibraryTable},
				"row":      {Type: "integer"},
				"column":   {Type: "integer"},
				"newValue": {Description: "Value after the edit"},
				"oldValue": {Description: "Value before the edit; omitted when the cell was empty"},
			},
		},
		"EditResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"outcome": {
					Type: "string",
					Enum: []any{OutcomeIgnored, OutcomeNoPriorValue, OutcomeVersioned},
				},
				"id":      {Type: "string"},
				"version": {Type: "integer"},
			},
		},
	}
}

func pageSchema(item string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef(item)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}
