// Package library implements the prompt library domain on top of a row store.
// It owns the Library and History table layouts, record creation with
// sequential PR-n identifiers, and the edit-triggered versioning handler that
// archives prior prompt text before bumping a record's version.
package library

import "time"

// Table names.
const (
	LibraryTable = "Library"
	HistoryTable = "History"
)

// Library columns, 1-indexed.
const (
	ColID = iota + 1
	ColName
	ColDescription
	ColCategory
	ColText
	ColVersion
	ColLastUpdated
	ColOwner
)

// LibraryWidth is the number of columns in a Library row.
const LibraryWidth = ColOwner

// History columns, 1-indexed.
const (
	HistColID = iota + 1
	HistColName
	HistColVersion
	HistColText
	HistColArchivedAt
	HistColEditor
)

// Header rows written by the schema initializer.
var (
	LibraryHeader = []string{"id", "name", "description", "category", "text", "version", "lastUpdated", "owner"}
	HistoryHeader = []string{"id", "name", "version", "text", "archivedAt", "editor"}
)

// Record is one prompt in the Library table.
type Record struct {
	Row         int       `json:"row"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Text        string    `json:"text"`
	Version     int64     `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
	Owner       string    `json:"owner"`
}

// HistoryEntry is one archived prior version of a prompt's text.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Version    int64     `json:"version"`
	Text       string    `json:"text"`
	ArchivedAt time.Time `json:"archivedAt"`
	Editor     string    `json:"editor"`
}

// Form carries the fields of a prompt submission.
type Form struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PromptText  string `json:"promptText"`
}

// EditEvent describes a single cell edit in the row store. OldValue is nil
// when the cell was previously empty.
type EditEvent struct {
	Table    string `json:"table"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	NewValue any    `json:"newValue"`
	OldValue any    `json:"oldValue,omitempty"`
}

// Outcome reports what the versioning handler did with an edit.
type Outcome string

const (
	// OutcomeIgnored means the edit was not a text edit on a Library data row.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeNoPriorValue means the text cell was empty before the edit.
	OutcomeNoPriorValue Outcome = "no_prior_value"
	// OutcomeVersioned means the prior text was archived and the version bumped.
	OutcomeVersioned Outcome = "versioned"
)

// EditResult is the result of handling an edit event.
type EditResult struct {
	Outcome Outcome `json:"outcome"`
	ID      string  `json:"id,omitempty"`
	Version int64   `json:"version,omitempty"`
}
