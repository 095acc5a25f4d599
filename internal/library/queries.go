package library

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/sheet"
)

// Filters contains optional filtering criteria for prompt listings.
// Nil fields are ignored. Category and Owner use case-insensitive exact matching.
type Filters struct {
	Category *string `json:"category,omitempty"`
	Owner    *string `json:"owner,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}

	return f
}

func (f Filters) match(r Record) bool {
	if f.Category != nil && !strings.EqualFold(r.Category, *f.Category) {
		return false
	}
	if f.Owner != nil && !strings.EqualFold(r.Owner, *f.Owner) {
		return false
	}
	return true
}

func matchSearch(r Record, search *string) bool {
	if search == nil {
		return true
	}
	term := strings.ToLower(*search)
	for _, field := range []string{r.ID, r.Name, r.Description, r.Category} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (l *library) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(l.pagination)

	records, err := l.records(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Record, 0, len(records))
	for _, r := range records {
		if filters.match(r) && matchSearch(r, page.Search) {
			matched = append(matched, r)
		}
	}

	result := pagination.Slice(matched, page)
	return &result, nil
}

func (l *library) Find(ctx context.Context, id string) (*Record, error) {
	records, err := l.records(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// History returns archived versions oldest first. An empty id returns every entry.
func (l *library) History(ctx context.Context, id string) ([]HistoryEntry, error) {
	rows, err := l.dataRows(ctx, HistoryTable)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		e := scanHistory(row)
		if id == "" || e.ID == id {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (l *library) records(ctx context.Context) ([]Record, error) {
	rows, err := l.dataRows(ctx, LibraryTable)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = scanRecord(sheet.HeaderRow+1+i, row)
	}
	return records, nil
}

// dataRows returns every row below the header. A missing table reads as empty.
func (l *library) dataRows(ctx context.Context, table string) ([][]any, error) {
	exists, err := l.store.HasTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("check table %s: %w", table, err)
	}
	if !exists {
		return nil, nil
	}

	rows, err := l.store.Rows(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(rows) <= sheet.HeaderRow {
		return nil, nil
	}
	return rows[sheet.HeaderRow:], nil
}

func scanRecord(row int, values []any) Record {
	values = sheet.Pad(values, LibraryWidth)
	version, _ := sheet.Int(values[ColVersion-1])
	updated, _ := sheet.Time(values[ColLastUpdated-1])

	return Record{
		Row:         row,
		ID:          sheet.Text(values[ColID-1]),
		Name:        sheet.Text(values[ColName-1]),
		Description: sheet.Text(values[ColDescription-1]),
		Category:    sheet.Text(values[ColCategory-1]),
		Text:        sheet.Text(values[ColText-1]),
		Version:     version,
		LastUpdated: updated,
		Owner:       sheet.Text(values[ColOwner-1]),
	}
}

func scanHistory(values []any) HistoryEntry {
	values = sheet.Pad(values, HistColEditor)
	version, _ := sheet.Int(values[HistColVersion-1])
	archived, _ := sheet.Time(values[HistColArchivedAt-1])

	return HistoryEntry{
		ID:         sheet.Text(values[HistColID-1]),
		Name:       sheet.Text(values[HistColName-1]),
		Version:    version,
		Text:       sheet.Text(values[HistColText-1]),
		ArchivedAt: archived,
		Editor:     sheet.Text(values[HistColEditor-1]),
	}
}
