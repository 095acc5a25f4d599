package library

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/JaimeStill/folio/pkg/sheet"
)

// FirstID is assigned to the first record and whenever the last id is unreadable.
const FirstID = "PR-1001"

var idPattern = regexp.MustCompile(`PR-(\d+)`)

// NextID derives the id that follows last. Values that do not contain a
// PR-<digits> sequence, or whose number overflows, restart at FirstID.
func NextID(last any) string {
	m := idPattern.FindStringSubmatch(sheet.Text(last))
	if m == nil {
		return FirstID
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n == math.MaxInt64 {
		return FirstID
	}
	return fmt.Sprintf("PR-%d", n+1)
}

func (l *library) Create(ctx context.Context, identity string, form Form) (*Record, error) {
	if err := EnsureSchema(ctx, l.store); err != nil {
		return nil, err
	}

	last, err := l.store.LastRow(ctx, LibraryTable)
	if err != nil {
		return nil, fmt.Errorf("read last row: %w", err)
	}

	id := FirstID
	if last > sheet.HeaderRow {
		prev, err := l.store.Cell(ctx, LibraryTable, last, ColID)
		if err != nil {
			return nil, fmt.Errorf("read last id: %w", err)
		}
		id = NextID(prev)
	}

	now := l.now().UTC()
	rec := Record{
		Row:         last + 1,
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Text:        form.PromptText,
		Version:     1,
		LastUpdated: now,
		Owner:       identity,
	}

	row := []any{
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Category,
		rec.Text,
		rec.Version,
		rec.LastUpdated,
		rec.Owner,
	}
	if err := l.store.AppendRow(ctx, LibraryTable, row); err != nil {
		return nil, fmt.Errorf("append prompt: %w", err)
	}

	l.logger.Info("prompt created", "id", rec.ID, "name", rec.Name, "owner", identity)
	return &rec, nil
}
