package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/sheet"
)

// System defines the public contract for prompt library operations.
// Every operation takes the store it was built with; the acting identity is
// passed explicitly on writes.
type System interface {
	Handler() *Handler

	Setup(ctx context.Context) error
	Create(ctx context.Context, identity string, form Form) (*Record, error)
	HandleEdit(ctx context.Context, identity string, event EditEvent) (*EditResult, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id string) (*Record, error)
	History(ctx context.Context, id string) ([]HistoryEntry, error)
}

type library struct {
	store      sheet.Store
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a library System over store. A nil clock uses time.Now.
func New(
	store sheet.Store,
	logger *slog.Logger,
	pagination pagination.Config,
	clock func() time.Time,
) System {
	if clock == nil {
		clock = time.Now
	}
	return &library{
		store:      store,
		logger:     logger.With("system", "library"),
		pagination: pagination,
		now:        clock,
	}
}

func (l *library) Handler() *Handler {
	return NewHandler(l, l.logger, l.pagination)
}

func (l *library) Setup(ctx context.Context) error {
	if err := EnsureSchema(ctx, l.store); err != nil {
		return err
	}
	l.logger.Info("schema ready")
	return nil
}
