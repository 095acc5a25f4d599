package host

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/handlers"
	"github.com/JaimeStill/folio/pkg/identity"
	"github.com/JaimeStill/folio/pkg/routes"
)

// Handler provides HTTP endpoints for host writes and raw table reads.
type Handler struct {
	sys        System
	identities identity.Provider
	logger     *slog.Logger
}

// CellValue is the request body for a cell edit.
type CellValue struct {
	Value any `json:"value"`
}

// EditResponse lists the result of every edit handler that ran.
type EditResponse struct {
	Results []library.EditResult `json:"results"`
}

// NewHandler creates a Handler that resolves the acting identity through identities.
func NewHandler(sys System, identities identity.Provider, logger *slog.Logger) *Handler {
	return &Handler{
		sys:        sys,
		identities: identities,
		logger:     logger.With("handler", "host"),
	}
}

// Routes returns the route group definition for host endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/library/setup", Handler: h.Setup, OpenAPI: Spec.Setup},
			{Method: "POST", Pattern: "/library", Handler: h.Submit, OpenAPI: Spec.Submit},
			{Method: "POST", Pattern: "/events/edit", Handler: h.Dispatch, OpenAPI: Spec.Dispatch},
		},
		Children: []routes.Group{
			{
				Prefix: "/tables",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Tables, OpenAPI: Spec.Tables},
					{Method: "GET", Pattern: "/{table}/rows", Handler: h.Rows, OpenAPI: Spec.Rows},
					{Method: "PUT", Pattern: "/{table}/rows/{row}/columns/{column}", Handler: h.EditCell, OpenAPI: Spec.EditCell},
				},
			},
		},
	}
}

// Setup creates the Library and History tables if they are missing.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Setup(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Submit creates a prompt from a form submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	editor, err := h.identities.Current(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var form library.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	rec, err := h.sys.Submit(r.Context(), editor, form)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rec)
}

// EditCell writes a single cell and runs the edit handlers.
func (h *Handler) EditCell(w http.ResponseWriter, r *http.Request) {
	editor, err := h.identities.Current(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	row, err := pathInt(r, "row")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	col, err := pathInt(r, "column")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var body CellValue
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	results, err := h.sys.EditCell(r.Context(), editor, r.PathValue("table"), row, col, body.Value)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EditResponse{Results: results})
}

// Dispatch runs the edit handlers for an edit applied elsewhere.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	editor, err := h.identities.Current(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var event library.EditEvent
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&event); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	results, err := h.sys.Dispatch(r.Context(), editor, event)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EditResponse{Results: results})
}

// Tables lists table names in creation order.
func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.sys.Tables(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tables)
}

// Rows returns every row of a table, header included.
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sys.Rows(r.Context(), r.PathValue("table"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rows)
}

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidRequest, name)
	}
	return n, nil
}
