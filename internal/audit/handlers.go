package audit

import (
	"context"
	"net/http"
	"strconv"

	"eternavista/internal/api"
)

type Source interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}

type Handlers struct {
	Log Source
}

// List returns the most recent audit entries, newest first. ?limit= caps the
// page size; it defaults to 100.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Log.List(r.Context(), limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	api.WriteJSON(w, http.StatusOK, entries)
}
