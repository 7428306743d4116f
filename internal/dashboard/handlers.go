package dashboard

import (
	"context"
	"net/http"

	"eternavista/internal/api"
)

type StatsSource interface {
	Collect(ctx context.Context) (Stats, error)
}

type Handlers struct {
	Stats StatsSource
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Collect(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, stats)
}
