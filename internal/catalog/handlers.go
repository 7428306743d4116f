package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"eternavista/internal/api"
	"eternavista/internal/audit"
	"eternavista/pkg/db"
)

// Store is what the catalog handlers need from persistence.
// *Repository satisfies it.
type Store interface {
	ListDestinations(ctx context.Context) ([]Destination, error)
	GetDestination(ctx context.Context, id int64) (*Destination, error)
	CreateDestination(ctx context.Context, in DestinationInput) (*Destination, error)
	UpdateDestination(ctx context.Context, id int64, in DestinationInput) (bool, error)
	DeleteDestination(ctx context.Context, id int64) error
	ListVenues(ctx context.Context, destinationID int64) ([]Venue, error)
	GetVenue(ctx context.Context, id int64) (*Venue, error)
	CreateVenue(ctx context.Context, in VenueInput) (*Venue, error)
	UpdateVenue(ctx context.Context, id int64, in VenueInput) (bool, error)
	DeleteVenue(ctx context.Context, id int64) error
}

type Handlers struct {
	Catalog Store
	Audit   audit.Recorder
}

func (h Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := h.Catalog.ListDestinations(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if dests == nil {
		dests = []Destination{}
	}
	api.WriteJSON(w, http.StatusOK, dests)
}

func (h Handlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var in DestinationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, api.Validation("invalid json"))
		return
	}
	if err := validateDestination(in); err != nil {
		api.WriteError(w, err)
		return
	}

	d, err := h.Catalog.CreateDestination(r.Context(), in)
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("destination name already exists"))
			return
		}
		api.WriteError(w, err)
		return
	}

	h.record(r, audit.ActionCreate, audit.EntityDestination, d.ID, map[string]string{"name": d.Name})
	api.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Destination created", "id": d.ID})
}

func (h Handlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var in DestinationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, api.Validation("invalid json"))
		return
	}
	if err := validateDestination(in); err != nil {
		api.WriteError(w, err)
		return
	}

	updated, err := h.Catalog.UpdateDestination(r.Context(), id, in)
	if err != nil {
		if db.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("destination name already exists"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if !updated {
		api.WriteError(w, api.NotFound("Destination not found"))
		return
	}

	h.record(r, audit.ActionUpdate, audit.EntityDestination, id, map[string]string{"name": in.Name})
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Destination updated"})
}

func (h Handlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if err := h.Catalog.DeleteDestination(r.Context(), id); err != nil {
		api.WriteError(w, err)
		return
	}

	h.record(r, audit.ActionDelete, audit.EntityDestination, id, nil)
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func (h Handlers) ListVenues(w http.ResponseWriter, r *http.Request) {
	var destinationID int64
	if raw := r.URL.Query().Get("destination_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.WriteError(w, api.Validation("invalid destination_id"))
			return
		}
		destinationID = id
	}

	venues, err := h.Catalog.ListVenues(r.Context(), destinationID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if venues == nil {
		venues = []Venue{}
	}
	api.WriteJSON(w, http.StatusOK, venues)
}

func (h Handlers) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var in VenueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, api.Validation("invalid json"))
		return
	}
	if err := h.validateVenue(r.Context(), in); err != nil {
		api.WriteError(w, err)
		return
	}

	v, err := h.Catalog.CreateVenue(r.Context(), in)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	h.record(r, audit.ActionCreate, audit.EntityVenue, v.ID, map[string]string{"name": v.Name})
	api.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Venue created", "id": v.ID})
}

func (h Handlers) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var in VenueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, api.Validation("invalid json"))
		return
	}
	if err := h.validateVenue(r.Context(), in); err != nil {
		api.WriteError(w, err)
		return
	}

	updated, err := h.Catalog.UpdateVenue(r.Context(), id, in)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if !updated {
		api.WriteError(w, api.NotFound("Venue not found"))
		return
	}

	h.record(r, audit.ActionUpdate, audit.EntityVenue, id, map[string]string{"name": in.Name})
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Venue updated"})
}

func (h Handlers) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if err := h.Catalog.DeleteVenue(r.Context(), id); err != nil {
		api.WriteError(w, err)
		return
	}

	h.record(r, audit.ActionDelete, audit.EntityVenue, id, nil)
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func validateDestination(in DestinationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return api.Validation("Missing name or description")
	}
	if strings.TrimSpace(in.Description) == "" {
		return api.Validation("Missing name or description")
	}
	return nil
}

func (h Handlers) validateVenue(ctx context.Context, in VenueInput) error {
	if in.DestinationID <= 0 || strings.TrimSpace(in.Name) == "" || in.Capacity <= 0 || in.Price.Sign() <= 0 {
		return api.Validation("Missing required venue fields")
	}
	if _, err := h.Catalog.GetDestination(ctx, in.DestinationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.InvalidReference("destination does not exist")
		}
		return err
	}
	return nil
}

func (h Handlers) record(r *http.Request, action, entity string, id int64, metadata any) {
	if h.Audit == nil {
		return
	}
	if u := api.IdentityFromContext(r.Context()); u != nil {
		if err := h.Audit.Record(r.Context(), u.ID, action, entity, id, metadata); err != nil {
			log.Printf("audit record %s %s %d: %v", action, entity, id, err)
		}
	}
}

func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.Validation("invalid id")
	}
	return id, nil
}
