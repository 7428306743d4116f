package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eternavista/internal/api"
)

type Handlers struct {
	Bookings *Workflow
}

type createRequest struct {
	DestinationID int64  `json:"destination_id"`
	VenueID       int64  `json:"venue_id"`
	BookingDate   string `json:"booking_date"`
	CustomerEmail string `json:"customer_email"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	identity := api.IdentityFromContext(r.Context())

	var req createRequest
	if api.WantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, api.Validation("invalid json"))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			api.WriteError(w, api.Validation("invalid form"))
			return
		}
		req.DestinationID, _ = strconv.ParseInt(r.PostFormValue("destination_id"), 10, 64)
		req.VenueID, _ = strconv.ParseInt(r.PostFormValue("venue_id"), 10, 64)
		req.BookingDate = r.PostFormValue("booking_date")
		req.CustomerEmail = r.PostFormValue("customer_email")
	}

	b, err := h.Bookings.Create(r.Context(), identity, CreateInput{
		DestinationID: req.DestinationID,
		VenueID:       req.VenueID,
		BookingDate:   req.BookingDate,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		if api.WantsJSON(r) {
			api.WriteError(w, err)
			return
		}
		api.RedirectWithFlash(w, r, "/", err.Error())
		return
	}

	if api.WantsJSON(r) {
		api.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Booking request sent",
			"id":      b.ID,
			"status":  b.Status,
		})
		return
	}
	api.RedirectWithFlash(w, r, "/dashboard", "Booking request sent")
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.List(r.Context(), api.IdentityFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, bookings)
}

func (h Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Bookings.Summary(r.Context(), api.IdentityFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, summary)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid json"))
		return
	}

	admin := api.IdentityFromContext(r.Context())
	if _, err := h.Bookings.SetStatus(r.Context(), admin, id, req.Status); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Booking updated"})
}

func (h Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	identity := api.IdentityFromContext(r.Context())
	if err := h.Bookings.Pay(r.Context(), identity, id); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Payment successful!"})
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	admin := api.IdentityFromContext(r.Context())
	if err := h.Bookings.Delete(r.Context(), admin, id); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, api.Validation("invalid booking id")
	}
	return id, nil
}
