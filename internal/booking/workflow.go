package booking

import (
	"context"
	"errors"
	"strings"

	"eternavista/internal/api"
	"eternavista/internal/catalog"
	"eternavista/internal/user"
)

// CatalogStore is the availability lookup the workflow needs.
// *catalog.Repository satisfies it.
type CatalogStore interface {
	GetDestination(ctx context.Context, id int64) (*catalog.Destination, error)
	GetVenue(ctx context.Context, id int64) (*catalog.Venue, error)
}

// Ledger is the booking persistence the workflow drives.
// *Repository satisfies it.
type Ledger interface {
	Insert(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status, actorID int64) (bool, error)
	Delete(ctx context.Context, id int64, actorID int64) (bool, error)
}

// Workflow is the booking state machine plus its creation-time availability
// gate. Transitions: pending -> accepted -> paid, pending/accepted ->
// rejected. Admin status writes are deliberately permissive beyond enum
// membership; only the customer pay path enforces its precondition.
type Workflow struct {
	catalog CatalogStore
	ledger  Ledger
}

func NewWorkflow(catalogStore CatalogStore, ledger Ledger) *Workflow {
	return &Workflow{catalog: catalogStore, ledger: ledger}
}

type CreateInput struct {
	DestinationID int64
	VenueID       int64
	BookingDate   string
	CustomerEmail string
}

// Create books a venue for the calling identity. The booking is attributed to
// the authenticated user, never to caller-supplied free text, so a customer
// cannot spoof another customer's name.
//
// The availability check and the insert are separate statements; two
// concurrent creates for the same venue and date can both pass the check.
// The flags are coarse (per venue, not per date), so that race is accepted.
func (s *Workflow) Create(ctx context.Context, identity *user.User, in CreateInput) (*Booking, error) {
	if identity == nil {
		return nil, api.Unauthenticated("authentication required")
	}
	if in.DestinationID <= 0 || in.VenueID <= 0 || strings.TrimSpace(in.BookingDate) == "" {
		return nil, api.Validation("destination_id, venue_id and booking_date are required")
	}

	dest, err := s.catalog.GetDestination(ctx, in.DestinationID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, api.Unavailable("Selected destination or venue is unavailable")
		}
		return nil, err
	}
	venue, err := s.catalog.GetVenue(ctx, in.VenueID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, api.Unavailable("Selected destination or venue is unavailable")
		}
		return nil, err
	}

	if !dest.Availability || !venue.Availability {
		return nil, api.Unavailable("Selected destination or venue is unavailable")
	}
	if venue.DestinationID != dest.ID {
		return nil, api.InvalidReference("venue does not belong to the given destination")
	}

	return s.ledger.Insert(ctx, &Booking{
		UserID:        identity.ID,
		CustomerName:  identity.Username,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		DestinationID: dest.ID,
		VenueID:       venue.ID,
		BookingDate:   in.BookingDate,
		Status:        StatusPending,
	})
}

// List returns all bookings for admins and only the caller's own otherwise.
func (s *Workflow) List(ctx context.Context, identity *user.User) ([]Booking, error) {
	if identity == nil {
		return nil, api.Unauthenticated("authentication required")
	}
	if identity.IsAdmin() {
		return s.ledger.ListAll(ctx)
	}
	return s.ledger.ListByUser(ctx, identity.ID)
}

func (s *Workflow) Summary(ctx context.Context, identity *user.User) (Summary, error) {
	bookings, err := s.List(ctx, identity)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(bookings), nil
}

// SetStatus is the admin-side transition. Anything in the enum is accepted
// from any current status; values outside the enum never reach the ledger.
func (s *Workflow) SetStatus(ctx context.Context, admin *user.User, id int64, status string) (Status, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return "", api.Validation("invalid status: must be one of pending, accepted, rejected, paid")
	}

	updated, err := s.ledger.UpdateStatus(ctx, id, parsed, admin.ID)
	if err != nil {
		return "", err
	}
	if !updated {
		return "", api.NotFound("Booking not found")
	}
	return parsed, nil
}

// Pay is the one customer-driven transition: the owning customer moves an
// accepted booking to paid. No real payment capture happens here.
func (s *Workflow) Pay(ctx context.Context, identity *user.User, id int64) error {
	if identity == nil {
		return api.Unauthenticated("authentication required")
	}

	b, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return api.NotFound("Booking not found")
		}
		return err
	}
	// Non-owners get the same answer as a missing row.
	if b.UserID != identity.ID {
		return api.NotFound("Booking not found")
	}
	if b.Status != StatusAccepted {
		return api.Validation("Can only pay for accepted bookings")
	}

	updated, err := s.ledger.UpdateStatus(ctx, id, StatusPaid, identity.ID)
	if err != nil {
		return err
	}
	if !updated {
		return api.NotFound("Booking not found")
	}
	return nil
}

func (s *Workflow) Delete(ctx context.Context, admin *user.User, id int64) error {
	deleted, err := s.ledger.Delete(ctx, id, admin.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return api.NotFound("Booking not found")
	}
	return nil
}
