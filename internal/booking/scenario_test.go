package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"eternavista/internal/catalog"
)

// In-memory fakes for end-to-end shaped scenarios that walk a booking through
// its whole lifecycle.

type memCatalog struct {
	destinations map[int64]*catalog.Destination
	venues       map[int64]*catalog.Venue
}

func (m *memCatalog) GetDestination(_ context.Context, id int64) (*catalog.Destination, error) {
	d, ok := m.destinations[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return d, nil
}

func (m *memCatalog) GetVenue(_ context.Context, id int64) (*catalog.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return v, nil
}

type memLedger struct {
	nextID   int64
	bookings []Booking
}

func (m *memLedger) Insert(_ context.Context, b *Booking) (*Booking, error) {
	m.nextID++
	out := *b
	out.ID = m.nextID
	out.CreatedAt = time.Now()
	m.bookings = append(m.bookings, out)
	return &out, nil
}

func (m *memLedger) GetByID(_ context.Context, id int64) (*Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memLedger) ListAll(_ context.Context) ([]Booking, error) {
	return append([]Booking(nil), m.bookings...), nil
}

func (m *memLedger) ListByUser(_ context.Context, userID int64) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memLedger) UpdateStatus(_ context.Context, id int64, status Status, _ int64) (bool, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) Delete(_ context.Context, id int64, _ int64) (bool, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestScenario_BookAcceptPay(t *testing.T) {
	ctx := context.Background()
	cat := &memCatalog{
		destinations: map[int64]*catalog.Destination{
			1: {ID: 1, Name: "Bali", Description: "Tropical", Availability: true},
		},
		venues: map[int64]*catalog.Venue{
			1: {ID: 1, DestinationID: 1, Name: "Beach Resort", Capacity: 50, Price: decimal.NewFromInt(1000), Availability: true},
		},
	}
	ledger := &memLedger{}
	wf := NewWorkflow(cat, ledger)

	root := admin()
	alice := customer(5, "alice")

	// Customer books the venue.
	created, err := wf.Create(ctx, alice, CreateInput{DestinationID: 1, VenueID: 1, BookingDate: "2024-12-25"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("new booking should be pending, got %s", created.Status)
	}

	// Admin sees it pending.
	all, err := wf.List(ctx, root)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 1 || all[0].Status != StatusPending {
		t.Fatalf("expected one pending booking, got %+v", all)
	}

	// Admin accepts.
	if _, err := wf.SetStatus(ctx, root, created.ID, "accepted"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	all, _ = wf.List(ctx, root)
	if all[0].Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", all[0].Status)
	}

	// Customer pays.
	if err := wf.Pay(ctx, alice, created.ID); err != nil {
		t.Fatalf("pay: %v", err)
	}
	mine, _ := wf.List(ctx, alice)
	if len(mine) != 1 || mine[0].Status != StatusPaid {
		t.Fatalf("expected paid booking for alice, got %+v", mine)
	}

	summary, err := wf.Summary(ctx, root)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Total != 1 || summary.Paid != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestScenario_UnavailableDestinationBlocksBooking(t *testing.T) {
	ctx := context.Background()
	cat := &memCatalog{
		destinations: map[int64]*catalog.Destination{
			1: {ID: 1, Name: "Bali", Description: "Tropical", Availability: false},
		},
		venues: map[int64]*catalog.Venue{
			1: {ID: 1, DestinationID: 1, Name: "Beach Resort", Capacity: 50, Price: decimal.NewFromInt(1000), Availability: true},
		},
	}
	ledger := &memLedger{}
	wf := NewWorkflow(cat, ledger)

	_, err := wf.Create(ctx, customer(5, "alice"), CreateInput{DestinationID: 1, VenueID: 1, BookingDate: "2024-12-25"})
	if err == nil {
		t.Fatalf("expected unavailable error")
	}
	if len(ledger.bookings) != 0 {
		t.Fatalf("booking table must be unchanged, got %d rows", len(ledger.bookings))
	}
}

func TestScenario_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	cat := &memCatalog{
		destinations: map[int64]*catalog.Destination{
			1: {ID: 1, Name: "Bali", Description: "Tropical", Availability: true},
		},
		venues: map[int64]*catalog.Venue{
			1: {ID: 1, DestinationID: 1, Name: "Beach Resort", Capacity: 50, Price: decimal.NewFromInt(1000), Availability: true},
		},
	}
	wf := NewWorkflow(cat, &memLedger{})

	alice := customer(5, "alice")
	bob := customer(6, "bob")

	if _, err := wf.Create(ctx, alice, CreateInput{DestinationID: 1, VenueID: 1, BookingDate: "2025-01-01"}); err != nil {
		t.Fatalf("alice create: %v", err)
	}
	if _, err := wf.Create(ctx, bob, CreateInput{DestinationID: 1, VenueID: 1, BookingDate: "2025-01-02"}); err != nil {
		t.Fatalf("bob create: %v", err)
	}

	mine, err := wf.List(ctx, alice)
	if err != nil {
		t.Fatalf("alice list: %v", err)
	}
	if len(mine) != 1 || mine[0].CustomerName != "alice" {
		t.Fatalf("alice must see exactly her booking, got %+v", mine)
	}

	theirs, _ := wf.List(ctx, bob)
	if len(theirs) != 1 || theirs[0].CustomerName != "bob" {
		t.Fatalf("bob must see exactly his booking, got %+v", theirs)
	}

	all, _ := wf.List(ctx, admin())
	if len(all) != 2 {
		t.Fatalf("admin must see both bookings, got %d", len(all))
	}
}
