package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eternavista/internal/api"
	"eternavista/internal/catalog"
	"eternavista/internal/user"
)

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) GetDestination(ctx context.Context, id int64) (*catalog.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Destination), args.Error(1)
}

func (m *MockCatalogStore) GetVenue(ctx context.Context, id int64) (*catalog.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Venue), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Insert(ctx context.Context, b *Booking) (*Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockLedger) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockLedger) ListAll(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockLedger) ListByUser(ctx context.Context, userID int64) ([]Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockLedger) UpdateStatus(ctx context.Context, id int64, status Status, actorID int64) (bool, error) {
	args := m.Called(ctx, id, status, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Delete(ctx context.Context, id int64, actorID int64) (bool, error) {
	args := m.Called(ctx, id, actorID)
	return args.Bool(0), args.Error(1)
}

func destination(id int64, available bool) *catalog.Destination {
	return &catalog.Destination{ID: id, Name: "Bali", Description: "Tropical", Availability: available}
}

func venue(id, destID int64, available bool) *catalog.Venue {
	return &catalog.Venue{
		ID: id, DestinationID: destID, Name: "Beach Resort",
		Capacity: 50, Price: decimal.NewFromInt(1000), Availability: available,
	}
}

func customer(id int64, name string) *user.User {
	return &user.User{ID: id, Username: name, Role: user.RoleCustomer}
}

func admin() *user.User {
	return &user.User{ID: 1, Username: "admin", Role: user.RoleAdmin}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	assert.Equal(t, code, apiErr.Code)
}

func TestCreate_AvailabilityGating(t *testing.T) {
	cases := []struct {
		name          string
		destAvailable bool
		venueAvailable bool
	}{
		{"destination unavailable", false, true},
		{"venue unavailable", true, false},
		{"both unavailable", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			catalogStore := &MockCatalogStore{}
			ledger := &MockLedger{}
			wf := NewWorkflow(catalogStore, ledger)

			catalogStore.On("GetDestination", mock.Anything, int64(1)).Return(destination(1, tc.destAvailable), nil)
			catalogStore.On("GetVenue", mock.Anything, int64(2)).Return(venue(2, 1, tc.venueAvailable), nil)

			_, err := wf.Create(context.Background(), customer(5, "alice"), CreateInput{
				DestinationID: 1, VenueID: 2, BookingDate: "2024-12-25",
			})

			assertCode(t, err, api.CodeUnavailable)
			ledger.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_MissingCatalogRows(t *testing.T) {
	catalogStore := &MockCatalogStore{}
	ledger := &MockLedger{}
	wf := NewWorkflow(catalogStore, ledger)

	catalogStore.On("GetDestination", mock.Anything, int64(9)).Return(nil, catalog.ErrNotFound)

	_, err := wf.Create(context.Background(), customer(5, "alice"), CreateInput{
		DestinationID: 9, VenueID: 2, BookingDate: "2024-12-25",
	})
	assertCode(t, err, api.CodeUnavailable)

	catalogStore.On("GetDestination", mock.Anything, int64(1)).Return(destination(1, true), nil)
	catalogStore.On("GetVenue", mock.Anything, int64(9)).Return(nil, catalog.ErrNotFound)

	_, err = wf.Create(context.Background(), customer(5, "alice"), CreateInput{
		DestinationID: 1, VenueID: 9, BookingDate: "2024-12-25",
	})
	assertCode(t, err, api.CodeUnavailable)
}

func TestCreate_VenueMustBelongToDestination(t *testing.T) {
	catalogStore := &MockCatalogStore{}
	ledger := &MockLedger{}
	wf := NewWorkflow(catalogStore, ledger)

	catalogStore.On("GetDestination", mock.Anything, int64(1)).Return(destination(1, true), nil)
	catalogStore.On("GetVenue", mock.Anything, int64(2)).Return(venue(2, 7, true), nil)

	_, err := wf.Create(context.Background(), customer(5, "alice"), CreateInput{
		DestinationID: 1, VenueID: 2, BookingDate: "2024-12-25",
	})
	assertCode(t, err, api.CodeInvalidReference)
}

func TestCreate_SuccessIsPendingAndAttributedToIdentity(t *testing.T) {
	catalogStore := &MockCatalogStore{}
	ledger := &MockLedger{}
	wf := NewWorkflow(catalogStore, ledger)

	catalogStore.On("GetDestination", mock.Anything, int64(1)).Return(destination(1, true), nil)
	catalogStore.On("GetVenue", mock.Anything, int64(2)).Return(venue(2, 1, true), nil)

	var inserted *Booking
	ledger.On("Insert", mock.Anything, mock.AnythingOfType("*booking.Booking")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*Booking) }).
		Return(&Booking{ID: 77, Status: StatusPending}, nil)

	got, err := wf.Create(context.Background(), customer(5, "alice"), CreateInput{
		DestinationID: 1, VenueID: 2, BookingDate: "2024-12-25", CustomerEmail: "alice@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), got.ID)
	assert.Equal(t, StatusPending, inserted.Status)
	assert.Equal(t, int64(5), inserted.UserID)
	assert.Equal(t, "alice", inserted.CustomerName, "attribution must come from the identity")
	assert.Equal(t, "alice@example.com", inserted.CustomerEmail)
	assert.Equal(t, "2024-12-25", inserted.BookingDate)
}

func TestCreate_ValidationAndAuth(t *testing.T) {
	wf := NewWorkflow(&MockCatalogStore{}, &MockLedger{})

	_, err := wf.Create(context.Background(), nil, CreateInput{DestinationID: 1, VenueID: 2, BookingDate: "2024-12-25"})
	assertCode(t, err, api.CodeUnauthenticated)

	_, err = wf.Create(context.Background(), customer(5, "alice"), CreateInput{VenueID: 2, BookingDate: "2024-12-25"})
	assertCode(t, err, api.CodeValidation)

	_, err = wf.Create(context.Background(), customer(5, "alice"), CreateInput{DestinationID: 1, VenueID: 2})
	assertCode(t, err, api.CodeValidation)
}

func TestList_ScopedByRole(t *testing.T) {
	ledger := &MockLedger{}
	wf := NewWorkflow(&MockCatalogStore{}, ledger)

	aliceBooking := Booking{ID: 1, UserID: 5, CustomerName: "alice"}
	bobBooking := Booking{ID: 2, UserID: 6, CustomerName: "bob"}

	ledger.On("ListByUser", mock.Anything, int64(5)).Return([]Booking{aliceBooking}, nil)
	ledger.On("ListByUser", mock.Anything, int64(6)).Return([]Booking{bobBooking}, nil)
	ledger.On("ListAll", mock.Anything).Return([]Booking{aliceBooking, bobBooking}, nil)

	got, err := wf.List(context.Background(), customer(5, "alice"))
	assert.NoError(t, err)
	assert.Equal(t, []Booking{aliceBooking}, got)

	got, err = wf.List(context.Background(), customer(6, "bob"))
	assert.NoError(t, err)
	assert.Equal(t, []Booking{bobBooking}, got)

	got, err = wf.List(context.Background(), admin())
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSetStatus_EnumClosure(t *testing.T) {
	ledger := &MockLedger{}
	wf := NewWorkflow(&MockCatalogStore{}, ledger)

	for _, bad := range []string{"", "cancelled", "Pending", "PAID"} {
		_, err := wf.SetStatus(context.Background(), admin(), 1, bad)
		assertCode(t, err, api.CodeValidation)
	}
	ledger.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	for _, good := range []string{"pending", "accepted", "rejected", "paid"} {
		ledger.On("UpdateStatus", mock.Anything, int64(1), Status(good), int64(1)).Return(true, nil).Twice()

		got, err := wf.SetStatus(context.Background(), admin(), 1, good)
		assert.NoError(t, err)
		assert.Equal(t, Status(good), got)

		// Idempotent: applying the same status again succeeds identically.
		again, err := wf.SetStatus(context.Background(), admin(), 1, good)
		assert.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	ledger := &MockLedger{}
	wf := NewWorkflow(&MockCatalogStore{}, ledger)

	ledger.On("UpdateStatus", mock.Anything, int64(404), StatusAccepted, int64(1)).Return(false, nil)

	_, err := wf.SetStatus(context.Background(), admin(), 404, "accepted")
	assertCode(t, err, api.CodeNotFound)
}

func TestPay_OnlyOwnerAndOnlyAccepted(t *testing.T) {
	ledger := &MockLedger{}
	wf := NewWorkflow(&MockCatalogStore{}, ledger)

	accepted := &Booking{ID: 1, UserID: 5, Status: StatusAccepted}
	pending := &Booking{ID: 2, UserID: 5, Status: StatusPending}

	ledger.On("GetByID", mock.Anything, int64(1)).Return(accepted, nil)
	ledger.On("GetByID", mock.Anything, int64(2)).Return(pending, nil)
	ledger.On("GetByID", mock.Anything, int64(404)).Return(nil, ErrNotFound)
	ledger.On("UpdateStatus", mock.Anything, int64(1), StatusPaid, int64(5)).Return(true, nil)

	// Wrong owner looks like a missing booking.
	err := wf.Pay(context.Background(), customer(6, "bob"), 1)
	assertCode(t, err, api.CodeNotFound)

	// Pending bookings cannot be paid.
	err = wf.Pay(context.Background(), customer(5, "alice"), 2)
	assertCode(t, err, api.CodeValidation)

	err = wf.Pay(context.Background(), customer(5, "alice"), 404)
	assertCode(t, err, api.CodeNotFound)

	// Owner paying an accepted booking succeeds.
	err = wf.Pay(context.Background(), customer(5, "alice"), 1)
	assert.NoError(t, err)
	ledger.AssertExpectations(t)
}
