package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eternavista/internal/audit"
	"eternavista/pkg/db"
)

var ErrNotFound = errors.New("booking not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) Insert(ctx context.Context, b *Booking) (*Booking, error) {
	const q = `
INSERT INTO bookings (user_id, customer_name, customer_email, destination_id, venue_id, booking_date, status)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
RETURNING id, created_at
`
	out := *b
	if err := r.db.QueryRow(ctx, q,
		b.UserID, b.CustomerName, b.CustomerEmail, b.DestinationID, b.VenueID, b.BookingDate, string(b.Status),
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	const q = `
SELECT id, user_id, customer_name, COALESCE(customer_email, ''), destination_id, venue_id, booking_date, status, created_at
FROM bookings
WHERE id = $1
`
	var b Booking
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.DestinationID, &b.VenueID, &b.BookingDate, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Listings use left joins so bookings survive catalog deletions; names of
// deleted destinations/venues come back empty.
const listQuery = `
SELECT b.id, b.user_id, b.customer_name, COALESCE(b.customer_email, ''), b.destination_id, b.venue_id,
       b.booking_date, b.status, b.created_at,
       COALESCE(d.name, ''), COALESCE(v.name, '')
FROM bookings b
LEFT JOIN destinations d ON b.destination_id = d.id
LEFT JOIN venues v ON b.venue_id = v.id
`

func (r *Repository) ListAll(ctx context.Context) ([]Booking, error) {
	rows, err := r.db.Query(ctx, listQuery+`ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Booking, error) {
	rows, err := r.db.Query(ctx, listQuery+`WHERE b.user_id = $1 ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// UpdateStatus overwrites the status and records the change in the audit log
// within one transaction.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status, actorID int64) (bool, error) {
	var updated bool
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, string(status), id)
		if err != nil {
			return err
		}
		updated = tag.RowsAffected() > 0
		if !updated {
			return nil
		}
		return audit.Insert(ctx, tx, actorID, audit.ActionStatusChange, audit.EntityBooking, id,
			map[string]string{"status": string(status)})
	})
	return updated, err
}

func (r *Repository) Delete(ctx context.Context, id int64, actorID int64) (bool, error) {
	var deleted bool
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		if !deleted {
			return nil
		}
		return audit.Insert(ctx, tx, actorID, audit.ActionDelete, audit.EntityBooking, id, nil)
	})
	return deleted, err
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.DestinationID, &b.VenueID,
			&b.BookingDate, &b.Status, &b.CreatedAt, &b.DestName, &b.VenueName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
