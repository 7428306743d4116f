package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListDestinations(ctx context.Context) ([]Destination, error) {
	const q = `
SELECT id, name, description, COALESCE(image_url, ''), availability
FROM destinations
ORDER BY id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.Availability); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) GetDestination(ctx context.Context, id int64) (*Destination, error) {
	const q = `
SELECT id, name, description, COALESCE(image_url, ''), availability
FROM destinations
WHERE id = $1
`
	var d Destination
	if err := r.db.QueryRow(ctx, q, id).Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.Availability); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) CreateDestination(ctx context.Context, in DestinationInput) (*Destination, error) {
	const q = `
INSERT INTO destinations (name, description, image_url, availability)
VALUES ($1, $2, NULLIF($3, ''), true)
RETURNING id, name, description, COALESCE(image_url, ''), availability
`
	var d Destination
	if err := r.db.QueryRow(ctx, q, in.Name, in.Description, in.ImageURL).Scan(
		&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.Availability,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) UpdateDestination(ctx context.Context, id int64, in DestinationInput) (bool, error) {
	const q = `
UPDATE destinations
SET name = $1, description = $2, image_url = NULLIF($3, ''),
    availability = COALESCE($4, availability)
WHERE id = $5
`
	tag, err := r.db.Exec(ctx, q, in.Name, in.Description, in.ImageURL, in.Availability, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteDestination does not cascade: venues and bookings that reference the
// row are left orphaned, a deliberate simplicity tradeoff.
func (r *Repository) DeleteDestination(ctx context.Context, id int64) error {
	const q = `DELETE FROM destinations WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

// ListVenues returns venues under destinationID, or all venues joined with
// their destination's name when destinationID is zero. Order is stable by id.
func (r *Repository) ListVenues(ctx context.Context, destinationID int64) ([]Venue, error) {
	if destinationID > 0 {
		const q = `
SELECT id, destination_id, name, capacity, price, availability
FROM venues
WHERE destination_id = $1
ORDER BY id
`
		rows, err := r.db.Query(ctx, q, destinationID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []Venue
		for rows.Next() {
			var v Venue
			if err := rows.Scan(&v.ID, &v.DestinationID, &v.Name, &v.Capacity, &v.Price, &v.Availability); err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, rows.Err()
	}

	const q = `
SELECT v.id, v.destination_id, v.name, v.capacity, v.price, v.availability, d.name
FROM venues v
JOIN destinations d ON v.destination_id = d.id
ORDER BY v.id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.DestinationID, &v.Name, &v.Capacity, &v.Price, &v.Availability, &v.DestinationName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repository) GetVenue(ctx context.Context, id int64) (*Venue, error) {
	const q = `
SELECT id, destination_id, name, capacity, price, availability
FROM venues
WHERE id = $1
`
	var v Venue
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.DestinationID, &v.Name, &v.Capacity, &v.Price, &v.Availability,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repository) CreateVenue(ctx context.Context, in VenueInput) (*Venue, error) {
	const q = `
INSERT INTO venues (destination_id, name, capacity, price, availability)
VALUES ($1, $2, $3, $4, true)
RETURNING id, destination_id, name, capacity, price, availability
`
	var v Venue
	if err := r.db.QueryRow(ctx, q, in.DestinationID, in.Name, in.Capacity, in.Price).Scan(
		&v.ID, &v.DestinationID, &v.Name, &v.Capacity, &v.Price, &v.Availability,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) UpdateVenue(ctx context.Context, id int64, in VenueInput) (bool, error) {
	const q = `
UPDATE venues
SET destination_id = $1, name = $2, capacity = $3, price = $4,
    availability = COALESCE($5, availability)
WHERE id = $6
`
	tag, err := r.db.Exec(ctx, q, in.DestinationID, in.Name, in.Capacity, in.Price, in.Availability, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) DeleteVenue(ctx context.Context, id int64) error {
	const q = `DELETE FROM venues WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}
