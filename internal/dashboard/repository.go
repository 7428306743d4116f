package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Stats is the admin dashboard snapshot. Revenue sums the current venue price
// over paid bookings; bookings whose venue was deleted contribute nothing.
type Stats struct {
	TotalCustomers int64           `json:"total_customers"`
	CustomersToday int64           `json:"customers_today"`
	RequestsToday  int64           `json:"requests_today"`
	Revenue        decimal.Decimal `json:"revenue"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

func (r *Repository) Collect(ctx context.Context) (Stats, error) {
	const q = `
SELECT
	(SELECT COUNT(*) FROM users WHERE role = 'customer'),
	(SELECT COUNT(*) FROM users WHERE role = 'customer' AND created_at::date = CURRENT_DATE),
	(SELECT COUNT(*) FROM bookings WHERE created_at::date = CURRENT_DATE),
	(SELECT COALESCE(SUM(v.price), 0)
	 FROM bookings b
	 JOIN venues v ON b.venue_id = v.id
	 WHERE b.status = 'paid')
`
	var s Stats
	if err := r.db.QueryRow(ctx, q).Scan(
		&s.TotalCustomers, &s.CustomersToday, &s.RequestsToday, &s.Revenue,
	); err != nil {
		return Stats{}, err
	}
	return s, nil
}
