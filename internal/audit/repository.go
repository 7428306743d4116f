package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	ID        int64           `json:"id"`
	ActorID   int64           `json:"actorId"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  int64           `json:"entityId"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, actorID int64, action, entity string, entityID int64, metadata any) error {
	const q = `
INSERT INTO audit_logs (actor_id, action, entity, entity_id, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := r.db.Exec(ctx, q, actorID, action, entity, entityID, marshalMetadata(metadata))
	return err
}

// Insert is the transactional variant, used when the audit row must commit or
// roll back together with the mutation it describes.
func Insert(ctx context.Context, tx pgx.Tx, actorID int64, action, entity string, entityID int64, metadata any) error {
	const q = `
INSERT INTO audit_logs (actor_id, action, entity, entity_id, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actorID, action, entity, entityID, marshalMetadata(metadata))
	return err
}

func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `
SELECT id, actor_id, action, entity, entity_id, COALESCE(metadata, 'null'::jsonb), created_at
FROM audit_logs
ORDER BY id DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func marshalMetadata(metadata any) *string {
	if metadata == nil {
		return nil
	}
	b, _ := json.Marshal(metadata)
	s := string(b)
	return &s
}
