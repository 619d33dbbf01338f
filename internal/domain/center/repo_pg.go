package center

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emslink/emslink/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Conn {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const centerCols = `id, hospital_id, name, type, address, phone, latitude, longitude, created_at, updated_at`

func scanCenter(row pgx.Row) (*EmergencyCenter, error) {
	var c EmergencyCenter
	err := row.Scan(&c.ID, &c.HospitalID, &c.Name, &c.Type, &c.Address, &c.Phone,
		&c.Latitude, &c.Longitude, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*EmergencyCenter, error) {
	return scanCenter(r.conn(ctx).QueryRow(ctx, `SELECT `+centerCols+` FROM emergency_center WHERE id = $1`, id))
}

func (r *repoPG) ListAll(ctx context.Context) ([]*EmergencyCenter, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+centerCols+` FROM emergency_center ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*EmergencyCenter
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
