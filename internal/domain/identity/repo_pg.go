package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emslink/emslink/internal/platform/db"
)

type emsEmployeeRepoPG struct{ pool *pgxpool.Pool }

func NewEmsEmployeeRepoPG(pool *pgxpool.Pool) EmsEmployeeRepository {
	return &emsEmployeeRepoPG{pool: pool}
}

func (r *emsEmployeeRepoPG) conn(ctx context.Context) db.Conn {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const emsEmployeeCols = `id, ambulance_company_id, login_id, password_hash, name, phone, created_at, updated_at`

func scanEmsEmployee(row pgx.Row) (*EmsEmployee, error) {
	var e EmsEmployee
	err := row.Scan(&e.ID, &e.AmbulanceCompanyID, &e.LoginID, &e.PasswordHash,
		&e.Name, &e.Phone, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *emsEmployeeRepoPG) GetByLoginID(ctx context.Context, loginID string) (*EmsEmployee, error) {
	return scanEmsEmployee(r.conn(ctx).QueryRow(ctx,
		`SELECT `+emsEmployeeCols+` FROM ems_employee WHERE login_id = $1`, loginID))
}

func (r *emsEmployeeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*EmsEmployee, error) {
	return scanEmsEmployee(r.conn(ctx).QueryRow(ctx,
		`SELECT `+emsEmployeeCols+` FROM ems_employee WHERE id = $1`, id))
}

type erEmployeeRepoPG struct{ pool *pgxpool.Pool }

func NewErEmployeeRepoPG(pool *pgxpool.Pool) ErEmployeeRepository {
	return &erEmployeeRepoPG{pool: pool}
}

func (r *erEmployeeRepoPG) conn(ctx context.Context) db.Conn {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const erEmployeeCols = `id, hospital_id, emergency_center_id, login_id, password_hash, name, phone, created_at, updated_at`

func scanErEmployee(row pgx.Row) (*ErEmployee, error) {
	var e ErEmployee
	err := row.Scan(&e.ID, &e.HospitalID, &e.EmergencyCenterID, &e.LoginID, &e.PasswordHash,
		&e.Name, &e.Phone, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *erEmployeeRepoPG) GetByLoginID(ctx context.Context, loginID string) (*ErEmployee, error) {
	return scanErEmployee(r.conn(ctx).QueryRow(ctx,
		`SELECT `+erEmployeeCols+` FROM er_employee WHERE login_id = $1`, loginID))
}

func (r *erEmployeeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ErEmployee, error) {
	return scanErEmployee(r.conn(ctx).QueryRow(ctx,
		`SELECT `+erEmployeeCols+` FROM er_employee WHERE id = $1`, id))
}

type ambulanceCompanyRepoPG struct{ pool *pgxpool.Pool }

func NewAmbulanceCompanyRepoPG(pool *pgxpool.Pool) AmbulanceCompanyRepository {
	return &ambulanceCompanyRepoPG{pool: pool}
}

func (r *ambulanceCompanyRepoPG) conn(ctx context.Context) db.Conn {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *ambulanceCompanyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AmbulanceCompany, error) {
	var c AmbulanceCompany
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, phone, address, created_at, updated_at
		FROM ambulance_company WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}
