package emspatient

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

const patientCols = `id, ems_employee_id, ambulance_company_id, name, birth, identity_number,
	gender, phone, address, severity, latitude, longitude, status,
	guardian_name, guardian_phone, guardian_relation, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.EmsEmployeeID, &p.AmbulanceCompanyID, &p.Name, &p.Birth, &p.IdentityNumber,
		&p.Gender, &p.Phone, &p.Address, &p.Severity, &p.Latitude, &p.Longitude, &p.Status,
		&p.GuardianName, &p.GuardianPhone, &p.GuardianRelation, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ems_patient (id, ems_employee_id, ambulance_company_id, name, birth, identity_number,
			gender, phone, address, severity, latitude, longitude, status,
			guardian_name, guardian_phone, guardian_relation)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.EmsEmployeeID, p.AmbulanceCompanyID, p.Name, p.Birth, p.IdentityNumber,
		p.Gender, p.Phone, p.Address, p.Severity, p.Latitude, p.Longitude, p.Status,
		p.GuardianName, p.GuardianPhone, p.GuardianRelation)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM ems_patient WHERE id = $1`, id))
}

func (r *repoPG) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM ems_patient WHERE ems_employee_id = $1`, employeeID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM ems_patient WHERE ems_employee_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) FindPendingByEmployee(ctx context.Context, employeeID uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `
		SELECT `+patientCols+` FROM ems_patient
		WHERE ems_employee_id = $1 AND status = $2
		ORDER BY created_at DESC LIMIT 1`,
		employeeID, StatusPending))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, from []Status, to Status) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE ems_patient SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)`,
		id, to, statusStrings(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *repoPG) AddAssessment(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ems_assessment (id, patient_id, type, fields, recorded_at)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.PatientID, a.Type, a.Fields, a.RecordedAt)
	return err
}

func (r *repoPG) ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, type, fields, recorded_at, created_at
		FROM ems_assessment WHERE patient_id = $1 ORDER BY recorded_at, created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Type, &a.Fields, &a.RecordedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
