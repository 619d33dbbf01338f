package request

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

const requestCols = `id, patient_id, emergency_center_id, distance, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*EmsToErRequest, error) {
	var req EmsToErRequest
	err := row.Scan(&req.ID, &req.PatientID, &req.EmergencyCenterID, &req.Distance,
		&req.Status, &req.CreatedAt, &req.UpdatedAt)
	return &req, err
}

func (r *repoPG) CreateMany(ctx context.Context, reqs []*EmsToErRequest) error {
	for _, req := range reqs {
		req.ID = uuid.New()
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO ems_to_er_request (id, patient_id, emergency_center_id, distance, status)
			VALUES ($1,$2,$3,$4,$5)`,
			req.ID, req.PatientID, req.EmergencyCenterID, req.Distance, req.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) UpsertRequestPatient(ctx context.Context, rp *RequestPatient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO request_patient (patient_id, name, birth, gender, severity, ambulance_company_name)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (patient_id) DO UPDATE SET
			name = EXCLUDED.name,
			birth = EXCLUDED.birth,
			gender = EXCLUDED.gender,
			severity = EXCLUDED.severity,
			ambulance_company_name = EXCLUDED.ambulance_company_name`,
		rp.PatientID, rp.Name, rp.Birth, rp.Gender, rp.Severity, rp.AmbulanceCompanyName)
	return err
}

func (r *repoPG) GetByPatientAndCenter(ctx context.Context, patientID, centerID uuid.UUID) (*EmsToErRequest, error) {
	return scanRequest(r.conn(ctx).QueryRow(ctx, `
		SELECT `+requestCols+` FROM ems_to_er_request
		WHERE patient_id = $1 AND emergency_center_id = $2`,
		patientID, centerID))
}

func (r *repoPG) GetRequestPatient(ctx context.Context, patientID uuid.UUID) (*RequestPatient, error) {
	var rp RequestPatient
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT patient_id, name, birth, gender, severity, ambulance_company_name, created_at
		FROM request_patient WHERE patient_id = $1`, patientID).
		Scan(&rp.PatientID, &rp.Name, &rp.Birth, &rp.Gender, &rp.Severity,
			&rp.AmbulanceCompanyName, &rp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ems_to_er_request SET status = $2, updated_at = NOW() WHERE id = $1`, id, to)
	return err
}

func (r *repoPG) CompleteSiblings(ctx context.Context, patientID, excludeCenterID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ems_to_er_request SET status = $3, updated_at = NOW()
		WHERE patient_id = $1 AND emergency_center_id <> $2
		  AND status NOT IN ('ACCEPTED','CANCELED','COMPLETED')`,
		patientID, excludeCenterID, StatusCompleted)
	return err
}

func (r *repoPG) MarkViewed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ems_to_er_request SET status = $2, updated_at = NOW()
		WHERE id = ANY($1) AND status = $3`,
		ids, StatusViewed, StatusRequested)
	return err
}

func (r *repoPG) ListByCenter(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*RequestWithPatient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM ems_to_er_request WHERE emergency_center_id = $1`, centerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT r.id, r.patient_id, r.emergency_center_id, r.distance, r.status, r.created_at, r.updated_at,
			p.patient_id, p.name, p.birth, p.gender, p.severity, p.ambulance_company_name, p.created_at
		FROM ems_to_er_request r
		JOIN request_patient p ON p.patient_id = r.patient_id
		WHERE r.emergency_center_id = $1
		ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`,
		centerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RequestWithPatient
	for rows.Next() {
		var item RequestWithPatient
		if err := rows.Scan(&item.ID, &item.PatientID, &item.EmergencyCenterID, &item.Distance,
			&item.Status, &item.CreatedAt, &item.UpdatedAt,
			&item.Patient.PatientID, &item.Patient.Name, &item.Patient.Birth, &item.Patient.Gender,
			&item.Patient.Severity, &item.Patient.AmbulanceCompanyName, &item.Patient.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &item)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*EmsToErRequest, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+requestCols+` FROM ems_to_er_request
		WHERE patient_id = $1 ORDER BY distance`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*EmsToErRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	return items, rows.Err()
}
