package erpatient

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

const patientCols = `id, hospital_id, emergency_center_id, ems_patient_id, name, birth, identity_number,
	gender, phone, address, severity, bed_id, doctor_id, nurse_id, admitted_by_id, created_at, updated_at`

func scanPatient(row pgx.Row) (*ErPatient, error) {
	var p ErPatient
	err := row.Scan(&p.ID, &p.HospitalID, &p.EmergencyCenterID, &p.EmsPatientID, &p.Name, &p.Birth, &p.IdentityNumber,
		&p.Gender, &p.Phone, &p.Address, &p.Severity, &p.BedID, &p.DoctorID, &p.NurseID, &p.AdmittedByID,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) CreateAdmission(ctx context.Context, rec *AdmissionRecord) error {
	p := rec.Patient
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO er_patient (id, hospital_id, emergency_center_id, ems_patient_id, name, birth, identity_number,
			gender, phone, address, severity, bed_id, doctor_id, nurse_id, admitted_by_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.HospitalID, p.EmergencyCenterID, p.EmsPatientID, p.Name, p.Birth, p.IdentityNumber,
		p.Gender, p.Phone, p.Address, p.Severity, p.BedID, p.DoctorID, p.NurseID, p.AdmittedByID)
	if err != nil {
		return err
	}
	if g := rec.Guardian; g != nil {
		_, err = r.conn(ctx).Exec(ctx, `
			INSERT INTO guardian (id, er_patient_id, name, phone, relation)
			VALUES ($1,$2,$3,$4,$5)`,
			g.ID, g.ErPatientID, g.Name, g.Phone, g.Relation)
		if err != nil {
			return err
		}
	}
	for _, log := range rec.Logs {
		_, err = r.conn(ctx).Exec(ctx, `
			INSERT INTO patient_log (id, er_patient_id, seq, category, message, employee_id, recorded_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			log.ID, log.ErPatientID, log.Seq, log.Category, log.Message, log.EmployeeID, log.RecordedAt)
		if err != nil {
			return err
		}
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO hospital_patient (id, hospital_id, er_patient_id, status)
		VALUES ($1,$2,$3,$4)`,
		rec.Link.ID, rec.Link.HospitalID, rec.Link.ErPatientID, rec.Link.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ErPatient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM er_patient WHERE id = $1`, id))
}

func (r *repoPG) ListByCenter(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*ErPatient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM er_patient WHERE emergency_center_id = $1`, centerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM er_patient WHERE emergency_center_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		centerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ErPatient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListLogs(ctx context.Context, erPatientID uuid.UUID) ([]*PatientLog, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, er_patient_id, seq, category, message, employee_id, recorded_at, created_at
		FROM patient_log WHERE er_patient_id = $1 ORDER BY seq`, erPatientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PatientLog
	for rows.Next() {
		var log PatientLog
		if err := rows.Scan(&log.ID, &log.ErPatientID, &log.Seq, &log.Category, &log.Message,
			&log.EmployeeID, &log.RecordedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &log)
	}
	return items, rows.Err()
}
