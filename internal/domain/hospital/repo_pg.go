package hospital

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

func (r *repoPG) GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	var h Hospital
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, address, phone, created_at, updated_at
		FROM hospital WHERE id = $1`, id).
		Scan(&h.ID, &h.Name, &h.Address, &h.Phone, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const staffCols = `id, hospital_id, name, role, phone, created_at, updated_at`

func scanStaff(row pgx.Row) (*HospitalStaff, error) {
	var s HospitalStaff
	err := row.Scan(&s.ID, &s.HospitalID, &s.Name, &s.Role, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) GetStaff(ctx context.Context, hospitalID, staffID uuid.UUID) (*HospitalStaff, error) {
	return scanStaff(r.conn(ctx).QueryRow(ctx, `
		SELECT `+staffCols+` FROM hospital_staff
		WHERE hospital_id = $1 AND id = $2`, hospitalID, staffID))
}

func (r *repoPG) ListStaff(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*HospitalStaff, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM hospital_staff WHERE hospital_id = $1`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+staffCols+` FROM hospital_staff
		WHERE hospital_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*HospitalStaff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

const bedCols = `id, emergency_center_id, room_number, bed_number, status, er_patient_id, created_at, updated_at`

func scanBed(row pgx.Row) (*EmergencyRoomBed, error) {
	var b EmergencyRoomBed
	err := row.Scan(&b.ID, &b.EmergencyCenterID, &b.RoomNumber, &b.BedNumber,
		&b.Status, &b.ErPatientID, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) GetBed(ctx context.Context, centerID, bedID uuid.UUID) (*EmergencyRoomBed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx, `
		SELECT `+bedCols+` FROM emergency_room_bed
		WHERE emergency_center_id = $1 AND id = $2`, centerID, bedID))
}

func (r *repoPG) ListBeds(ctx context.Context, centerID uuid.UUID, limit, offset int) ([]*EmergencyRoomBed, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM emergency_room_bed WHERE emergency_center_id = $1`, centerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bedCols+` FROM emergency_room_bed
		WHERE emergency_center_id = $1 ORDER BY room_number, bed_number LIMIT $2 OFFSET $3`,
		centerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*EmergencyRoomBed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repoPG) OccupyBed(ctx context.Context, bedID, patientID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_room_bed
		SET status = $2, er_patient_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4`,
		bedID, BedOccupied, patientID, BedAvailable)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) AppendBedLog(ctx context.Context, log *BedLog) error {
	log.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed_log (id, bed_id, status, er_patient_id)
		VALUES ($1,$2,$3,$4)`,
		log.ID, log.BedID, log.Status, log.ErPatientID)
	return err
}
