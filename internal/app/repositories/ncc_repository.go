package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/dberrors"
)

// INccDetailRepository defines the interface for NCC service record operations
type INccDetailRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.NccDetail, error)
	Create(ctx context.Context, detail *models.NccDetail) (int64, error)
	Update(ctx context.Context, detail *models.NccDetail) error
	Delete(ctx context.Context, studentID, nccID int64) error
	ListAllWithStudent(ctx context.Context) ([]models.NccDetailWithStudent, error)
}

// NccDetailRepository handles NCC service record database operations
type NccDetailRepository struct {
	db *pgxpool.Pool
}

// NewNccDetailRepository creates a new NccDetailRepository
func NewNccDetailRepository(db *pgxpool.Pool) *NccDetailRepository {
	return &NccDetailRepository{db: db}
}

const nccColumns = `ncc_id, student_id, ncc_wing, regimental_number, enrollment_date,
	cadet_rank, my_ncc_certification, camps_attended, awards_received_in_national_camp, created_at`

func scanNccDetail(row pgx.Row) (*models.NccDetail, error) {
	var d models.NccDetail
	err := row.Scan(&d.NccID, &d.StudentID, &d.NccWing, &d.RegimentalNumber,
		&d.EnrollmentDate, &d.CadetRank, &d.Certification, &d.CampsAttended,
		&d.AwardsReceived, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByStudent lists all NCC records of one student, newest first
func (r *NccDetailRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.NccDetail, error) {
	query := `SELECT ` + nccColumns + ` FROM ncc_details WHERE student_id = $1 ORDER BY ncc_id DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing ncc records: %w", err)
	}
	defer rows.Close()

	details := make([]models.NccDetail, 0)
	for rows.Next() {
		detail, err := scanNccDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning ncc row: %w", err)
		}
		details = append(details, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ncc rows: %w", err)
	}

	return details, nil
}

// Create inserts a new NCC record and returns its ID
func (r *NccDetailRepository) Create(ctx context.Context, detail *models.NccDetail) (int64, error) {
	query := `
		INSERT INTO ncc_details (student_id, ncc_wing, regimental_number, enrollment_date,
			cadet_rank, my_ncc_certification, camps_attended, awards_received_in_national_camp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ncc_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		detail.StudentID, detail.NccWing, detail.RegimentalNumber, detail.EnrollmentDate,
		detail.CadetRank, detail.Certification, detail.CampsAttended, detail.AwardsReceived,
		time.Now(),
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "ncc_details_student_regimental_key") {
			return 0, apperrors.ErrDuplicateRegimentalNumber
		}
		return 0, fmt.Errorf("error creating ncc record: %w", err)
	}

	return id, nil
}

// Update replaces the editable fields of an NCC record. The student ID is
// part of the match so records can only be edited by their owner.
func (r *NccDetailRepository) Update(ctx context.Context, detail *models.NccDetail) error {
	query := `
		UPDATE ncc_details
		SET ncc_wing = $1, regimental_number = $2, enrollment_date = $3, cadet_rank = $4,
			my_ncc_certification = $5, camps_attended = $6, awards_received_in_national_camp = $7
		WHERE ncc_id = $8 AND student_id = $9`

	cmdTag, err := r.db.Exec(ctx, query,
		detail.NccWing, detail.RegimentalNumber, detail.EnrollmentDate, detail.CadetRank,
		detail.Certification, detail.CampsAttended, detail.AwardsReceived,
		detail.NccID, detail.StudentID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "ncc_details_student_regimental_key") {
			return apperrors.ErrDuplicateRegimentalNumber
		}
		return fmt.Errorf("error updating ncc record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// Delete removes an NCC record owned by the given student
func (r *NccDetailRepository) Delete(ctx context.Context, studentID, nccID int64) error {
	query := `DELETE FROM ncc_details WHERE ncc_id = $1 AND student_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, nccID, studentID)
	if err != nil {
		return fmt.Errorf("error deleting ncc record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// ListAllWithStudent lists every NCC record joined with its owner's name and
// email, newest first. Used by the admin console and the Excel export.
func (r *NccDetailRepository) ListAllWithStudent(ctx context.Context) ([]models.NccDetailWithStudent, error) {
	query := `
		SELECT n.ncc_id, n.student_id, n.ncc_wing, n.regimental_number, n.enrollment_date,
			n.cadet_rank, n.my_ncc_certification, n.camps_attended,
			n.awards_received_in_national_camp, n.created_at, s.name, s.email
		FROM ncc_details n
		JOIN students s ON s.student_id = n.student_id
		ORDER BY n.ncc_id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing ncc records with students: %w", err)
	}
	defer rows.Close()

	details := make([]models.NccDetailWithStudent, 0)
	for rows.Next() {
		var d models.NccDetailWithStudent
		err := rows.Scan(&d.NccID, &d.StudentID, &d.NccWing, &d.RegimentalNumber,
			&d.EnrollmentDate, &d.CadetRank, &d.Certification, &d.CampsAttended,
			&d.AwardsReceived, &d.CreatedAt, &d.StudentName, &d.StudentEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning ncc row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ncc rows: %w", err)
	}

	return details, nil
}
