package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
)

// IExperienceRepository defines the interface for internship/placement records
type IExperienceRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.Experience, error)
	Create(ctx context.Context, exp *models.Experience) (int64, error)
	Update(ctx context.Context, exp *models.Experience) error
	Delete(ctx context.Context, studentID, experienceID int64) error
	ListAllWithStudent(ctx context.Context) ([]models.ExperienceWithStudent, error)
}

// ExperienceRepository handles internship/placement database operations
type ExperienceRepository struct {
	db *pgxpool.Pool
}

// NewExperienceRepository creates a new ExperienceRepository
func NewExperienceRepository(db *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

const experienceColumns = `experience_id, student_id, experience, company_name, role, start_date, end_date, created_at`

func scanExperience(row pgx.Row) (*models.Experience, error) {
	var e models.Experience
	err := row.Scan(&e.ExperienceID, &e.StudentID, &e.Kind, &e.CompanyName,
		&e.Role, &e.StartDate, &e.EndDate, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByStudent lists all experience records of one student, newest first
func (r *ExperienceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM placements_internships WHERE student_id = $1 ORDER BY experience_id DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing experience records: %w", err)
	}
	defer rows.Close()

	experiences := make([]models.Experience, 0)
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning experience row: %w", err)
		}
		experiences = append(experiences, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experience rows: %w", err)
	}

	return experiences, nil
}

// Create inserts a new experience record and returns its ID
func (r *ExperienceRepository) Create(ctx context.Context, exp *models.Experience) (int64, error) {
	query := `
		INSERT INTO placements_internships (student_id, experience, company_name, role, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING experience_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		exp.StudentID, exp.Kind, exp.CompanyName, exp.Role, exp.StartDate, exp.EndDate, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating experience record: %w", err)
	}

	return id, nil
}

// Update replaces the editable fields of an experience record owned by the
// given student.
func (r *ExperienceRepository) Update(ctx context.Context, exp *models.Experience) error {
	query := `
		UPDATE placements_internships
		SET experience = $1, company_name = $2, role = $3, start_date = $4, end_date = $5
		WHERE experience_id = $6 AND student_id = $7`

	cmdTag, err := r.db.Exec(ctx, query,
		exp.Kind, exp.CompanyName, exp.Role, exp.StartDate, exp.EndDate,
		exp.ExperienceID, exp.StudentID,
	)
	if err != nil {
		return fmt.Errorf("error updating experience record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// Delete removes an experience record owned by the given student
func (r *ExperienceRepository) Delete(ctx context.Context, studentID, experienceID int64) error {
	query := `DELETE FROM placements_internships WHERE experience_id = $1 AND student_id = $2`

	cmdTag, err := r.db.Exec(ctx, query, experienceID, studentID)
	if err != nil {
		return fmt.Errorf("error deleting experience record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// ListAllWithStudent lists every experience record joined with its owner's
// name and email, newest first.
func (r *ExperienceRepository) ListAllWithStudent(ctx context.Context) ([]models.ExperienceWithStudent, error) {
	query := `
		SELECT e.experience_id, e.student_id, e.experience, e.company_name, e.role,
			e.start_date, e.end_date, e.created_at, s.name, s.email
		FROM placements_internships e
		JOIN students s ON s.student_id = e.student_id
		ORDER BY e.experience_id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing experience records with students: %w", err)
	}
	defer rows.Close()

	experiences := make([]models.ExperienceWithStudent, 0)
	for rows.Next() {
		var e models.ExperienceWithStudent
		err := rows.Scan(&e.ExperienceID, &e.StudentID, &e.Kind, &e.CompanyName,
			&e.Role, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.StudentName, &e.StudentEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning experience row: %w", err)
		}
		experiences = append(experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experience rows: %w", err)
	}

	return experiences, nil
}
