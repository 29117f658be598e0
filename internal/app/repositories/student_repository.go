package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/dberrors"
)

// IStudentRepository defines the interface for cadet profile operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByID(ctx context.Context, studentID int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
}

// StudentRepository handles cadet profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `student_id, user_id, name, email, branch, year, roll_no, address,
	phone_number, parents_phone_number, aadhaar_number, pan_number, account_number,
	created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.StudentID, &s.UserID, &s.Name, &s.Email, &s.Branch, &s.Year,
		&s.RollNo, &s.Address, &s.PhoneNumber, &s.ParentsPhoneNumber,
		&s.AadhaarNumber, &s.PanNumber, &s.AccountNumber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new cadet profile and returns its ID. A user may only have
// one profile.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (user_id, name, email, branch, year, roll_no, address,
			phone_number, parents_phone_number, aadhaar_number, pan_number, account_number,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING student_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		student.UserID, student.Name, student.Email, student.Branch, student.Year,
		student.RollNo, student.Address, student.PhoneNumber, student.ParentsPhoneNumber,
		student.AadhaarNumber, student.PanNumber, student.AccountNumber, time.Now(),
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			return 0, apperrors.ErrStudentAlreadyExists
		}
		return 0, fmt.Errorf("error creating student profile: %w", err)
	}

	return id, nil
}

// Update replaces the editable fields of a cadet profile
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, branch = $3, year = $4, roll_no = $5, address = $6,
			phone_number = $7, parents_phone_number = $8, aadhaar_number = $9,
			pan_number = $10, account_number = $11, updated_at = $12
		WHERE student_id = $13`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Email, student.Branch, student.Year, student.RollNo,
		student.Address, student.PhoneNumber, student.ParentsPhoneNumber,
		student.AadhaarNumber, student.PanNumber, student.AccountNumber, time.Now(),
		student.StudentID,
	)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetByUserID retrieves the cadet profile owned by a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return student, nil
}

// GetByID retrieves a cadet profile by its ID
func (r *StudentRepository) GetByID(ctx context.Context, studentID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return student, nil
}

// GetAll lists every cadet profile, newest first
func (r *StudentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY student_id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
