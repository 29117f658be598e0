package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
)

// ProfileService handles the cadet profile editor: personal details, NCC
// service records and internship/placement records.
type ProfileService struct {
	studentRepo    repositories.IStudentRepository
	nccRepo        repositories.INccDetailRepository
	experienceRepo repositories.IExperienceRepository
	recordCap      int
	logger         zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	studentRepo repositories.IStudentRepository,
	nccRepo repositories.INccDetailRepository,
	experienceRepo repositories.IExperienceRepository,
	recordCap int,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		studentRepo:    studentRepo,
		nccRepo:        nccRepo,
		experienceRepo: experienceRepo,
		recordCap:      recordCap,
		logger:         logger,
	}
}

// GetOverview returns the caller's profile with both record lists. A user
// with no profile yet gets a nil student and empty lists.
func (s *ProfileService) GetOverview(ctx context.Context, userID int64) (*dto.ProfileOverviewResponse, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return &dto.ProfileOverviewResponse{
				NccDetails:  []models.NccDetail{},
				Experiences: []models.Experience{},
			}, nil
		}
		return nil, err
	}

	nccDetails, err := s.nccRepo.ListByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	experiences, err := s.experienceRepo.ListByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileOverviewResponse{
		Student:     student,
		NccDetails:  nccDetails,
		Experiences: experiences,
	}, nil
}

// UpsertStudent creates the caller's profile on first save and updates it
// afterwards.
func (s *ProfileService) UpsertStudent(ctx context.Context, userID int64, req *dto.StudentRequest) (*models.Student, error) {
	student := &models.Student{
		UserID:             userID,
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Branch:             req.Branch,
		Year:               req.Year,
		RollNo:             req.RollNo,
		Address:            req.Address,
		PhoneNumber:        req.PhoneNumber,
		ParentsPhoneNumber: req.ParentsPhoneNumber,
		AadhaarNumber:      req.AadhaarNumber,
		PanNumber:          req.PanNumber,
		AccountNumber:      req.AccountNumber,
	}

	existing, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}

		id, err := s.studentRepo.Create(ctx, student)
		if err != nil {
			return nil, err
		}
		s.logger.Info().Int64("userId", userID).Int64("studentId", id).Msg("Created cadet profile")
		return s.studentRepo.GetByID(ctx, id)
	}

	student.StudentID = existing.StudentID
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, existing.StudentID)
}

// AddNccDetail creates an NCC service record after the cap and regimental
// number guards pass.
func (s *ProfileService) AddNccDetail(ctx context.Context, userID int64, req *dto.NccDetailRequest) (*models.NccDetail, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.nccRepo.ListByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	if len(existing) >= s.recordCap {
		return nil, apperrors.NewCustomError(apperrors.ErrRecordLimitReached,
			fmt.Sprintf("you can keep at most %d NCC records", s.recordCap))
	}

	if regimentalNumberTaken(existing, req.RegimentalNumber, 0) {
		return nil, apperrors.ErrDuplicateRegimentalNumber
	}

	detail := nccDetailFromRequest(student.StudentID, req)
	id, err := s.nccRepo.Create(ctx, detail)
	if err != nil {
		return nil, err
	}
	detail.NccID = id

	return detail, nil
}

// UpdateNccDetail updates one of the caller's NCC records. The regimental
// number check skips the record being edited.
func (s *ProfileService) UpdateNccDetail(ctx context.Context, userID, nccID int64, req *dto.NccDetailRequest) (*models.NccDetail, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.nccRepo.ListByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	if regimentalNumberTaken(existing, req.RegimentalNumber, nccID) {
		return nil, apperrors.ErrDuplicateRegimentalNumber
	}

	detail := nccDetailFromRequest(student.StudentID, req)
	detail.NccID = nccID
	if err := s.nccRepo.Update(ctx, detail); err != nil {
		return nil, err
	}

	return detail, nil
}

// DeleteNccDetail removes one of the caller's NCC records
func (s *ProfileService) DeleteNccDetail(ctx context.Context, userID, nccID int64) error {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return err
	}

	return s.nccRepo.Delete(ctx, student.StudentID, nccID)
}

// AddExperience creates an internship/placement record after the cap guard
// passes.
func (s *ProfileService) AddExperience(ctx context.Context, userID int64, req *dto.ExperienceRequest) (*models.Experience, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.experienceRepo.ListByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	if len(existing) >= s.recordCap {
		return nil, apperrors.NewCustomError(apperrors.ErrRecordLimitReached,
			fmt.Sprintf("you can keep at most %d internship/placement records", s.recordCap))
	}

	exp := experienceFromRequest(student.StudentID, req)
	id, err := s.experienceRepo.Create(ctx, exp)
	if err != nil {
		return nil, err
	}
	exp.ExperienceID = id

	return exp, nil
}

// UpdateExperience updates one of the caller's internship/placement records
func (s *ProfileService) UpdateExperience(ctx context.Context, userID, experienceID int64, req *dto.ExperienceRequest) (*models.Experience, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := experienceFromRequest(student.StudentID, req)
	exp.ExperienceID = experienceID
	if err := s.experienceRepo.Update(ctx, exp); err != nil {
		return nil, err
	}

	return exp, nil
}

// DeleteExperience removes one of the caller's internship/placement records
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, experienceID int64) error {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return err
	}

	return s.experienceRepo.Delete(ctx, student.StudentID, experienceID)
}

// requireStudent resolves the caller's profile; record operations are only
// possible once the personal details have been saved.
func (s *ProfileService) requireStudent(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// regimentalNumberTaken reports whether another record of the same student
// already carries this regimental number. Comparison is on the trimmed text,
// so two blank numbers collide too. excludeID skips the record being edited.
func regimentalNumberTaken(existing []models.NccDetail, regimentalNumber string, excludeID int64) bool {
	normalized := strings.TrimSpace(regimentalNumber)
	for _, d := range existing {
		if d.NccID == excludeID {
			continue
		}
		if strings.TrimSpace(d.RegimentalNumber) == normalized {
			return true
		}
	}
	return false
}

func nccDetailFromRequest(studentID int64, req *dto.NccDetailRequest) *models.NccDetail {
	certification := req.Certification
	if certification == "" {
		certification = models.CertificationNone
	}

	return &models.NccDetail{
		StudentID:        studentID,
		NccWing:          req.NccWing,
		RegimentalNumber: req.RegimentalNumber,
		EnrollmentDate:   req.EnrollmentDate,
		CadetRank:        req.CadetRank,
		Certification:    certification,
		CampsAttended:    req.CampsAttended,
		AwardsReceived:   req.AwardsReceived,
	}
}

func experienceFromRequest(studentID int64, req *dto.ExperienceRequest) *models.Experience {
	return &models.Experience{
		StudentID:   studentID,
		Kind:        req.Kind,
		CompanyName: req.CompanyName,
		Role:        req.Role,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}
