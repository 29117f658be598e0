package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
)

// ExportFilename is the download name of the admin Excel export
const ExportFilename = "StudentData.xlsx"

// ExportService builds the admin Excel workbook with one sheet per dataset
type ExportService struct {
	studentRepo    repositories.IStudentRepository
	nccRepo        repositories.INccDetailRepository
	experienceRepo repositories.IExperienceRepository
	logger         zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	studentRepo repositories.IStudentRepository,
	nccRepo repositories.INccDetailRepository,
	experienceRepo repositories.IExperienceRepository,
	logger zerolog.Logger,
) *ExportService {
	return &ExportService{
		studentRepo:    studentRepo,
		nccRepo:        nccRepo,
		experienceRepo: experienceRepo,
		logger:         logger,
	}
}

// BuildWorkbook assembles the export workbook and returns it as a buffer
// ready to stream to the client.
func (s *ExportService) BuildWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close export workbook")
		}
	}()

	if err := s.writeStudentsSheet(ctx, f); err != nil {
		return nil, err
	}
	if err := s.writeNccSheet(ctx, f); err != nil {
		return nil, err
	}
	if err := s.writeExperiencesSheet(ctx, f); err != nil {
		return nil, err
	}

	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	return buf, nil
}

func (s *ExportService) writeStudentsSheet(ctx context.Context, f *excelize.File) error {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	const sheet = "Students"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	headers := []interface{}{
		"Student ID", "Name", "Email", "Branch", "Year", "Roll No", "Address",
		"Phone Number", "Parents Phone Number", "Aadhaar Number", "PAN Number",
		"Account Number",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}

	for i, st := range students {
		row := []interface{}{
			st.StudentID, st.Name, st.Email, st.Branch, st.Year, st.RollNo,
			st.Address, st.PhoneNumber, st.ParentsPhoneNumber,
			st.AadhaarNumber, st.PanNumber, st.AccountNumber,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing student row: %w", err)
		}
	}

	return nil
}

func (s *ExportService) writeNccSheet(ctx context.Context, f *excelize.File) error {
	details, err := s.nccRepo.ListAllWithStudent(ctx)
	if err != nil {
		return err
	}

	const sheet = "NCC Details"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	headers := []interface{}{
		"NCC ID", "Student Name", "Student Email", "NCC Wing",
		"Regimental Number", "Enrollment Date", "Cadet Rank", "Certification",
		"Camps Attended", "Awards Received",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}

	for i, d := range details {
		row := []interface{}{
			d.NccID, d.StudentName, d.StudentEmail, d.NccWing,
			d.RegimentalNumber, d.EnrollmentDate, d.CadetRank, d.Certification,
			d.CampsAttended, d.AwardsReceived,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing ncc row: %w", err)
		}
	}

	return nil
}

func (s *ExportService) writeExperiencesSheet(ctx context.Context, f *excelize.File) error {
	experiences, err := s.experienceRepo.ListAllWithStudent(ctx)
	if err != nil {
		return err
	}

	const sheet = "Experiences"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	headers := []interface{}{
		"Experience ID", "Student Name", "Student Email", "Type",
		"Company Name", "Role", "Start Date", "End Date",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}

	for i, e := range experiences {
		row := []interface{}{
			e.ExperienceID, e.StudentName, e.StudentEmail, e.Kind,
			e.CompanyName, e.Role, e.StartDate, e.EndDate,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing experience row: %w", err)
		}
	}

	return nil
}
