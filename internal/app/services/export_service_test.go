package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
)

func TestBuildWorkbookSheets(t *testing.T) {
	studentRepo := &mockStudentRepo{
		getAllFn: func(ctx context.Context) ([]models.Student, error) {
			return []models.Student{{
				StudentID: 1, Name: "Arjun Kumar", Email: "cadet@nccairwing.in",
				Branch: "CSE", Year: 3, RollNo: "21CS123",
			}}, nil
		},
	}
	nccRepo := &mockNccRepo{
		listAllWithStudentFn: func(ctx context.Context) ([]models.NccDetailWithStudent, error) {
			return []models.NccDetailWithStudent{{
				NccDetail:   models.NccDetail{NccID: 2, RegimentalNumber: "TN20SDA123456", NccWing: "Air"},
				StudentName: "Arjun Kumar", StudentEmail: "cadet@nccairwing.in",
			}}, nil
		},
	}
	service := NewExportService(studentRepo, nccRepo, &mockExperienceRepo{}, zerolog.Nop())

	buf, err := service.BuildWorkbook(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Students", "NCC Details", "Experiences"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for _, name := range want {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", name)
		}
	}

	header, err := f.GetCellValue("Students", "A1")
	if err != nil || header != "Student ID" {
		t.Errorf("expected Students A1 header 'Student ID', got %q (%v)", header, err)
	}

	name, err := f.GetCellValue("Students", "B2")
	if err != nil || name != "Arjun Kumar" {
		t.Errorf("expected student name in B2, got %q (%v)", name, err)
	}

	regimental, err := f.GetCellValue("NCC Details", "E2")
	if err != nil || regimental != "TN20SDA123456" {
		t.Errorf("expected regimental number in E2, got %q (%v)", regimental, err)
	}
}

func TestBuildWorkbookEmptyTables(t *testing.T) {
	service := NewExportService(&mockStudentRepo{}, &mockNccRepo{}, &mockExperienceRepo{}, zerolog.Nop())

	buf, err := service.BuildWorkbook(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	// Headers are written even when no data exists.
	header, err := f.GetCellValue("Experiences", "A1")
	if err != nil || header != "Experience ID" {
		t.Errorf("expected Experiences header row, got %q (%v)", header, err)
	}
}
