package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models/dto"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/cache"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/filestorage"
)

// recordKind describes one editable table of the admin console: where it
// lives, its id column, which columns may be written, and which cache key a
// mutation invalidates.
type recordKind struct {
	table    string
	idColumn string
	columns  map[string]bool
	cacheKey string
}

var recordKinds = map[string]recordKind{
	"student": {
		table:    "students",
		idColumn: "student_id",
		columns: map[string]bool{
			"name": true, "email": true, "branch": true, "year": true,
			"roll_no": true, "address": true, "phone_number": true,
			"parents_phone_number": true, "aadhaar_number": true,
			"pan_number": true, "account_number": true,
		},
	},
	"ncc": {
		table:    "ncc_details",
		idColumn: "ncc_id",
		columns: map[string]bool{
			"student_id": true, "ncc_wing": true, "regimental_number": true,
			"enrollment_date": true, "cadet_rank": true,
			"my_ncc_certification": true, "camps_attended": true,
			"awards_received_in_national_camp": true,
		},
	},
	"experience": {
		table:    "placements_internships",
		idColumn: "experience_id",
		columns: map[string]bool{
			"student_id": true, "experience": true, "company_name": true,
			"role": true, "start_date": true, "end_date": true,
		},
	},
	"achievement": {
		table:    "achievements",
		idColumn: "id",
		columns: map[string]bool{
			"achievement_title": true, "cadet_name": true, "rank": true,
			"event": true, "year": true, "image": true,
		},
		cacheKey: cacheKeyAchievements,
	},
	"announcement": {
		table:    "announcements",
		idColumn: "id",
		columns: map[string]bool{
			"title": true, "description": true, "date": true, "tag": true,
		},
		cacheKey: cacheKeyAnnouncements,
	},
	"gallery": {
		table:    "gallery",
		idColumn: "id",
		columns: map[string]bool{
			"event": true, "date": true, "src": true,
		},
		cacheKey: cacheKeyGallery,
	},
}

// AdminService backs the admin console: one snapshot endpoint plus generic
// create/update/delete across the editable tables, and image uploads.
type AdminService struct {
	adminRepo      repositories.IAdminRepository
	studentRepo    repositories.IStudentRepository
	nccRepo        repositories.INccDetailRepository
	experienceRepo repositories.IExperienceRepository
	contentRepo    repositories.IContentRepository
	storage        filestorage.FileStorage
	cache          *cache.Cache
	logger         zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	adminRepo repositories.IAdminRepository,
	studentRepo repositories.IStudentRepository,
	nccRepo repositories.INccDetailRepository,
	experienceRepo repositories.IExperienceRepository,
	contentRepo repositories.IContentRepository,
	storage filestorage.FileStorage,
	c *cache.Cache,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		adminRepo:      adminRepo,
		studentRepo:    studentRepo,
		nccRepo:        nccRepo,
		experienceRepo: experienceRepo,
		contentRepo:    contentRepo,
		storage:        storage,
		cache:          c,
		logger:         logger,
	}
}

// Snapshot loads every editable table in one response
func (s *AdminService) Snapshot(ctx context.Context) (*dto.AdminRecordsResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	nccDetails, err := s.nccRepo.ListAllWithStudent(ctx)
	if err != nil {
		return nil, err
	}

	experiences, err := s.experienceRepo.ListAllWithStudent(ctx)
	if err != nil {
		return nil, err
	}

	achievements, err := s.contentRepo.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	announcements, err := s.contentRepo.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}

	gallery, err := s.contentRepo.ListGallery(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminRecordsResponse{
		Students:      students,
		NccDetails:    nccDetails,
		Experiences:   experiences,
		Achievements:  achievements,
		Announcements: announcements,
		Gallery:       gallery,
	}, nil
}

// CreateRecord inserts a row of the given kind from a column/value map
func (s *AdminService) CreateRecord(ctx context.Context, kind string, fields map[string]interface{}) (*dto.AdminCreateResponse, error) {
	k, filtered, err := filterFields(kind, fields)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, apperrors.NewBadRequestError("no fields to insert")
	}

	id, err := s.adminRepo.Insert(ctx, k.table, k.idColumn, filtered)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, k)
	s.logger.Info().Str("kind", kind).Int64("id", id).Msg("Admin created record")

	return &dto.AdminCreateResponse{ID: id}, nil
}

// UpdateRecord applies a column/value map to one row of the given kind
func (s *AdminService) UpdateRecord(ctx context.Context, kind string, id int64, fields map[string]interface{}) error {
	k, filtered, err := filterFields(kind, fields)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		return apperrors.NewBadRequestError("no fields to update")
	}

	if err := s.adminRepo.Update(ctx, k.table, k.idColumn, id, filtered); err != nil {
		return err
	}

	s.invalidate(ctx, k)
	s.logger.Info().Str("kind", kind).Int64("id", id).Msg("Admin updated record")

	return nil
}

// DeleteRecord removes one row of the given kind. Deleting an id that no
// longer exists succeeds.
func (s *AdminService) DeleteRecord(ctx context.Context, kind string, id int64) error {
	k, ok := recordKinds[kind]
	if !ok {
		return apperrors.ErrUnknownRecordKind
	}

	if err := s.adminRepo.Delete(ctx, k.table, k.idColumn, id); err != nil {
		return err
	}

	s.invalidate(ctx, k)
	s.logger.Info().Str("kind", kind).Int64("id", id).Msg("Admin deleted record")

	return nil
}

// UploadImage stores an image in a known bucket and returns its public URL
func (s *AdminService) UploadImage(fileHeader *multipart.FileHeader, bucket string) (*dto.UploadResponse, error) {
	if !filestorage.IsKnownBucket(bucket) {
		return nil, apperrors.ErrUnknownBucket
	}

	url, err := s.storage.SaveToBucket(fileHeader, bucket)
	if err != nil {
		return nil, fmt.Errorf("error storing image: %w", err)
	}

	return &dto.UploadResponse{URL: url}, nil
}

func (s *AdminService) invalidate(ctx context.Context, k recordKind) {
	if k.cacheKey != "" {
		s.cache.Delete(ctx, k.cacheKey)
	}
}

// filterFields resolves the kind and checks every submitted column against
// its whitelist. Unknown columns are rejected rather than dropped.
func filterFields(kind string, fields map[string]interface{}) (recordKind, map[string]interface{}, error) {
	k, ok := recordKinds[kind]
	if !ok {
		return recordKind{}, nil, apperrors.ErrUnknownRecordKind
	}

	filtered := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		if !k.columns[column] {
			return recordKind{}, nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown column %q for kind %q", column, kind))
		}
		filtered[column] = value
	}

	return k, filtered, nil
}
