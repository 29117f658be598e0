package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/apperrors"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/cache"
)

type adminServiceMocks struct {
	adminRepo      *mockAdminRepo
	studentRepo    *mockStudentRepo
	nccRepo        *mockNccRepo
	experienceRepo *mockExperienceRepo
	contentRepo    *mockContentRepo
	storage        *mockFileStorage
}

func newAdminService(m adminServiceMocks, c *cache.Cache) *AdminService {
	if m.adminRepo == nil {
		m.adminRepo = &mockAdminRepo{}
	}
	if m.studentRepo == nil {
		m.studentRepo = &mockStudentRepo{}
	}
	if m.nccRepo == nil {
		m.nccRepo = &mockNccRepo{}
	}
	if m.experienceRepo == nil {
		m.experienceRepo = &mockExperienceRepo{}
	}
	if m.contentRepo == nil {
		m.contentRepo = &mockContentRepo{}
	}
	if m.storage == nil {
		m.storage = &mockFileStorage{}
	}
	if c == nil {
		c = cache.New(nil, time.Minute, zerolog.Nop())
	}
	return NewAdminService(m.adminRepo, m.studentRepo, m.nccRepo, m.experienceRepo,
		m.contentRepo, m.storage, c, zerolog.Nop())
}

func TestSnapshotAssemblesAllTables(t *testing.T) {
	mocks := adminServiceMocks{
		studentRepo: &mockStudentRepo{
			getAllFn: func(ctx context.Context) ([]models.Student, error) {
				return []models.Student{{StudentID: 1, Name: "Arjun Kumar"}}, nil
			},
		},
		nccRepo: &mockNccRepo{
			listAllWithStudentFn: func(ctx context.Context) ([]models.NccDetailWithStudent, error) {
				return []models.NccDetailWithStudent{{NccDetail: models.NccDetail{NccID: 2}}}, nil
			},
		},
		contentRepo: &mockContentRepo{
			listAchievementsFn: func(ctx context.Context) ([]models.Achievement, error) {
				return []models.Achievement{{ID: 3, Title: "Best Cadet"}}, nil
			},
		},
	}
	service := newAdminService(mocks, nil)

	snapshot, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot.Students) != 1 || snapshot.Students[0].Name != "Arjun Kumar" {
		t.Errorf("unexpected students: %+v", snapshot.Students)
	}
	if len(snapshot.NccDetails) != 1 {
		t.Errorf("expected 1 ncc record, got %d", len(snapshot.NccDetails))
	}
	if len(snapshot.Achievements) != 1 {
		t.Errorf("expected 1 achievement, got %d", len(snapshot.Achievements))
	}
	if snapshot.Experiences == nil || snapshot.Announcements == nil || snapshot.Gallery == nil {
		t.Error("empty tables must be empty slices, not nil")
	}
}

func TestCreateRecordUnknownKind(t *testing.T) {
	service := newAdminService(adminServiceMocks{}, nil)

	_, err := service.CreateRecord(context.Background(), "course", map[string]interface{}{"name": "x"})
	if !errors.Is(err, apperrors.ErrUnknownRecordKind) {
		t.Fatalf("expected ErrUnknownRecordKind, got %v", err)
	}
}

func TestCreateRecordRejectsUnknownColumn(t *testing.T) {
	insertCalled := false
	mocks := adminServiceMocks{
		adminRepo: &mockAdminRepo{
			insertFn: func(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error) {
				insertCalled = true
				return 1, nil
			},
		},
	}
	service := newAdminService(mocks, nil)

	_, err := service.CreateRecord(context.Background(), "announcement", map[string]interface{}{
		"title":    "Camp schedule",
		"password": "nope",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request error, got %v", err)
	}
	if insertCalled {
		t.Error("an unknown column must not reach the repository")
	}
}

func TestCreateRecordRejectsEmptyFields(t *testing.T) {
	service := newAdminService(adminServiceMocks{}, nil)

	_, err := service.CreateRecord(context.Background(), "gallery", map[string]interface{}{})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request error, got %v", err)
	}
}

func TestCreateRecordTargetsKindTable(t *testing.T) {
	var gotTable, gotIDColumn string
	mocks := adminServiceMocks{
		adminRepo: &mockAdminRepo{
			insertFn: func(ctx context.Context, table, idColumn string, fields map[string]interface{}) (int64, error) {
				gotTable, gotIDColumn = table, idColumn
				return 12, nil
			},
		},
	}
	service := newAdminService(mocks, nil)

	resp, err := service.CreateRecord(context.Background(), "experience", map[string]interface{}{
		"student_id":   int64(1),
		"experience":   "internship",
		"company_name": "HAL",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTable != "placements_internships" || gotIDColumn != "experience_id" {
		t.Errorf("expected placements_internships/experience_id, got %s/%s", gotTable, gotIDColumn)
	}
	if resp.ID != 12 {
		t.Errorf("expected id 12, got %d", resp.ID)
	}
}

func TestDeleteRecordUnknownKind(t *testing.T) {
	service := newAdminService(adminServiceMocks{}, nil)

	err := service.DeleteRecord(context.Background(), "faculty", 1)
	if !errors.Is(err, apperrors.ErrUnknownRecordKind) {
		t.Fatalf("expected ErrUnknownRecordKind, got %v", err)
	}
}

func TestDeleteRecordAbsentIDSucceeds(t *testing.T) {
	// The repository treats zero affected rows as success; the service
	// passes that through.
	service := newAdminService(adminServiceMocks{}, nil)

	if err := service.DeleteRecord(context.Background(), "achievement", 9999); err != nil {
		t.Fatalf("expected deleting an absent id to succeed, got %v", err)
	}
}

func TestContentMutationInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	c.Set(ctx, cacheKeyAnnouncements, []models.Announcement{{ID: 1}})
	c.Set(ctx, cacheKeyGallery, []models.GalleryItem{{ID: 1}})

	service := newAdminService(adminServiceMocks{}, c)

	if err := service.UpdateRecord(ctx, "announcement", 1, map[string]interface{}{"title": "Updated"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var announcements []models.Announcement
	if c.Get(ctx, cacheKeyAnnouncements, &announcements) {
		t.Error("announcement mutation must drop the announcements cache")
	}

	var gallery []models.GalleryItem
	if !c.Get(ctx, cacheKeyGallery, &gallery) {
		t.Error("announcement mutation must leave the gallery cache alone")
	}
}

func TestStudentMutationLeavesContentCacheAlone(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	c.Set(ctx, cacheKeyAchievements, []models.Achievement{{ID: 1}})

	service := newAdminService(adminServiceMocks{}, c)

	if err := service.UpdateRecord(ctx, "student", 1, map[string]interface{}{"name": "Arjun Kumar"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var achievements []models.Achievement
	if !c.Get(ctx, cacheKeyAchievements, &achievements) {
		t.Error("student mutation must not touch the content caches")
	}
}

func TestUploadImageUnknownBucket(t *testing.T) {
	storage := &mockFileStorage{}
	service := newAdminService(adminServiceMocks{storage: storage}, nil)

	_, err := service.UploadImage(nil, "secret_documents")
	if !errors.Is(err, apperrors.ErrUnknownBucket) {
		t.Fatalf("expected ErrUnknownBucket, got %v", err)
	}
	if len(storage.savedBuckets) != 0 {
		t.Error("an unknown bucket must not reach storage")
	}
}

func TestUploadImageKnownBucket(t *testing.T) {
	storage := &mockFileStorage{}
	service := newAdminService(adminServiceMocks{storage: storage}, nil)

	resp, err := service.UploadImage(nil, "gallery_images")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.URL == "" {
		t.Error("expected a public URL")
	}
	if len(storage.savedBuckets) != 1 || storage.savedBuckets[0] != "gallery_images" {
		t.Errorf("unexpected storage calls: %v", storage.savedBuckets)
	}
}
