package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/cache"
)

func TestListAchievementsCachesResult(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(client, time.Minute, zerolog.Nop())

	repoCalls := 0
	contentRepo := &mockContentRepo{
		listAchievementsFn: func(ctx context.Context) ([]models.Achievement, error) {
			repoCalls++
			return []models.Achievement{{ID: 1, Title: "Best Cadet"}}, nil
		},
	}
	service := NewContentService(contentRepo, c, zerolog.Nop())
	ctx := context.Background()

	first, err := service.ListAchievements(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.ListAchievements(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoCalls != 1 {
		t.Errorf("expected one repository call, got %d", repoCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Title != "Best Cadet" {
		t.Errorf("unexpected results: first=%+v second=%+v", first, second)
	}
}

func TestListAnnouncementsWithDisabledCache(t *testing.T) {
	repoCalls := 0
	contentRepo := &mockContentRepo{
		listAnnouncementsFn: func(ctx context.Context) ([]models.Announcement, error) {
			repoCalls++
			return []models.Announcement{{ID: 1, Title: "Camp schedule"}}, nil
		},
	}
	c := cache.New(nil, time.Minute, zerolog.Nop())
	service := NewContentService(contentRepo, c, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		announcements, err := service.ListAnnouncements(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(announcements) != 1 {
			t.Fatalf("expected 1 announcement, got %d", len(announcements))
		}
	}

	if repoCalls != 2 {
		t.Errorf("a disabled cache must hit the repository every time, got %d calls", repoCalls)
	}
}

func TestListGalleryEmpty(t *testing.T) {
	c := cache.New(nil, time.Minute, zerolog.Nop())
	service := NewContentService(&mockContentRepo{}, c, zerolog.Nop())

	items, err := service.ListGallery(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected an empty slice, got %v", items)
	}
}
