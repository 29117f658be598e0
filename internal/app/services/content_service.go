package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/repositories"
	"github.com/Sannith-Hack/NCC-Air-Wing/internal/pkg/cache"
)

// Cache keys for the public content lists
const (
	cacheKeyAchievements  = "achievements"
	cacheKeyAnnouncements = "announcements"
	cacheKeyGallery       = "gallery"
)

// ContentService serves the public content pages. Lists are cached; admin
// mutations invalidate the affected key.
type ContentService struct {
	contentRepo repositories.IContentRepository
	cache       *cache.Cache
	logger      zerolog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repositories.IContentRepository, c *cache.Cache, logger zerolog.Logger) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		cache:       c,
		logger:      logger,
	}
}

// ListAchievements returns all achievements, newest first
func (s *ContentService) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	var cached []models.Achievement
	if s.cache.Get(ctx, cacheKeyAchievements, &cached) {
		return cached, nil
	}

	achievements, err := s.contentRepo.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyAchievements, achievements)
	return achievements, nil
}

// ListAnnouncements returns all announcements, newest first
func (s *ContentService) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var cached []models.Announcement
	if s.cache.Get(ctx, cacheKeyAnnouncements, &cached) {
		return cached, nil
	}

	announcements, err := s.contentRepo.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyAnnouncements, announcements)
	return announcements, nil
}

// ListGallery returns all gallery items, newest first
func (s *ContentService) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	var cached []models.GalleryItem
	if s.cache.Get(ctx, cacheKeyGallery, &cached) {
		return cached, nil
	}

	items, err := s.contentRepo.ListGallery(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyGallery, items)
	return items, nil
}
