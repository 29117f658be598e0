package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"
)

// IContentRepository defines list access to the public content collections
type IContentRepository interface {
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	ListGallery(ctx context.Context) ([]models.GalleryItem, error)
}

// ContentRepository handles read access to achievements, announcements and
// the gallery. Writes go through the generic admin mutation repository.
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListAchievements lists all achievements, newest first
func (r *ContentRepository) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	query := `
		SELECT id, achievement_title, cadet_name, rank, event, year, image, created_at
		FROM achievements
		ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]models.Achievement, 0)
	for rows.Next() {
		var a models.Achievement
		err := rows.Scan(&a.ID, &a.Title, &a.CadetName, &a.Rank, &a.Event, &a.Year, &a.Image, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning achievement row: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}

	return achievements, nil
}

// ListAnnouncements lists all announcements, newest first
func (r *ContentRepository) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	query := `
		SELECT id, title, description, date, tag, created_at
		FROM announcements
		ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]models.Announcement, 0)
	for rows.Next() {
		var a models.Announcement
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Date, &a.Tag, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, nil
}

// ListGallery lists all gallery items, newest first
func (r *ContentRepository) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	query := `
		SELECT id, event, date, src, created_at
		FROM gallery
		ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing gallery items: %w", err)
	}
	defer rows.Close()

	items := make([]models.GalleryItem, 0)
	for rows.Next() {
		var g models.GalleryItem
		err := rows.Scan(&g.ID, &g.Event, &g.Date, &g.Src, &g.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning gallery row: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gallery rows: %w", err)
	}

	return items, nil
}
