package models

import "time"

// Achievement is a public cadet achievement shown on the landing pages.
type Achievement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"achievementTitle"`
	CadetName string    `json:"cadetName"`
	Rank      string    `json:"rank"`
	Event     string    `json:"event"`
	Year      string    `json:"year"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// Announcement is a public notice with an optional tag.
type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GalleryItem is a public gallery photo.
type GalleryItem struct {
	ID        int64     `json:"id"`
	Event     string    `json:"event"`
	Date      string    `json:"date"`
	Src       string    `json:"src"`
	CreatedAt time.Time `json:"createdAt"`
}
