package filestorage

import (
	"mime/multipart"
)

// Upload buckets recognized by the admin console. Files land in a
// subdirectory of the same name under the storage root.
const (
	BucketGalleryImages     = "gallery_images"
	BucketAchievementImages = "achievement_images"
)

// IsKnownBucket reports whether the given bucket name is served by this storage.
func IsKnownBucket(bucket string) bool {
	return bucket == BucketGalleryImages || bucket == BucketAchievementImages
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveToBucket stores a file under the given bucket and returns its public URL
	SaveToBucket(fileHeader *multipart.FileHeader, bucket string) (string, error)

	// DeleteFile removes a stored file given its public URL or relative path
	DeleteFile(filePath string) error
}
