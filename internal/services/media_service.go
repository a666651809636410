package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

const (
	mediaPresignExpiry = 15 * time.Minute
	maxUploadSize      = 10 << 20 // 10 MiB
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MediaService stores report attachments. Metadata lives in the database,
// bytes in object storage, and downloads go through short-lived presigned
// URLs so the API never streams file contents itself.
type MediaService struct {
	mediaRepo  repositories.MediaRepository
	reportRepo repositories.ReportRepository
	storage    ObjectStorage
	bucket     string
}

func NewMediaService(mediaRepo repositories.MediaRepository, reportRepo repositories.ReportRepository, storage ObjectStorage, bucket string) *MediaService {
	return &MediaService{
		mediaRepo:  mediaRepo,
		reportRepo: reportRepo,
		storage:    storage,
		bucket:     bucket,
	}
}

func (s *MediaService) Upload(ctx context.Context, reportID *uuid.UUID, fileName, mimeType string, size int64, reader io.Reader) (*models.Media, error) {
	if size <= 0 || size > maxUploadSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", ErrValidation, maxUploadSize)
	}
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported file type %s", ErrValidation, mimeType)
	}

	if reportID != nil {
		report, err := s.reportRepo.GetByID(ctx, *reportID)
		if err != nil {
			return nil, fmt.Errorf("failed to load report: %w", err)
		}
		if report == nil {
			return nil, ErrNotFound
		}
	}

	media := &models.Media{
		ID:       uuid.New(),
		ReportID: reportID,
		FileName: fileName,
		MimeType: mimeType,
		Size:     size,
	}
	media.ObjectKey = fmt.Sprintf("media/%s%s", media.ID, path.Ext(fileName))

	if err := s.storage.Upload(ctx, s.bucket, media.ObjectKey, reader, size, mimeType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		if delErr := s.storage.Delete(ctx, s.bucket, media.ObjectKey); delErr != nil {
			return nil, fmt.Errorf("failed to record upload and to clean up object %s: %v: %w", media.ObjectKey, delErr, err)
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}
	return media, nil
}

func (s *MediaService) List(ctx context.Context) ([]*models.Media, error) {
	return s.mediaRepo.List(ctx)
}

// DownloadURL returns a presigned link for one stored file.
func (s *MediaService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load media: %w", err)
	}
	if media == nil {
		return "", ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, media.ObjectKey, mediaPresignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return url, nil
}

func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load media: %w", err)
	}
	if media == nil {
		return ErrNotFound
	}
	if err := s.storage.Delete(ctx, s.bucket, media.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return s.mediaRepo.Delete(ctx, id)
}
