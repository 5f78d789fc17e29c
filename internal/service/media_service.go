package service

import (
	"alcyxob/coach-log/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidContentType = errors.New("invalid or missing video content type")
	ErrInvalidObjectKey   = errors.New("object key is not a feedback video")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
)

const feedbackVideoPrefix = "feedback"

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // Goes into the feedback videoUrl once uploaded
}

// MediaService hands out presigned URLs for feedback videos.
type MediaService interface {
	RequestUploadURL(ctx context.Context, contentType string) (*UploadURLResponse, error)
	DownloadURL(ctx context.Context, objectKey string) (string, error)
}

// mediaService implements the MediaService interface.
type mediaService struct {
	fileStorage storage.FileStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(fileStorage storage.FileStorage) MediaService {
	return &mediaService{fileStorage: fileStorage}
}

// RequestUploadURL generates a pre-signed PUT URL under a fresh object key.
func (s *mediaService) RequestUploadURL(ctx context.Context, contentType string) (*UploadURLResponse, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "video/") || len(contentType) == len("video/") {
		return nil, ErrInvalidContentType
	}

	fileExtension := strings.TrimPrefix(contentType, "video/")
	objectKey := path.Join(feedbackVideoPrefix, fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// DownloadURL generates a pre-signed GET URL for a previously uploaded feedback video.
func (s *mediaService) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	cleaned := path.Clean(objectKey)
	if cleaned != objectKey || !strings.HasPrefix(cleaned, feedbackVideoPrefix+"/") {
		return "", ErrInvalidObjectKey
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}
