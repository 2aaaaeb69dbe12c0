package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram-project/backend/config"
)

// MediaStorage persists decoded image bytes and returns a resolvable URL.
type MediaStorage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageService turns base64 data URIs from write payloads into stored media.
type ImageService struct {
	storage MediaStorage
}

// NewImageService creates a new ImageService instance
func NewImageService(storage MediaStorage) *ImageService {
	return &ImageService{storage: storage}
}

// SaveDataURI decodes a "data:image/<ext>;base64,<data>" string, stores the
// bytes under the given prefix and returns the public URL.
func (s *ImageService) SaveDataURI(ctx context.Context, dataURI, prefix string) (string, error) {
	data, ext, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.%s", prefix, uuid.New().String(), ext)
	return s.storage.Save(ctx, key, data, "image/"+ext)
}

func decodeDataURI(dataURI string) ([]byte, string, error) {
	const scheme = "data:image/"
	if !strings.HasPrefix(dataURI, scheme) {
		return nil, "", newValidationError("image must be a data:image/...;base64 URI")
	}
	rest := strings.TrimPrefix(dataURI, scheme)

	ext, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok || ext == "" {
		return nil, "", newValidationError("image must be a data:image/...;base64 URI")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", newValidationError("image payload is not valid base64")
	}
	if len(data) == 0 {
		return nil, "", newValidationError("image payload is empty")
	}
	return data, ext, nil
}

// S3Storage uploads media to the configured bucket with a public-read URL.
type S3Storage struct {
	s3Config *config.S3Config
}

// NewS3Storage creates a new S3Storage instance
func NewS3Storage(s3Config *config.S3Config) *S3Storage {
	return &S3Storage{s3Config: s3Config}
}

func (s *S3Storage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

// LocalStorage writes media under a directory served as static files. Used in
// development and tests where S3 is not available.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
