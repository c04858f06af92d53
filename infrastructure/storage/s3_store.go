package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"alchemy-backend/application/ports"
	apperrors "alchemy-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// s3API is the slice of the S3 client the store needs
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3IconStore implements the IconStore port against an S3 bucket.
type S3IconStore struct {
	client  s3API
	bucket  string
	region  string
	baseURL string // optional CDN/base URL override
	logger  *zap.Logger
}

// NewS3IconStore creates a new S3IconStore. baseURL may be empty, in which
// case the public URL is derived from the bucket and region.
func NewS3IconStore(client *s3.Client, bucket, region, baseURL string, logger *zap.Logger) ports.IconStore {
	return &S3IconStore{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
		logger:  logger,
	}
}

// PersistIcon uploads the icon bytes and returns a durable public URL.
// The object key carries a uniqueness suffix so repeated generations of
// similarly-named elements never collide.
func (s *S3IconStore) PersistIcon(ctx context.Context, imageBytes []byte, elementName string) (string, error) {
	key := iconKey(elementName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		s.logger.Error("Failed to upload icon to S3",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", apperrors.NewStorageUploadError(err)
	}

	url := s.iconURL(key)

	s.logger.Info("Icon uploaded",
		zap.String("key", key),
		zap.String("url", url),
		zap.Int("bytes", len(imageBytes)),
	)

	return url, nil
}

func (s *S3IconStore) iconURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.baseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// iconKey builds an object key from the element name plus a uuid suffix
func iconKey(elementName string) string {
	return fmt.Sprintf("icons/%s-%s.png", slugify(elementName), uuid.New().String())
}

// slugify lower-cases the name and collapses anything outside [a-z0-9]
// into single dashes
func slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "element"
	}
	return slug
}
