package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage persists uploaded files and returns an opaque reference.
type Storage interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// S3Storage stores uploads in an S3 bucket under random keys.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage builds an S3 backed store for the given region and bucket.
func NewS3Storage(ctx context.Context, region, bucket string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Put uploads the body under a fresh uuid key, keeping the original
// extension, and returns the object key.
func (s *S3Storage) Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// LocalStorage writes uploads to a directory on disk, used when S3 is
// not configured.
type LocalStorage struct {
	dir string
}

// NewLocalStorage builds a disk backed store rooted at dir.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir}, nil
}

// Put writes the body under a fresh uuid name and returns the relative
// path.
func (s *LocalStorage) Put(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return filepath.Join("uploads", name), nil
}
