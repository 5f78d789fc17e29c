package s3

import (
	"alcyxob/coach-log/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of *s3.Client the blob repository needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3BlobRepository keeps each document as a JSON object in a bucket.
type s3BlobRepository struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewS3BlobRepository creates a blob repository storing objects under prefix in bucket.
func NewS3BlobRepository(client ObjectAPI, bucket, prefix string) repository.BlobRepository {
	return &s3BlobRepository{client: client, bucket: bucket, prefix: prefix}
}

func (r *s3BlobRepository) objectKey(key string) string {
	return path.Join(r.prefix, key+".json")
}

// Get downloads the object for key.
func (r *s3BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %q: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %q: %w", key, err)
	}
	return data, nil
}

// Put uploads data as the object for key.
func (r *s3BlobRepository) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %q: %w", key, err)
	}
	return nil
}
