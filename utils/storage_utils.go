package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// FileStore persists listing media on an S3-compatible object store.
type FileStore struct {
	bucket   string
	endpoint string
	client   *s3.S3
}

// NewFileStoreFromEnv reads the object-store credentials from the
// environment: S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION,
// S3_ENDPOINT.
func NewFileStoreFromEnv() (*FileStore, error) {
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("S3_REGION")
	endpoint := os.Getenv("S3_ENDPOINT")
	if accessKey == "" || secretKey == "" || bucket == "" || endpoint == "" {
		return nil, fmt.Errorf("storage: S3_ACCESS_KEY/S3_SECRET_KEY/S3_BUCKET/S3_ENDPOINT are required")
	}
	if region == "" {
		region = "us-east-1"
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	return &FileStore{
		bucket:   bucket,
		endpoint: endpoint,
		client:   s3.New(sess),
	}, nil
}

// SaveFile uploads one file under folder and returns its public URL. The
// stored name is random; the original name only contributes its extension.
func (fs *FileStore) SaveFile(ctx context.Context, data []byte, originalName, contentType, folder string) (string, error) {
	name := uuid.New().String() + strings.ToLower(path.Ext(originalName))
	key := fmt.Sprintf("%s/%s", folder, name)

	_, err := fs.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(fs.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file: %w", err)
	}
	return fs.publicURL(key), nil
}

// DeleteFile removes the object a previously returned URL points at. URLs
// from other hosts are ignored rather than treated as errors.
func (fs *FileStore) DeleteFile(ctx context.Context, fileURL string) error {
	key, ok := fs.keyFromURL(fileURL)
	if !ok {
		return nil
	}
	_, err := fs.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file: %w", err)
	}
	return nil
}

func (fs *FileStore) publicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(fs.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", fs.bucket, host, key)
}

func (fs *FileStore) keyFromURL(fileURL string) (string, bool) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(u.Host, fs.bucket+".") {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}
