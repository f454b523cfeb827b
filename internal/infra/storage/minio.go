package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store archives analysis reports in a MinIO/S3 bucket.
type Store struct {
	client     objectAPI
	endpoint   *url.URL
	bucketName string
}

var _ analysis.ReportStore = (*Store)(nil)

// New connects to MinIO and creates the bucket if it does not exist.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &Store{client: cli, endpoint: cli.EndpointURL(), bucketName: bucket}, nil
}

// UploadReport stores body under key and returns the object URL.
// The URL is only directly readable when the bucket is public.
func (s *Store) UploadReport(ctx context.Context, key string, body []byte) (string, error) {
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".json":
		contentType = "application/json"
	case ".md":
		contentType = "text/markdown; charset=utf-8"
	}

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return s.endpoint.JoinPath(s.bucketName, key).String(), nil
}

// Check reports whether the bucket is reachable.
func (s *Store) Check(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s not found", s.bucketName)
	}
	return nil
}
