package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps images in an S3 bucket under a shared key prefix.
type S3Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	baseURL   string
}

// NewS3Store wraps an S3 client. baseURL is the public root the bucket is
// served from, e.g. a CloudFront distribution; empty means the bucket's
// regional URL.
func NewS3Store(client *s3.Client, bucket, keyPrefix, baseURL string) *S3Store {
	keyPrefix = strings.Trim(keyPrefix, "/")
	if baseURL == "" {
		region := client.Options().Region
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Store{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, filename string, data []byte, contentType string) (string, string, error) {
	key := hashKey(filename, data, contentType)
	objectKey := key
	if s.keyPrefix != "" {
		objectKey = s.keyPrefix + "/" + key
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("uploading image %s: %w", objectKey, err)
	}
	return s.baseURL + "/" + objectKey, key, nil
}

func (s *S3Store) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	objectKey := key
	if s.keyPrefix != "" {
		objectKey = s.keyPrefix + "/" + key
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, "", fmt.Errorf("fetching image %s: %w", objectKey, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading image %s: %w", objectKey, err)
	}
	contentType := contentTypeForKey(key)
	if out.ContentType != nil && *out.ContentType != "" {
		contentType = *out.ContentType
	}
	return data, contentType, nil
}
