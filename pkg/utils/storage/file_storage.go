package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const MaxFileSize = 25 * 1024 * 1024 // 25MB

// Service wraps the S3 client for asset and avatar objects.
type Service struct {
	client *s3.Client
	bucket string
	region string
}

// New builds the S3-backed storage service. When accessKey is empty the
// default credential chain is used.
func New(bucket, region, accessKey, secretKey string) (*Service, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &Service{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Upload writes the body under tenant_id/<uuid>_<name> and returns the
// public URL.
func (s *Service) Upload(tenantID uint, name, contentType string, body []byte) (string, error) {
	key := fmt.Sprintf("%d/%s_%s", tenantID, uuid.NewString(), name)

	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return s.URLFor(key), nil
}

func (s *Service) URLFor(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Delete removes the object behind a previously returned URL.
func (s *Service) Delete(objectURL string) error {
	parts := strings.SplitN(objectURL, ".amazonaws.com/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("unrecognized object URL: %s", objectURL)
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(parts[1]),
	})
	return err
}

// TimestampedName prefixes a filename so repeated uploads never collide.
func TimestampedName(name string) string {
	return fmt.Sprintf("%d_%s", time.Now().Unix(), name)
}
