package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// PlanPublisher writes the current plan to S3-compatible storage so the
// kitchen display can read it. Each publish overwrites the same object.
type PlanPublisher struct {
	client     *minio.Client
	bucketName string
	region     string
	objectKey  string
}

// UploadResult contains information about an uploaded plan
type UploadResult struct {
	Bucket       string `json:"bucket"`
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	ETag         string `json:"etag"`
	PresignedURL string `json:"url,omitempty"`
}

// NewPlanPublisher creates a new S3 plan publisher
func NewPlanPublisher(endpoint, accessKey, secretKey, bucketName, region, objectKey string, useSSL bool) (*PlanPublisher, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &PlanPublisher{
		client:     client,
		bucketName: bucketName,
		region:     region,
		objectKey:  objectKey,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (p *PlanPublisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = p.client.MakeBucket(ctx, p.bucketName, minio.MakeBucketOptions{
			Region: p.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// encodePlan renders the published document
func encodePlan(plan *models.Plan, publishedAt time.Time) ([]byte, error) {
	doc := struct {
		PublishedAt time.Time    `json:"published_at"`
		Plan        *models.Plan `json:"plan"`
	}{
		PublishedAt: publishedAt.UTC(),
		Plan:        plan,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Publish uploads the plan and returns a presigned download URL
func (p *PlanPublisher) Publish(ctx context.Context, plan *models.Plan, expiry time.Duration) (*UploadResult, error) {
	body, err := encodePlan(plan, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	info, err := p.client.PutObject(ctx, p.bucketName, p.objectKey, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:  "application/json",
		CacheControl: "no-cache",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload plan: %w", err)
	}

	url, err := p.client.PresignedGetObject(ctx, p.bucketName, p.objectKey, expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &UploadResult{
		Bucket:       info.Bucket,
		Key:          info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		PresignedURL: url.String(),
	}, nil
}

// GetBucketName returns the bucket name
func (p *PlanPublisher) GetBucketName() string {
	return p.bucketName
}
