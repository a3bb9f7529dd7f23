package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/domain/entities"
	"github.com/meetinglens/meetinglens/pkg/config"
)

// ReportArchive stores finished reports as JSON objects in S3-compatible
// object storage under reports/<session_id>.json.
type ReportArchive struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewReportArchive connects to the object store and ensures the bucket exists.
func NewReportArchive(cfg *config.StorageConfig, logger *zap.Logger) (*ReportArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
		logger.Info("storage.bucket_created", zap.String("bucket", cfg.BucketName))
	}

	return &ReportArchive{client: client, bucket: cfg.BucketName, logger: logger}, nil
}

// ArchiveReport uploads the report JSON.
func (a *ReportArchive) ArchiveReport(ctx context.Context, report *entities.MeetingReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return apperrors.ErrStorageFailed("encode report", err)
	}

	objectName := fmt.Sprintf("reports/%s.json", report.SessionID)
	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(b), int64(len(b)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return apperrors.ErrStorageFailed("upload report", err)
	}

	a.logger.Info("storage.report_archived",
		zap.String("bucket", a.bucket),
		zap.String("object", objectName),
		zap.Int("size_bytes", len(b)),
	)
	return nil
}

// FetchReport retrieves an archived report by session id.
func (a *ReportArchive) FetchReport(ctx context.Context, sessionID string) (*entities.MeetingReport, error) {
	objectName := fmt.Sprintf("reports/%s.json", sessionID)
	obj, err := a.client.GetObject(ctx, a.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperrors.ErrStorageFailed("fetch report", err)
	}
	defer obj.Close()

	var report entities.MeetingReport
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, apperrors.ErrStorageFailed("decode report", err)
	}
	return &report, nil
}
