// internal/services/export_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/config"
)

// ExportService produces a full-table JSON snapshot of the purchase records,
// the same document the admin UI builds for its download button. With AWS
// credentials configured the snapshot can also be pushed to S3.
type ExportService struct {
	purchases *PurchaseService
	s3Client  *s3.S3
	cfg       *config.Config
}

type ExportDocument struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Count      int                 `json:"count"`
	Purchases  []*PurchaseResponse `json:"purchases"`
}

func NewExportService(purchases *PurchaseService, cfg *config.Config) (*ExportService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local-only exports without S3 for development
		return &ExportService{purchases: purchases, cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ExportService{
		purchases: purchases,
		s3Client:  s3.New(sess),
		cfg:       cfg,
	}, nil
}

func (s *ExportService) Export(ctx context.Context) (*ExportDocument, error) {
	purchases, err := s.purchases.List()
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		ExportedAt: time.Now().UTC(),
		Count:      len(purchases),
		Purchases:  purchases,
	}, nil
}

// ExportToS3 uploads the current snapshot and returns its object key.
func (s *ExportService) ExportToS3(ctx context.Context) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 export is not configured")
	}

	doc, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/purchases-%s-%s.json",
		backupTimestamp(doc.ExportedAt), uuid.New().String()[:8])

	_, err = s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(string(data)),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logrus.WithError(err).Error("Export upload failed")
		return "", &apperrors.ExternalError{Op: "export to s3", Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"key":   key,
		"count": doc.Count,
	}).Info("Export uploaded")

	return key, nil
}
