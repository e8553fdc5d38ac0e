// internal/services/backup_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/config"
)

// BackupService forwards create/list/restore calls to the managed-database
// backup API. It keeps no local state: every call is a single request whose
// outcome is returned to the caller, logged and never retried.
type BackupService struct {
	cfg        config.BackupConfig
	httpClient *http.Client
}

func NewBackupService(cfg config.BackupConfig) *BackupService {
	return &BackupService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type BackupResult struct {
	BackupID  string `json:"backupId"`
	Timestamp string `json:"timestamp"`
}

type BackupInfo struct {
	ID          string `json:"id"`
	CreatedAt   int64  `json:"createdAt"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type createBackupPayload struct {
	Description     string `json:"description"`
	RetentionInDays int    `json:"retentionInDays"`
}

type restorePayload struct {
	BackupID          string `json:"backupId"`
	TargetClusterName string `json:"targetClusterName"`
	TargetGroupID     string `json:"targetGroupId"`
}

type backupAPIResponse struct {
	ID      string `json:"id"`
	Results []struct {
		ID          string `json:"id"`
		Created     string `json:"created"`
		Description string `json:"description"`
		Status      string `json:"status"`
	} `json:"results"`
}

func (s *BackupService) clusterURL(suffix string) string {
	return fmt.Sprintf("%s/groups/%s/clusters/%s/%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.ProjectID, s.cfg.ClusterName, suffix)
}

// CreateBackup requests a new backup with a timestamped description and a
// fixed 7-day retention window.
func (s *BackupService) CreateBackup(ctx context.Context) (*BackupResult, error) {
	timestamp := backupTimestamp(time.Now().UTC())

	payload := createBackupPayload{
		Description:     fmt.Sprintf("Manual backup %s", timestamp),
		RetentionInDays: 7,
	}

	var resp backupAPIResponse
	if err := s.do(ctx, http.MethodPost, s.clusterURL("backup"), payload, &resp); err != nil {
		logrus.WithError(err).Error("Backup creation failed")
		return nil, &apperrors.ExternalError{Op: "create backup", Err: err}
	}

	return &BackupResult{BackupID: resp.ID, Timestamp: timestamp}, nil
}

// ListBackups returns every backup known to the external service.
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	var resp backupAPIResponse
	if err := s.do(ctx, http.MethodGet, s.clusterURL("backup"), nil, &resp); err != nil {
		logrus.WithError(err).Error("Failed to list backups")
		return nil, &apperrors.ExternalError{Op: "list backups", Err: err}
	}

	backups := make([]BackupInfo, 0, len(resp.Results))
	for _, b := range resp.Results {
		backups = append(backups, BackupInfo{
			ID:          b.ID,
			CreatedAt:   parseCreatedMillis(b.Created),
			Description: b.Description,
			Status:      b.Status,
		})
	}
	return backups, nil
}

// RestoreBackup initiates a restore of the given backup into the same
// cluster and returns the external restore-job id. The job runs on the
// provider's side; there is no cancellation once the id is returned.
func (s *BackupService) RestoreBackup(ctx context.Context, backupID string) (string, error) {
	payload := restorePayload{
		BackupID:          backupID,
		TargetClusterName: s.cfg.ClusterName,
		TargetGroupID:     s.cfg.ProjectID,
	}

	var resp backupAPIResponse
	if err := s.do(ctx, http.MethodPost, s.clusterURL("restore"), payload, &resp); err != nil {
		logrus.WithError(err).WithField("backup_id", backupID).Error("Restore failed")
		return "", &apperrors.ExternalError{Op: "restore backup", Err: err}
	}

	return resp.ID, nil
}

func (s *BackupService) do(ctx context.Context, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backup service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// backupTimestamp renders an ISO timestamp with ':' and '.' replaced so it is
// safe inside descriptions and object keys, e.g. 2026-01-02T15-04-05-000Z.
func backupTimestamp(t time.Time) string {
	iso := t.Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}

func parseCreatedMillis(created string) int64 {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
