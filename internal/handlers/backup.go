// internal/handlers/backup.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendordesk/backend/internal/services"
)

type BackupHandler struct {
	backupService *services.BackupService
	exportService *services.ExportService
}

func NewBackupHandler(backupService *services.BackupService, exportService *services.ExportService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		exportService: exportService,
	}
}

// POST /backup/create
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	result, err := h.backupService.CreateBackup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create backup",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Backup created successfully",
		"backupId":  result.BackupID,
		"timestamp": result.Timestamp,
	})
}

// GET /backup/list
func (h *BackupHandler) ListBackups(c *gin.Context) {
	backups, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to list backups",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"backups": backups,
	})
}

// POST /backup/restore/:backupId
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	restoreJobID, err := h.backupService.RestoreBackup(c.Request.Context(), c.Param("backupId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to restore backup",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Backup restore initiated successfully",
		"restoreJobId": restoreJobID,
	})
}

// GET /backup/export
//
// Returns the full-table snapshot directly; with ?upload=s3 the snapshot is
// pushed to the configured bucket instead and the object key comes back.
func (h *BackupHandler) Export(c *gin.Context) {
	if c.Query("upload") == "s3" {
		key, err := h.exportService.ExportToS3(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to upload export",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "key": key})
		return
	}

	doc, err := h.exportService.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to export purchases",
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}
