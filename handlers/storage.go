package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"clinicore/models"
	"clinicore/services/records"
	"clinicore/services/storage"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler exposes document upload and download endpoints for
// intake attachments.
type StorageHandler struct {
	Storage storage.StorageService
	Records records.RecordService
}

// UploadAttachmentHandler handles POST /records/intake/:id/attachments.
// The multipart file is encrypted before upload and linked to the form.
func (h *StorageHandler) UploadAttachmentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	formID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart 'file' field"})
		return
	}

	tempPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		logger.Error("Failed to buffer upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to receive file"})
		return
	}
	defer os.Remove(tempPath)

	publicID, err := h.Storage.UploadEncryptedFile(c.Request.Context(), tempPath, "intake/"+formID)
	if err != nil {
		logger.Error("Failed to upload attachment", zap.String("formId", formID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	form, err := h.Records.AttachDocument(formID, models.Attachment{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		URL:         publicID,
		SizeBytes:   fileHeader.Size,
	})
	if err != nil {
		// Don't leave an orphaned upload behind.
		if delErr := h.Storage.DeleteFile(c.Request.Context(), publicID); delErr != nil {
			logger.Warn("Failed to clean up orphaned upload", zap.String("publicId", publicID), zap.Error(delErr))
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, form)
}

// AttachmentURLHandler handles GET /records/intake/:id/attachments/:attachmentId/url.
// Returns a signed, short-lived download URL.
func (h *StorageHandler) AttachmentURLHandler(c *gin.Context) {
	form, err := h.Records.GetIntake(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	attachmentID := c.Param("attachmentId")
	for _, att := range form.Attachments {
		if att.ID == attachmentID {
			url, err := h.Storage.GetSecureDownloadURL(c.Request.Context(), "raw", att.URL, 15*time.Minute)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": url, "expiresInSeconds": 900})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
}
