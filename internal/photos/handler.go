// Package photos exposes the presigned-URL surface for location photos.
package photos

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"spacedout/internal/storage"
)

const (
	maxFilenameLength = 255
	uploadURLTTL      = 15 * time.Minute
	downloadURLTTL    = time.Hour
)

// Only image types make sense for location photos.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadURLRequest is the request payload for a presigned upload.
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL and the key the client
// should reference afterwards.
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoKey  string `json:"photo_key"`
	ExpiresAt int64  `json:"expires_at"`
}

// DownloadURLRequest is the request payload for a presigned download.
type DownloadURLRequest struct {
	PhotoKey string `json:"photo_key" binding:"required"`
}

// DownloadURLResponse carries the presigned download URL.
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Handler serves the photo endpoints.
type Handler struct {
	storage storage.Service
}

// NewHandler creates the photos handler. storage may be nil when object
// storage is not configured; the endpoints then answer 503.
func NewHandler(storage storage.Service) *Handler {
	return &Handler{storage: storage}
}

// RegisterRoutes mounts the photo routes; all require a session.
func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/locations/:id/photos/upload-url", h.uploadURL)
	authed.POST("/photos/download-url", h.downloadURL)
	authed.DELETE("/photos/*key", h.delete)
}

func (h *Handler) uploadURL(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return
	}

	locationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateFilename(req.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !allowedContentTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("content type %s is not allowed", req.ContentType)})
		return
	}

	key := fmt.Sprintf("locations/%d/%s-%s", locationID, uuid.New().String(), req.Filename)

	url, err := h.storage.PresignUpload(c.Request.Context(), key, req.ContentType, uploadURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate upload url"})
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: url,
		PhotoKey:  key,
		ExpiresAt: time.Now().Add(uploadURLTTL).Unix(),
	})
}

func (h *Handler) downloadURL(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return
	}

	var req DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.storage.PresignDownload(c.Request.Context(), req.PhotoKey, downloadURLTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate download url"})
		return
	}

	c.JSON(http.StatusOK, DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(downloadURLTTL).Unix(),
	})
}

func (h *Handler) delete(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo key is required"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted", "photo_key": key})
}

func validateFilename(filename string) error {
	if len(filename) > maxFilenameLength {
		return fmt.Errorf("filename too long (max %d characters)", maxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}
