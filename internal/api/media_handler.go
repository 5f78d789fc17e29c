package api

import (
	"alcyxob/coach-log/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"` // e.g. "video/mp4"
}

// RequestUploadURL godoc
// @Summary Get a presigned URL to upload a feedback video
// @Description The returned objectKey is what goes into the feedback videoUrl after the upload.
// @Tags Media
// @Accept json
// @Produce json
// @Param request body UploadURLRequest true "Video content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 400 {object} gin.H "Invalid content type"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /media/upload-url [post]
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.mediaService.RequestUploadURL(c.Request.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDownloadURL returns a presigned URL for a feedback video object key.
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required.")
		return
	}

	url, err := h.mediaService.DownloadURL(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrInvalidObjectKey) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
