package api

import (
	"alcyxob/coach-log/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	sessionService service.SessionService
}

func NewFeedbackHandler(sessionService service.SessionService) *FeedbackHandler {
	return &FeedbackHandler{sessionService: sessionService}
}

// AddFeedbackRequest needs text, a video URL, or both.
type AddFeedbackRequest struct {
	Text     string `json:"text"`
	VideoURL string `json:"videoUrl"`
}

// ListFeedback godoc
// @Summary List feedback, newest first
// @Tags Feedback
// @Produce json
// @Success 200 {array} domain.FeedbackItem
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionService.Feedback())
}

// AddFeedback godoc
// @Summary Leave feedback
// @Description The author is the caller's role; without auth it is the client.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedback body AddFeedbackRequest true "Text and/or video URL"
// @Success 201 {object} domain.FeedbackItem
// @Failure 400 {object} gin.H "Neither text nor video"
// @Router /feedback [post]
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req AddFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	author, _ := getUserRoleFromContext(c)
	item, err := h.sessionService.AddFeedback(c.Request.Context(), author, req.Text, req.VideoURL)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add feedback.")
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}
