package api

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LogHandler manages set log rows.
type LogHandler struct {
	sessionService service.SessionService
}

func NewLogHandler(sessionService service.SessionService) *LogHandler {
	return &LogHandler{sessionService: sessionService}
}

// ListLogs godoc
// @Summary List set logs for an exercise and day
// @Description Defaults to the selected exercise and day.
// @Tags Logs
// @Produce json
// @Param exerciseId query string false "Exercise ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {array} domain.LogEntry
// @Router /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	exerciseID := c.Query("exerciseId")
	day := c.Query("day")
	if exerciseID == "" || day == "" {
		snapshot := h.sessionService.Snapshot()
		if exerciseID == "" {
			exerciseID = snapshot.ActiveExerciseID
		}
		if day == "" {
			day = snapshot.SelectedDay
		}
	}
	c.JSON(http.StatusOK, h.sessionService.LogsFor(exerciseID, day))
}

// AddLog godoc
// @Summary Add a set for the selected exercise and day
// @Tags Logs
// @Produce json
// @Success 201 {object} domain.LogEntry
// @Router /logs [post]
func (h *LogHandler) AddLog(c *gin.Context) {
	entry := h.sessionService.AddSetLog(c.Request.Context())
	c.JSON(http.StatusCreated, entry)
}

// UpdateLog godoc
// @Summary Patch a set log
// @Tags Logs
// @Accept json
// @Produce json
// @Param logId path string true "Log entry ID"
// @Param patch body domain.LogPatch true "Fields to change"
// @Success 200 {object} domain.LogEntry
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Log entry not found"
// @Router /logs/{logId} [patch]
func (h *LogHandler) UpdateLog(c *gin.Context) {
	var patch domain.LogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.sessionService.UpdateLog(c.Request.Context(), c.Param("logId"), patch)
	if err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update log entry.")
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RemoveLog godoc
// @Summary Delete a set log
// @Description Other set numbers of the same day are not renumbered.
// @Tags Logs
// @Param logId path string true "Log entry ID"
// @Success 204
// @Failure 404 {object} gin.H "Log entry not found"
// @Router /logs/{logId} [delete]
func (h *LogHandler) RemoveLog(c *gin.Context) {
	if err := h.sessionService.RemoveLog(c.Request.Context(), c.Param("logId")); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete log entry.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
