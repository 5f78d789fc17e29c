package api

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the session snapshot, selection and exercise views.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse adds the embeddable player URL to an exercise.
type ExerciseResponse struct {
	domain.Exercise
	EmbedURL string `json:"embedUrl,omitempty"`
}

type ProgramResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Phase     string             `json:"phase"`
	Exercises []ExerciseResponse `json:"exercises"`
}

type SessionResponse struct {
	Program        ProgramResponse       `json:"program"`
	Logs           []domain.LogEntry     `json:"logs"`
	Feedback       []domain.FeedbackItem `json:"feedback"`
	ActiveExercise string                `json:"activeExercise"`
	Day            string                `json:"day"`
}

type SelectExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// SelectDayRequest is not validated; the date picker only sends YYYY-MM-DD.
type SelectDayRequest struct {
	Day string `json:"day"`
}

type SetNotesRequest struct {
	Notes *string `json:"notes" binding:"required"` // Pointer so an empty string clears the notes
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex domain.Exercise) ExerciseResponse {
	resp := ExerciseResponse{Exercise: ex}
	if ex.VideoURL != "" {
		resp.EmbedURL = service.EmbedURL(ex.VideoURL)
	}
	return resp
}

// MapSessionToResponse converts a session snapshot to its DTO.
func MapSessionToResponse(s domain.Session) SessionResponse {
	exercises := make([]ExerciseResponse, len(s.Program.Exercises))
	for i, ex := range s.Program.Exercises {
		exercises[i] = MapExerciseToResponse(ex)
	}
	return SessionResponse{
		Program: ProgramResponse{
			ID:        s.Program.ID,
			Title:     s.Program.Title,
			Phase:     s.Program.Phase,
			Exercises: exercises,
		},
		Logs:           s.Logs,
		Feedback:       s.Feedback,
		ActiveExercise: s.ActiveExerciseID,
		Day:            s.SelectedDay,
	}
}

// --- Handler Methods ---

// GetSession godoc
// @Summary Get the full session
// @Tags Session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, MapSessionToResponse(h.sessionService.Snapshot()))
}

// GetActiveExercise godoc
// @Summary Get the selected exercise
// @Tags Exercises
// @Produce json
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Program has no exercises"
// @Router /exercises/active [get]
func (h *SessionHandler) GetActiveExercise(c *gin.Context) {
	ex, ok := h.sessionService.ActiveExercise()
	if !ok {
		abortWithError(c, http.StatusNotFound, "Program has no exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(ex))
}

// SelectExercise godoc
// @Summary Select the active exercise
// @Tags Session
// @Accept json
// @Produce json
// @Param selection body SelectExerciseRequest true "Exercise to select"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid input"
// @Router /selection/exercise [put]
func (h *SessionHandler) SelectExercise(c *gin.Context) {
	var req SelectExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.sessionService.SelectExercise(c.Request.Context(), req.ExerciseID)
	c.JSON(http.StatusOK, gin.H{"activeExercise": req.ExerciseID})
}

// SelectDay godoc
// @Summary Select the calendar day
// @Tags Session
// @Accept json
// @Produce json
// @Param selection body SelectDayRequest true "Day to select (YYYY-MM-DD)"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Invalid input"
// @Router /selection/day [put]
func (h *SessionHandler) SelectDay(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.sessionService.SelectDay(c.Request.Context(), req.Day)
	c.JSON(http.StatusOK, gin.H{"day": req.Day})
}

// GetTrend godoc
// @Summary Progression of an exercise
// @Description Best single-set load (weight x reps) per day, oldest first.
// @Tags Exercises
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {array} service.TrendPoint
// @Router /exercises/{exerciseId}/trend [get]
func (h *SessionHandler) GetTrend(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionService.Trend(c.Param("exerciseId")))
}

// GetEmbed godoc
// @Summary Embeddable video URL of an exercise
// @Description Turns the technique video watch URL into its player URL.
// @Tags Exercises
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} gin.H "videoUrl and embedUrl"
// @Failure 404 {object} gin.H "Exercise not found or has no video"
// @Router /exercises/{exerciseId}/embed [get]
func (h *SessionHandler) GetEmbed(c *gin.Context) {
	snapshot := h.sessionService.Snapshot()
	i := snapshot.Program.FindExercise(c.Param("exerciseId"))
	if i < 0 {
		abortWithError(c, http.StatusNotFound, service.ErrExerciseNotFound.Error())
		return
	}
	ex := snapshot.Program.Exercises[i]
	if ex.VideoURL == "" {
		abortWithError(c, http.StatusNotFound, "Exercise has no video.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"videoUrl": ex.VideoURL, "embedUrl": service.EmbedURL(ex.VideoURL)})
}

// SetExerciseNotes godoc
// @Summary Replace the coach notes of an exercise
// @Description Called once when the notes editor loses focus, not per keystroke.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param notes body SetNotesRequest true "New notes"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (not the coach)"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/notes [put]
func (h *SessionHandler) SetExerciseNotes(c *gin.Context) {
	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ex, err := h.sessionService.SetExerciseNotes(c.Request.Context(), c.Param("exerciseId"), *req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update notes.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(ex))
}
