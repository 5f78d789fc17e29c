package api

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/metrics"
	"alcyxob/coach-log/internal/repository/file"
	"alcyxob/coach-log/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type testServer struct {
	router  *gin.Engine
	session service.SessionService
	metrics *metrics.Manager
}

func newTestServer(t *testing.T, auth service.AuthService) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, reg := metrics.NewTestManagerAndRegistry()
	repo := file.NewFileBlobRepository(afero.NewMemMapFs(), "data")
	persister := service.NewPersister(repo, "coach_demo_app_v1", time.Second, m)
	sessionService := service.NewSessionService(context.Background(), persister, m,
		service.WithClock(func() time.Time { return testNow }),
	)

	router := gin.New()
	SetupRoutes(router, RouterDeps{
		SessionService: sessionService,
		AuthService:    auth,
		Metrics:        m,
		Gatherer:       reg,
	})
	return &testServer{router: router, session: sessionService, metrics: m}
}

func (s *testServer) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestPingAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "coachlog_test_server_request")
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.CounterRequests.WithLabelValues(http.MethodGet, "200")))
}

func TestGetSession(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodGet, "/api/v1/session", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[SessionResponse](t, rr)
	assert.Equal(t, "p1", resp.Program.ID)
	require.Len(t, resp.Program.Exercises, 5)
	assert.Equal(t, "https://www.youtube.com/embed/IODxDxX7oi4", resp.Program.Exercises[0].EmbedURL)
	assert.Equal(t, "e1", resp.ActiveExercise)
	assert.Equal(t, "2025-03-10", resp.Day)
	assert.Len(t, resp.Feedback, 1)
	assert.Empty(t, resp.Logs)
}

func TestSelectionAndActiveExercise(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPut, "/api/v1/selection/exercise", SelectExerciseRequest{ExerciseID: "e3"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/v1/selection/day", SelectDayRequest{Day: "2025-03-08"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/exercises/active", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "e3", decode[ExerciseResponse](t, rr).ID)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/selection/day", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	snapshot := s.session.Snapshot()
	assert.Equal(t, "2025-03-08", snapshot.SelectedDay)

	// The day is not validated
	rr = s.do(t, http.MethodPut, "/api/v1/selection/day", gin.H{"day": ""}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, s.session.Snapshot().SelectedDay)
}

func TestLogLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/v1/logs", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	first := decode[domain.LogEntry](t, rr)
	assert.Equal(t, 1, first.Set)
	assert.Equal(t, "e1", first.ExerciseID)
	assert.Equal(t, 1.0, first.RIR)

	rr = s.do(t, http.MethodPost, "/api/v1/logs", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 2, decode[domain.LogEntry](t, rr).Set)

	rr = s.do(t, http.MethodPatch, "/api/v1/logs/"+first.ID, gin.H{"weight": 42.5, "reps": 8}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[domain.LogEntry](t, rr)
	assert.Equal(t, 42.5, updated.Weight)
	assert.Equal(t, 8, updated.Reps)
	assert.Equal(t, 1.0, updated.RIR)

	rr = s.do(t, http.MethodGet, "/api/v1/logs", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]domain.LogEntry](t, rr), 2)

	rr = s.do(t, http.MethodGet, "/api/v1/logs?exerciseId=e2&day=2025-03-10", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = s.do(t, http.MethodGet, "/api/v1/exercises/e1/trend", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	trend := decode[[]service.TrendPoint](t, rr)
	require.Len(t, trend, 1)
	assert.Equal(t, 340.0, trend[0].Load)

	rr = s.do(t, http.MethodDelete, "/api/v1/logs/"+first.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, http.MethodDelete, "/api/v1/logs/"+first.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodPatch, "/api/v1/logs/missing", gin.H{"reps": 1}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/logs/"+first.ID, strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/v1/feedback", AddFeedbackRequest{Text: "   "}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CounterRejectedFeedback))

	rr = s.do(t, http.MethodPost, "/api/v1/feedback", AddFeedbackRequest{Text: "Satz 2 war schwer"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	item := decode[domain.FeedbackItem](t, rr)
	assert.Equal(t, domain.RoleClient, item.Author)

	rr = s.do(t, http.MethodGet, "/api/v1/feedback", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]domain.FeedbackItem](t, rr)
	require.Len(t, list, 2)
	assert.Equal(t, item.ID, list[0].ID)
}

func TestExerciseNotesAndEmbed(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(t, http.MethodPut, "/api/v1/exercises/e2/notes", gin.H{"notes": ""}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[ExerciseResponse](t, rr).Notes)

	rr = s.do(t, http.MethodPut, "/api/v1/exercises/e2/notes", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPut, "/api/v1/exercises/nope/notes", gin.H{"notes": "x"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/exercises/e2/embed", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://www.youtube.com/embed/QyX2S-yrQog", decode[map[string]string](t, rr)["embedUrl"])

	rr = s.do(t, http.MethodGet, "/api/v1/exercises/nope/embed", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Media routes are not registered without a bucket
	rr = s.do(t, http.MethodPost, "/api/v1/media/upload-url", UploadURLRequest{ContentType: "video/mp4"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuthEnabled(t *testing.T) {
	coachHash, err := service.HashPIN("4711")
	require.NoError(t, err)
	clientHash, err := service.HashPIN("1234")
	require.NoError(t, err)
	auth := service.NewAuthService("test-secret", time.Hour, map[domain.Role]string{
		domain.RoleCoach:  coachHash,
		domain.RoleClient: clientHash,
	})
	s := newTestServer(t, auth)

	rr := s.do(t, http.MethodGet, "/api/v1/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = s.do(t, http.MethodGet, "/api/v1/session", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Role: domain.RoleCoach, PIN: "0000"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"role": "admin", "pin": "4711"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Role: domain.RoleClient, PIN: "1234"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	clientToken := decode[LoginResponse](t, rr).Token

	rr = s.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Role: domain.RoleCoach, PIN: "4711"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	coachToken := decode[LoginResponse](t, rr).Token

	rr = s.do(t, http.MethodGet, "/api/v1/session", nil, clientToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPut, "/api/v1/exercises/e1/notes", gin.H{"notes": "mehr Pause"}, clientToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(t, http.MethodPut, "/api/v1/exercises/e1/notes", gin.H{"notes": "mehr Pause"}, coachToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/feedback", AddFeedbackRequest{Text: "Gut gemacht"}, coachToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, domain.RoleCoach, decode[domain.FeedbackItem](t, rr).Author)
}
