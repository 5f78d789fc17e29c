package service

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/metrics"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrEmptyFeedback    = errors.New("feedback needs text or a video")
	ErrInvalidAuthor    = errors.New("feedback author must be coach or client")
	ErrLogNotFound      = errors.New("log entry not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Default set values for a freshly added log row.
const defaultRIR = 1

// SessionService owns the session aggregate. Every mutation runs under one
// lock and is followed by a save of the whole aggregate.
type SessionService interface {
	// Read side
	Snapshot() domain.Session
	ActiveExercise() (domain.Exercise, bool)
	LogsFor(exerciseID, day string) []domain.LogEntry
	Feedback() []domain.FeedbackItem
	Trend(exerciseID string) []TrendPoint

	// Selection
	SelectExercise(ctx context.Context, exerciseID string)
	SelectDay(ctx context.Context, day string)

	// Set logs
	AddSetLog(ctx context.Context) domain.LogEntry
	UpdateLog(ctx context.Context, logID string, patch domain.LogPatch) (domain.LogEntry, error)
	RemoveLog(ctx context.Context, logID string) error

	// Feedback and coach notes
	AddFeedback(ctx context.Context, author domain.Role, text, videoURL string) (domain.FeedbackItem, error)
	SetExerciseNotes(ctx context.Context, exerciseID, notes string) (domain.Exercise, error)
}

// Option customises a session service.
type Option func(*sessionService)

// WithClock replaces time.Now for timestamps and the default day.
func WithClock(now func() time.Time) Option {
	return func(s *sessionService) { s.now = now }
}

// WithSeedProgram starts fresh sessions from program instead of the built-in seed.
func WithSeedProgram(program domain.Program) Option {
	return func(s *sessionService) { s.seed = &program }
}

// WithIDGenerator replaces the UUID generator for log and feedback ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *sessionService) { s.newID = newID }
}

// sessionService implements the SessionService interface.
type sessionService struct {
	mu        sync.Mutex
	session   domain.Session
	persister *Persister
	metrics   *metrics.Manager
	now       func() time.Time
	newID     func() string
	seed      *domain.Program
}

// NewSessionService restores the session from the persister, falling back to
// the seed program and default feedback when nothing usable is stored.
func NewSessionService(ctx context.Context, persister *Persister, m *metrics.Manager, opts ...Option) SessionService {
	s := &sessionService{
		persister: persister,
		metrics:   m,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	defaults := domain.DefaultSession(s.now())
	if s.seed != nil {
		defaults = domain.NewSession(s.seed.Clone(), s.now())
	}
	session, restored := persister.Load(ctx, defaults)
	if restored {
		log.Infof("session restored: %d logs, %d feedback items", len(session.Logs), len(session.Feedback))
	} else {
		log.Infoln("no stored session, starting from seed program")
	}
	// Blobs written before entries had ids carry none; give them one so they can be addressed.
	backfilled := 0
	for i := range session.Logs {
		if session.Logs[i].ID == "" {
			session.Logs[i].ID = s.newID()
			backfilled++
		}
	}
	s.session = session
	s.metrics.GaugeLogEntries.Set(float64(len(session.Logs)))
	if backfilled > 0 {
		// Write the ids back so they survive the next restart.
		log.Infof("assigned ids to %d stored log entries", backfilled)
		s.persister.Save(ctx, s.session)
	}
	return s
}

// commit must be called with mu held.
func (s *sessionService) commit(ctx context.Context, op string) {
	s.metrics.CounterMutations.WithLabelValues(op).Inc()
	s.metrics.GaugeLogEntries.Set(float64(len(s.session.Logs)))
	s.persister.Save(ctx, s.session)
}

// === Read side ===

// Snapshot returns a deep copy with the active exercise resolved to an existing one.
func (s *sessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.session.Clone()
	if active, ok := out.ResolveActiveExercise(); ok {
		out.ActiveExerciseID = active.ID
	}
	return out
}

func (s *sessionService) ActiveExercise() (domain.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.ResolveActiveExercise()
}

// LogsFor returns the entries for one exercise and day in insertion order.
func (s *sessionService) LogsFor(exerciseID, day string) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.LogEntry{}
	for _, l := range s.session.Logs {
		if l.ExerciseID == exerciseID && l.Date == day {
			out = append(out, l)
		}
	}
	return out
}

func (s *sessionService) Feedback() []domain.FeedbackItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.FeedbackItem{}, s.session.Feedback...)
}

func (s *sessionService) Trend(exerciseID string) []TrendPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTrend(s.session.Logs, exerciseID)
}

// === Selection ===

// SelectExercise does not check the id; the UI only offers existing exercises.
func (s *sessionService) SelectExercise(ctx context.Context, exerciseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ActiveExerciseID = exerciseID
	s.commit(ctx, "select_exercise")
}

// SelectDay accepts any string; the date widget only produces YYYY-MM-DD.
func (s *sessionService) SelectDay(ctx context.Context, day string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SelectedDay = day
	s.commit(ctx, "select_day")
}

// === Set logs ===

// AddSetLog appends an empty set for the active exercise and selected day.
// The set number is the current count for that pair plus one; it is never
// renumbered afterwards.
func (s *sessionService) AddSetLog(ctx context.Context) domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	exerciseID := s.session.ActiveExerciseID
	if active, ok := s.session.ResolveActiveExercise(); ok {
		exerciseID = active.ID
	}
	day := s.session.SelectedDay

	n := 0
	for _, l := range s.session.Logs {
		if l.ExerciseID == exerciseID && l.Date == day {
			n++
		}
	}

	entry := domain.LogEntry{
		ID:         s.newID(),
		Date:       day,
		ExerciseID: exerciseID,
		Set:        n + 1,
		Weight:     0,
		Reps:       0,
		RIR:        defaultRIR,
	}
	s.session.Logs = append(s.session.Logs, entry)
	s.commit(ctx, "add_set_log")
	return entry
}

func (s *sessionService) findLog(logID string) int {
	for i := range s.session.Logs {
		if s.session.Logs[i].ID == logID {
			return i
		}
	}
	return -1
}

// UpdateLog merges patch into the entry with logID. Values are not range-checked.
func (s *sessionService) UpdateLog(ctx context.Context, logID string, patch domain.LogPatch) (domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLog(logID)
	if i < 0 {
		return domain.LogEntry{}, ErrLogNotFound
	}
	patch.Apply(&s.session.Logs[i])
	updated := s.session.Logs[i]
	s.commit(ctx, "update_log")
	return updated, nil
}

// RemoveLog deletes the entry. Remaining set numbers are left as they are,
// so a day can end up with gaps (1, 3).
func (s *sessionService) RemoveLog(ctx context.Context, logID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLog(logID)
	if i < 0 {
		return ErrLogNotFound
	}
	s.session.Logs = append(s.session.Logs[:i:i], s.session.Logs[i+1:]...)
	s.commit(ctx, "remove_log")
	return nil
}

// === Feedback and coach notes ===

// AddFeedback prepends a new item. An empty author means the client.
func (s *sessionService) AddFeedback(ctx context.Context, author domain.Role, text, videoURL string) (domain.FeedbackItem, error) {
	if author == "" {
		author = domain.RoleClient
	}
	if !author.Valid() {
		return domain.FeedbackItem{}, multierr.Combine(ErrValidationFailed, ErrInvalidAuthor)
	}
	if strings.TrimSpace(text) == "" && videoURL == "" {
		s.metrics.CounterRejectedFeedback.Inc()
		return domain.FeedbackItem{}, multierr.Combine(ErrValidationFailed, ErrEmptyFeedback)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.FeedbackItem{
		ID:       s.newID(),
		Author:   author,
		Text:     text,
		VideoURL: videoURL,
		TS:       s.now().UTC(),
	}
	s.session.Feedback = append([]domain.FeedbackItem{item}, s.session.Feedback...)
	s.commit(ctx, "add_feedback")
	return item, nil
}

// SetExerciseNotes replaces the coach notes of one exercise.
func (s *sessionService) SetExerciseNotes(ctx context.Context, exerciseID, notes string) (domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.session.Program.FindExercise(exerciseID)
	if i < 0 {
		return domain.Exercise{}, ErrExerciseNotFound
	}
	s.session.Program.Exercises[i].Notes = notes
	s.commit(ctx, "set_exercise_notes")
	return s.session.Program.Exercises[i], nil
}
