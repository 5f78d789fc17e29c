package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActiveExercise(t *testing.T) {
	s := DefaultSession(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	s.ActiveExerciseID = "e3"
	ex, ok := s.ResolveActiveExercise()
	require.True(t, ok)
	assert.Equal(t, "Lat Pulldown", ex.Name)

	s.ActiveExerciseID = "gone"
	ex, ok = s.ResolveActiveExercise()
	require.True(t, ok)
	assert.Equal(t, "e1", ex.ID)

	s.Program.Exercises = nil
	_, ok = s.ResolveActiveExercise()
	assert.False(t, ok)
}

func TestDefaultSession(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	s := DefaultSession(now)

	assert.Equal(t, "p1", s.Program.ID)
	assert.Len(t, s.Program.Exercises, 5)
	assert.Equal(t, "e1", s.ActiveExerciseID)
	assert.Equal(t, "2025-03-10", s.SelectedDay)
	assert.NotNil(t, s.Logs)
	assert.Empty(t, s.Logs)
	require.Len(t, s.Feedback, 1)
	assert.Equal(t, RoleCoach, s.Feedback[0].Author)
}

func TestSessionClone(t *testing.T) {
	s := DefaultSession(time.Now())
	s.Logs = append(s.Logs, LogEntry{ID: "a", ExerciseID: "e1", Set: 1})

	c := s.Clone()
	c.Logs[0].Weight = 100
	c.Program.Exercises[0].Notes = "changed"
	c.Feedback[0].Text = "changed"

	assert.Zero(t, s.Logs[0].Weight)
	assert.NotEqual(t, "changed", s.Program.Exercises[0].Notes)
	assert.NotEqual(t, "changed", s.Feedback[0].Text)
}

func TestLogPatchApply(t *testing.T) {
	entry := LogEntry{ID: "a", Date: "2025-03-10", ExerciseID: "e1", Set: 2, Weight: 20, Reps: 8, RIR: 1}

	weight := 22.5
	rir := 0.0
	LogPatch{Weight: &weight, RIR: &rir}.Apply(&entry)

	assert.Equal(t, LogEntry{ID: "a", Date: "2025-03-10", ExerciseID: "e1", Set: 2, Weight: 22.5, Reps: 8, RIR: 0}, entry)
	assert.Equal(t, 180.0, entry.Load())

	LogPatch{}.Apply(&entry)
	assert.Equal(t, 22.5, entry.Weight)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCoach.Valid())
	assert.True(t, RoleClient.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid())
}
