package domain

// Session is the whole persisted aggregate. The JSON keys match the blob
// layout written by earlier versions of the app, so old blobs keep loading.
type Session struct {
	Program          Program        `json:"program"`
	Logs             []LogEntry     `json:"logs"`
	Feedback         []FeedbackItem `json:"feedback"` // Newest first
	ActiveExerciseID string         `json:"activeExercise"`
	SelectedDay      string         `json:"day"` // YYYY-MM-DD
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	out := s
	out.Program = s.Program.Clone()
	out.Logs = append([]LogEntry{}, s.Logs...)
	out.Feedback = append([]FeedbackItem{}, s.Feedback...)
	return out
}

// ResolveActiveExercise returns the exercise the session points at. An id that
// no longer exists in the program falls back to the first exercise.
func (s *Session) ResolveActiveExercise() (Exercise, bool) {
	if i := s.Program.FindExercise(s.ActiveExerciseID); i >= 0 {
		return s.Program.Exercises[i], true
	}
	if len(s.Program.Exercises) > 0 {
		return s.Program.Exercises[0], true
	}
	return Exercise{}, false
}
