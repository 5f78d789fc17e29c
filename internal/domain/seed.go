package domain

import "time"

// DayLayout is the calendar-day format used for LogEntry.Date and Session.SelectedDay.
const DayLayout = "2006-01-02"

// SeedProgram is the built-in program used when nothing has been persisted yet.
func SeedProgram() Program {
	return Program{
		ID:    "p1",
		Title: "Upper Body – Hypertrophy",
		Phase: "Block A (6–8 Wdh)",
		Exercises: []Exercise{
			{ID: "e1", Name: "Chest Press Machine", RepRange: "6–8", Sets: 2, VideoURL: "https://www.youtube.com/watch?v=IODxDxX7oi4", Notes: "Scapula stabil, volle ROM, 1–2 RIR"},
			{ID: "e2", Name: "T-Bar Row", RepRange: "6–9", Sets: 2, VideoURL: "https://www.youtube.com/watch?v=QyX2S-yrQog", Notes: "Ellenbogen führen, Oberer Rücken zielen"},
			{ID: "e3", Name: "Lat Pulldown", RepRange: "8–10", Sets: 2, VideoURL: "https://www.youtube.com/watch?v=CAwf7n6Luuc", Notes: "Schulter unten, Lats ansteuern"},
			{ID: "e4", Name: "Lateral Raise Machine", RepRange: "10–12", Sets: 2, VideoURL: "https://www.youtube.com/watch?v=3VcKaXpzqRo", Notes: "Konstante Spannung, kein Schwung"},
			{ID: "e5", Name: "Preacher Curl", RepRange: "8–12", Sets: 2, VideoURL: "https://www.youtube.com/watch?v=gUy7z9B9J6Y", Notes: "Vorderes Delt ruhig, volle Dehnung"},
		},
	}
}

// DefaultFeedback is the single coach note a fresh session starts with.
func DefaultFeedback(now time.Time) []FeedbackItem {
	return []FeedbackItem{
		{ID: "f1", Author: RoleCoach, Text: "Sieht solide aus. Tempo in der Exzentrik kontrollieren.", TS: now.UTC()},
	}
}

// DefaultSession builds the in-memory defaults: seed program, no logs,
// default feedback, first exercise active and today selected.
func DefaultSession(now time.Time) Session {
	return NewSession(SeedProgram(), now)
}

// NewSession is DefaultSession for a program other than the built-in one.
func NewSession(program Program, now time.Time) Session {
	var active string
	if len(program.Exercises) > 0 {
		active = program.Exercises[0].ID
	}
	return Session{
		Program:          program,
		Logs:             []LogEntry{},
		Feedback:         DefaultFeedback(now),
		ActiveExerciseID: active,
		SelectedDay:      now.UTC().Format(DayLayout),
	}
}
