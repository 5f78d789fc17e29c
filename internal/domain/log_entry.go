package domain

// LogEntry is one recorded set performed by the client on a given day.
type LogEntry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`       // ISO calendar day, YYYY-MM-DD
	ExerciseID string  `json:"exerciseId"` // References Program.Exercises
	Set        int     `json:"set"`        // 1-based, assigned at creation and never renumbered
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	RIR        float64 `json:"rir"` // Reps in reserve
}

// Load is the single-set load used for progression (weight x reps).
func (l LogEntry) Load() float64 {
	return l.Weight * float64(l.Reps)
}

// LogPatch carries the fields of a partial log update. Nil fields are left untouched.
type LogPatch struct {
	Date       *string  `json:"date,omitempty"`
	ExerciseID *string  `json:"exerciseId,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	RIR        *float64 `json:"rir,omitempty"`
}

// Apply merges the patch into l.
func (p LogPatch) Apply(l *LogEntry) {
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.ExerciseID != nil {
		l.ExerciseID = *p.ExerciseID
	}
	if p.Weight != nil {
		l.Weight = *p.Weight
	}
	if p.Reps != nil {
		l.Reps = *p.Reps
	}
	if p.RIR != nil {
		l.RIR = *p.RIR
	}
}
