package domain

// Exercise is one movement in a program.
type Exercise struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	RepRange string `json:"repRange" yaml:"repRange"`                     // Display string, e.g. "6–8"
	Sets     int    `json:"sets" yaml:"sets"`                             // Target set count
	VideoURL string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"` // Technique video (watch URL)
	Notes    string `json:"notes" yaml:"notes"`                           // Coach notes, committed on blur
}

// Program is the ordered set of exercises a coach assigns to a client.
// Exercise order is display order.
type Program struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Phase     string     `json:"phase" yaml:"phase"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

// FindExercise returns the index of the exercise with the given id, or -1.
func (p *Program) FindExercise(id string) int {
	for i := range p.Exercises {
		if p.Exercises[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with p.
func (p Program) Clone() Program {
	out := p
	out.Exercises = append([]Exercise(nil), p.Exercises...)
	return out
}
