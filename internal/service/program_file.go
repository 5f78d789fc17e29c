package service

import (
	"alcyxob/coach-log/internal/domain"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrInvalidProgram = errors.New("invalid program")

// LoadProgramFile reads a coach-authored program from a YAML file. It
// replaces the built-in seed for sessions that have nothing stored yet.
func LoadProgramFile(fs afero.Fs, path string) (domain.Program, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return domain.Program{}, fmt.Errorf("read program file: %w", err)
	}

	var program domain.Program
	if err := yaml.Unmarshal(data, &program); err != nil {
		return domain.Program{}, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	if err := validateProgram(program); err != nil {
		return domain.Program{}, err
	}
	return program, nil
}

func validateProgram(p domain.Program) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProgram)
	}
	if len(p.Exercises) == 0 {
		return fmt.Errorf("%w: no exercises", ErrInvalidProgram)
	}
	seen := make(map[string]bool, len(p.Exercises))
	for i, ex := range p.Exercises {
		if ex.ID == "" {
			return fmt.Errorf("%w: exercise %d has no id", ErrInvalidProgram, i+1)
		}
		if seen[ex.ID] {
			return fmt.Errorf("%w: duplicate exercise id %q", ErrInvalidProgram, ex.ID)
		}
		if ex.Sets < 0 {
			return fmt.Errorf("%w: exercise %q has negative sets", ErrInvalidProgram, ex.ID)
		}
		seen[ex.ID] = true
	}
	return nil
}
