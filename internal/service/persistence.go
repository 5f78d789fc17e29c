package service

import (
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/metrics"
	"alcyxob/coach-log/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultPersistTimeout bounds a single blob load or save.
const DefaultPersistTimeout = 5 * time.Second

// Persister mirrors the session aggregate to a blob repository under one fixed key.
// Persistence is best-effort: load degrades to "nothing found", save never fails the caller.
type Persister struct {
	repo    repository.BlobRepository
	key     string
	timeout time.Duration
	metrics *metrics.Manager
}

// NewPersister creates a Persister writing under key.
func NewPersister(repo repository.BlobRepository, key string, timeout time.Duration, m *metrics.Manager) *Persister {
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return &Persister{
		repo:    repo,
		key:     key,
		timeout: timeout,
		metrics: m,
	}
}

// Load reads the stored blob and restores it onto defaults field by field.
// It returns false when nothing usable is stored.
func (p *Persister) Load(ctx context.Context, defaults domain.Session) (domain.Session, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := p.repo.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warnf("load session blob %q: %s", p.key, err)
			p.metrics.CounterPersistenceErrors.WithLabelValues("load").Inc()
		}
		return defaults, false
	}

	restored, err := DecodeSession(data, defaults)
	if err != nil {
		log.Warnf("decode session blob %q: %s", p.key, err)
		p.metrics.CounterPersistenceErrors.WithLabelValues("decode").Inc()
		return defaults, false
	}
	return restored, true
}

// Save serialises the whole aggregate and writes it. Failures are logged and counted, not returned.
func (p *Persister) Save(ctx context.Context, session domain.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Errorf("encode session: %s", err)
		p.metrics.CounterPersistenceErrors.WithLabelValues("encode").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.repo.Put(ctx, p.key, data); err != nil {
		log.Warnf("save session blob %q: %s", p.key, err)
		p.metrics.CounterPersistenceErrors.WithLabelValues("save").Inc()
	}
}

// DecodeSession restores a blob onto defaults. Each top-level field is merged
// independently: a field that is absent, null or has the wrong shape keeps
// its default. Only a blob that is not a JSON object is an error.
func DecodeSession(data []byte, defaults domain.Session) (domain.Session, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return defaults, err
	}
	if fields == nil {
		return defaults, errors.New("session blob is null")
	}

	out := defaults.Clone()
	restoreProgram(fields, &out.Program)
	restoreField(fields, "logs", &out.Logs)
	restoreField(fields, "feedback", &out.Feedback)
	restoreString(fields, "activeExercise", &out.ActiveExerciseID)
	restoreString(fields, "day", &out.SelectedDay)
	return out, nil
}

// restoreField decodes fields[name] into dst only when it decodes cleanly.
func restoreField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Debugf("session blob field %q ignored: %s", name, err)
		return
	}
	*dst = v
}

// restoreProgram is restoreField for the program, where a program without
// exercises also keeps the default: nothing could be selected or logged.
func restoreProgram(fields map[string]json.RawMessage, dst *domain.Program) {
	var p domain.Program
	restoreField(fields, "program", &p)
	if len(p.Exercises) > 0 {
		*dst = p
	}
}

// restoreString is restoreField for strings, where an empty value also keeps the default.
func restoreString(fields map[string]json.RawMessage, name string, dst *string) {
	var v string
	restoreField(fields, name, &v)
	if v != "" {
		*dst = v
	}
}
