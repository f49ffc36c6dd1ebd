// Package session implements the interactive control session: an active
// field index over a field list that is rebuilt from the device after every
// write.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kevmo314/uvc-controls/pkg/fields"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Intent int

const (
	IntentUp Intent = iota
	IntentDown
	IntentLeft
	IntentRight
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentQuit:
		return "quit"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// ErrQuit is returned by Handle for IntentQuit.
var ErrQuit = errors.New("session: quit")

// WriteError is a rejected device write. The session cannot continue after
// one.
type WriteError struct {
	Control string
	Value   float64
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to set %s to %v: %v", e.Control, e.Value, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// RebuildError is a failed refresh. The previous field list stays in place.
type RebuildError struct {
	Err error
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf("failed to rebuild controls: %v", e.Err)
}

func (e *RebuildError) Unwrap() error { return e.Err }

type Session struct {
	src    fields.Source
	log    *zap.Logger
	fields []fields.Field
	active int
}

func New(src fields.Source, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{src: src, log: log}
}

// Fields returns the navigable fields. The slice is replaced, never modified,
// by Rebuild.
func (s *Session) Fields() []fields.Field {
	return s.fields
}

func (s *Session) Active() int {
	return s.active
}

func (s *Session) Current() (fields.Field, bool) {
	if s.active < 0 || s.active >= len(s.fields) {
		return nil, false
	}
	return s.fields[s.active], true
}

// Rebuild re-fetches and re-classifies every control and replaces the field
// list.
func (s *Session) Rebuild(ctx context.Context) error {
	entries, skipped, err := fields.Fetch(ctx, s.src)
	if err != nil {
		return &RebuildError{Err: err}
	}
	for _, err := range multierr.Errors(skipped) {
		var ce *fields.ControlError
		if errors.As(err, &ce) {
			s.log.Warn("could not fetch control", zap.String("control", ce.Control), zap.Error(ce.Err))
		} else {
			s.log.Warn("could not fetch control", zap.Error(err))
		}
	}
	s.fields = fields.Build(entries)
	s.active = s.clamp(s.active)
	s.log.Debug("rebuilt controls", zap.Int("fields", len(s.fields)), zap.Int("entries", len(entries)))
	return nil
}

func (s *Session) Up() {
	s.active = s.clamp(s.active - 1)
}

func (s *Session) Down() {
	s.active = s.clamp(s.active + 1)
}

func (s *Session) clamp(i int) int {
	if len(s.fields) == 0 {
		return 0
	}
	return lo.Clamp(i, 0, len(s.fields)-1)
}

// Adjust steps the active field, writes the result to the device and rebuilds.
// A *WriteError leaves the field list untouched; a *RebuildError means the
// write was applied but the list could not be refreshed.
func (s *Session) Adjust(ctx context.Context, increase bool) error {
	f, ok := s.Current()
	if !ok {
		return nil
	}
	next := towardWhole(f, fields.Step(f, increase))
	s.log.Debug("set control",
		zap.String("control", f.FieldName()),
		zap.Stringer("kind", f.Kind()),
		zap.Float64("value", next),
	)
	if err := s.src.Set(ctx, f.FieldName(), fields.Scalar(next)); err != nil {
		return &WriteError{Control: f.FieldName(), Value: next, Err: err}
	}
	return s.Rebuild(ctx)
}

// towardWhole rounds a NUMBER step away from the current value. Devices
// take integers, so a fractional step would otherwise truncate back to where
// it started.
func towardWhole(f fields.Field, next float64) float64 {
	n, ok := f.(*fields.NumberField)
	if !ok {
		return next
	}
	switch {
	case next > n.Value:
		return math.Min(math.Ceil(next), n.Range.Max)
	case next < n.Value:
		return math.Max(math.Floor(next), n.Range.Min)
	}
	return next
}

// Handle runs one intent to completion.
func (s *Session) Handle(ctx context.Context, intent Intent) error {
	switch intent {
	case IntentUp:
		s.Up()
	case IntentDown:
		s.Down()
	case IntentLeft:
		return s.Adjust(ctx, false)
	case IntentRight:
		return s.Adjust(ctx, true)
	case IntentQuit:
		return ErrQuit
	}
	return nil
}
