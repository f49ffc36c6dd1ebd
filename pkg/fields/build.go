package fields

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// ControlError reports a control that could not be fetched.
type ControlError struct {
	Control string
	Err     error
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("control %s: %v", e.Control, e.Err)
}

func (e *ControlError) Unwrap() error { return e.Err }

// Fetch reads every control the source exposes. Controls that fail are left
// out and their *ControlError values are combined into skipped; err is only
// set when the controls cannot be enumerated at all.
func Fetch(ctx context.Context, src Source) (entries []Entry, skipped error, err error) {
	names, err := src.Controls(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate controls: %w", err)
	}
	for _, name := range names {
		entry, ferr := fetchOne(ctx, src, name)
		if ferr != nil {
			skipped = multierr.Append(skipped, &ControlError{Control: name, Err: ferr})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func fetchOne(ctx context.Context, src Source, name string) (Entry, error) {
	desc, err := src.Descriptor(ctx, name)
	if err != nil {
		return Entry{}, fmt.Errorf("descriptor: %w", err)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	value, err := src.Get(ctx, name)
	if err != nil {
		return Entry{}, fmt.Errorf("get: %w", err)
	}
	var rng RawRange
	if desc.CanQueryRange {
		rng, err = src.Range(ctx, name)
		if errors.Is(err, ErrRangeUnsupported) {
			desc.CanQueryRange = false
			rng = nil
		} else if err != nil {
			return Entry{}, fmt.Errorf("range: %w", err)
		}
	}
	return Entry{Descriptor: desc, Value: value, Range: rng}, nil
}

// ClassifyAll classifies every entry and orders the result by name.
func ClassifyAll(entries []Entry) []Field {
	fs := lo.Map(entries, func(e Entry, _ int) Field {
		return Classify(e.Descriptor, e.Value, e.Range)
	})
	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].FieldName() < fs[j].FieldName()
	})
	return fs
}

// Build returns the navigable field list: every classified field except
// RANGE, ordered by name.
func Build(entries []Entry) []Field {
	return lo.Filter(ClassifyAll(entries), func(f Field, _ int) bool {
		return f.Kind() != KindRange
	})
}
