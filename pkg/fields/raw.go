package fields

import (
	"context"
	"errors"
)

// ErrRangeUnsupported is returned by a Source when a control does not accept
// range requests. It is not a fetch failure: the control is classified
// without a range.
var ErrRangeUnsupported = errors.New("range not supported")

// Source is the device side of a session.
type Source interface {
	Controls(ctx context.Context) ([]string, error)
	Descriptor(ctx context.Context, name string) (Descriptor, error)
	Get(ctx context.Context, name string) (RawValue, error)
	Range(ctx context.Context, name string) (RawRange, error)
	// Set writes the whole control at once; it either applies or fails.
	Set(ctx context.Context, name string, value RawValue) error
}

type SubField struct {
	Name    string
	Type    string
	Options []Option
}

// Descriptor is the static shape of a control.
type Descriptor struct {
	Name          string
	SubFields     []SubField
	CanQueryRange bool
}

// Options returns the first declared option set, if any.
func (d Descriptor) Options() (SubField, bool) {
	for _, sf := range d.SubFields {
		if len(sf.Options) > 0 {
			return sf, true
		}
	}
	return SubField{}, false
}

// RawValue is either a Scalar or a MultiDimensional value.
type RawValue interface {
	isRawValue()
}

type Scalar float64

func (Scalar) isRawValue() {}

// MultiDimensional maps sub-field names to values. Ordering comes from the
// Descriptor.
type MultiDimensional map[string]float64

func (MultiDimensional) isRawValue() {}

// RawRange is nil when absent, one pair for a scalar control, or one pair per
// sub-field.
type RawRange []MinMax

// Entry is one successfully fetched control.
type Entry struct {
	Descriptor Descriptor
	Value      RawValue
	Range      RawRange
}
