package fields

type Kind int

const (
	KindNumber Kind = iota
	KindBoolean
	KindRange
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "NUMBER"
	case KindBoolean:
		return "BOOLEAN"
	case KindRange:
		return "RANGE"
	case KindSelect:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

type MinMax struct {
	Min float64
	Max float64
}

// Option is a labeled discrete value of a SELECT control. Code is the value
// written to the device.
type Option struct {
	Label string
	Code  float64
}

// Field is the classified view of one device control. The set of
// implementations is closed: NumberField, BooleanField, RangeField and
// SelectField.
type Field interface {
	FieldName() string
	Kind() Kind
	isField()
}

type NumberField struct {
	Name  string
	Value float64
	Range MinMax
}

func (f *NumberField) FieldName() string { return f.Name }
func (f *NumberField) Kind() Kind        { return KindNumber }
func (f *NumberField) isField()          {}

// BooleanField is a scalar control with no usable range or a {0, 1} range.
// Value is always 0 or 1.
type BooleanField struct {
	Name  string
	Value float64
}

func (f *BooleanField) FieldName() string { return f.Name }
func (f *BooleanField) Kind() Kind        { return KindBoolean }
func (f *BooleanField) isField()          {}

// RangeField is a multi-dimensional control. Range is nil when the device
// cannot report bounds, otherwise it has one entry per Value element.
type RangeField struct {
	Name  string
	Value []float64
	Range []MinMax
}

func (f *RangeField) FieldName() string { return f.Name }
func (f *RangeField) Kind() Kind        { return KindRange }
func (f *RangeField) isField()          {}

type SelectField struct {
	Name    string
	Value   float64
	Options []Option
}

func (f *SelectField) FieldName() string { return f.Name }
func (f *SelectField) Kind() Kind        { return KindSelect }
func (f *SelectField) isField()          {}

// Selected returns the option matching the current value.
func (f *SelectField) Selected() (Option, bool) {
	if i := f.index(); i >= 0 {
		return f.Options[i], true
	}
	return Option{}, false
}

func (f *SelectField) index() int {
	for i, o := range f.Options {
		if o.Code == f.Value {
			return i
		}
	}
	return -1
}
