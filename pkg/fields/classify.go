package fields

// Classify maps a control's descriptor, current value and range to a Field.
//
// A declared option set always wins, then multi-dimensional controls become
// RANGE. A scalar without a range, or with a {0, 1} range, is a toggle.
func Classify(desc Descriptor, value RawValue, rng RawRange) Field {
	if sf, ok := desc.Options(); ok {
		options := make([]Option, len(sf.Options))
		copy(options, sf.Options)
		return &SelectField{
			Name:    desc.Name,
			Value:   component(value, sf.Name, 0),
			Options: options,
		}
	}

	if len(desc.SubFields) > 1 {
		values := make([]float64, len(desc.SubFields))
		for i, sf := range desc.SubFields {
			values[i] = component(value, sf.Name, i)
		}
		f := &RangeField{Name: desc.Name, Value: values}
		if desc.CanQueryRange && len(rng) == len(values) {
			f.Range = make([]MinMax, len(rng))
			for i, r := range rng {
				f.Range[i] = ordered(r)
			}
		}
		return f
	}

	name := ""
	if len(desc.SubFields) == 1 {
		name = desc.SubFields[0].Name
	}
	v := component(value, name, 0)
	if len(rng) == 0 || (rng[0] == MinMax{Min: 0, Max: 1}) {
		b := 0.0
		if v != 0 {
			b = 1
		}
		return &BooleanField{Name: desc.Name, Value: b}
	}
	return &NumberField{Name: desc.Name, Value: v, Range: ordered(rng[0])}
}

// component reads one dimension of a raw value. A scalar only has a first
// dimension.
func component(value RawValue, name string, index int) float64 {
	switch v := value.(type) {
	case Scalar:
		if index == 0 {
			return float64(v)
		}
	case MultiDimensional:
		return v[name]
	}
	return 0
}

func ordered(r MinMax) MinMax {
	if r.Min > r.Max {
		return MinMax{Min: r.Max, Max: r.Min}
	}
	return r
}
