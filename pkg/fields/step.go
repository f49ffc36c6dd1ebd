package fields

import "math"

// Resolution is the number of steps between zero and a NUMBER field's max.
const Resolution = 24

// Step returns the raw value to write when the field is nudged in the given
// direction. It never mutates f.
func Step(f Field, increase bool) float64 {
	switch f := f.(type) {
	case *NumberField:
		return stepNumber(f, increase)
	case *BooleanField:
		return 1 - f.Value
	case *SelectField:
		return stepSelect(f, increase)
	default:
		return 0
	}
}

func stepNumber(f *NumberField, increase bool) float64 {
	lo, hi := f.Range.Min, f.Range.Max
	step := hi / Resolution
	if step <= 0 {
		step = (hi - lo) / Resolution
	}
	var next float64
	if increase {
		next = math.Min(hi, f.Value+step)
	} else {
		next = math.Max(lo, f.Value-step)
	}
	return math.Max(lo, math.Min(hi, next))
}

func stepSelect(f *SelectField, increase bool) float64 {
	n := len(f.Options)
	if n == 0 {
		return f.Value
	}
	i := f.index()
	if i < 0 {
		return f.Options[0].Code
	}
	if increase {
		i++
	} else {
		i--
	}
	return f.Options[((i%n)+n)%n].Code
}
