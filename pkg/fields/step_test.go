package fields

import (
	"math"
	"testing"
)

func TestStep_NumberIncrease(t *testing.T) {
	f := &NumberField{Name: "brightness", Value: 128, Range: MinMax{Min: 0, Max: 255}}

	got := Step(f, true)
	if want := 128 + 255.0/24; got != want {
		t.Errorf("Step() = %v, want %v", got, want)
	}
	if f.Value != 128 {
		t.Errorf("field mutated: Value = %v, want 128", f.Value)
	}
}

func TestStep_NumberDecrease(t *testing.T) {
	f := &NumberField{Name: "gain", Value: 100, Range: MinMax{Min: 0, Max: 240}}

	if got := Step(f, false); got != 90 {
		t.Errorf("Step() = %v, want 90", got)
	}
}

func TestStep_NumberClampsToBounds(t *testing.T) {
	tests := []struct {
		value    float64
		increase bool
		want     float64
	}{
		{value: 250, increase: true, want: 255},
		{value: 255, increase: true, want: 255},
		{value: 3, increase: false, want: 0},
		{value: 0, increase: false, want: 0},
	}
	for _, tt := range tests {
		f := &NumberField{Name: "brightness", Value: tt.value, Range: MinMax{Min: 0, Max: 255}}
		if got := Step(f, tt.increase); got != tt.want {
			t.Errorf("Step(%v, %v) = %v, want %v", tt.value, tt.increase, got, tt.want)
		}
	}
}

func TestStep_NumberStaysInRange(t *testing.T) {
	ranges := []MinMax{{Min: 0, Max: 255}, {Min: -64, Max: 64}, {Min: 2800, Max: 6500}, {Min: -10, Max: 0}, {Min: 5, Max: 5}}
	for _, r := range ranges {
		for _, increase := range []bool{true, false} {
			f := &NumberField{Name: "n", Value: r.Min, Range: r}
			for i := 0; i < 100; i++ {
				f.Value = Step(f, increase)
				if f.Value < r.Min || f.Value > r.Max {
					t.Fatalf("range %v: step %d produced %v", r, i, f.Value)
				}
			}
		}
	}
}

func TestStep_NumberConvergesToMax(t *testing.T) {
	r := MinMax{Min: 0, Max: 255}
	for _, start := range []float64{0, 1, 17, 128, 254} {
		f := &NumberField{Name: "n", Value: start, Range: r}
		steps := 0
		for f.Value < r.Max {
			f.Value = Step(f, true)
			steps++
			if steps > Resolution {
				t.Fatalf("start %v: did not reach max within %d steps, at %v", start, Resolution, f.Value)
			}
		}
	}
}

func TestStep_NumberNonPositiveMaxStillMoves(t *testing.T) {
	f := &NumberField{Name: "n", Value: -48, Range: MinMax{Min: -48, Max: 0}}

	got := Step(f, true)
	if got != -46 {
		t.Errorf("Step() = %v, want -46", got)
	}
}

func TestStep_BooleanToggles(t *testing.T) {
	for _, increase := range []bool{true, false} {
		f := &BooleanField{Name: "auto_focus", Value: 1}
		if got := Step(f, increase); got != 0 {
			t.Errorf("Step(on, %v) = %v, want 0", increase, got)
		}
		f.Value = 0
		if got := Step(f, increase); got != 1 {
			t.Errorf("Step(off, %v) = %v, want 1", increase, got)
		}
	}
}

func TestStep_BooleanIsInvolution(t *testing.T) {
	for _, v := range []float64{0, 1} {
		f := &BooleanField{Name: "privacy", Value: v}
		once := Step(f, true)
		twice := Step(&BooleanField{Name: "privacy", Value: once}, false)
		if twice != v {
			t.Errorf("Step(Step(%v)) = %v, want %v", v, twice, v)
		}
	}
}

func selectField(value float64) *SelectField {
	return &SelectField{
		Name:  "power_line_frequency",
		Value: value,
		Options: []Option{
			{Label: "DISABLED", Code: 0},
			{Label: "50HZ", Code: 1},
			{Label: "60HZ", Code: 2},
			{Label: "AUTO", Code: 3},
		},
	}
}

func TestStep_SelectAdvances(t *testing.T) {
	if got := Step(selectField(1), true); got != 2 {
		t.Errorf("Step(50HZ, up) = %v, want 2", got)
	}
	if got := Step(selectField(1), false); got != 0 {
		t.Errorf("Step(50HZ, down) = %v, want 0", got)
	}
}

func TestStep_SelectWraps(t *testing.T) {
	if got := Step(selectField(3), true); got != 0 {
		t.Errorf("Step(last, up) = %v, want 0", got)
	}
	if got := Step(selectField(0), false); got != 3 {
		t.Errorf("Step(first, down) = %v, want 3", got)
	}
}

func TestStep_SelectUsesDeclarationOrderNotCodes(t *testing.T) {
	f := &SelectField{
		Name:    "auto_exposure_mode",
		Value:   2,
		Options: []Option{{Label: "MANUAL", Code: 1}, {Label: "AUTO", Code: 2}, {Label: "SHUTTER_PRIORITY", Code: 4}, {Label: "APERTURE_PRIORITY", Code: 8}},
	}
	if got := Step(f, true); got != 4 {
		t.Errorf("Step(AUTO, up) = %v, want 4", got)
	}
	f.Value = 8
	if got := Step(f, true); got != 1 {
		t.Errorf("Step(APERTURE_PRIORITY, up) = %v, want 1", got)
	}
}

func TestStep_SelectUnknownCodeFallsBackToFirst(t *testing.T) {
	for _, increase := range []bool{true, false} {
		if got := Step(selectField(42), increase); got != 0 {
			t.Errorf("Step(42, %v) = %v, want 0", increase, got)
		}
	}
}

func TestStep_SelectWithoutOptions(t *testing.T) {
	f := &SelectField{Name: "empty", Value: 7}
	if got := Step(f, true); got != 7 {
		t.Errorf("Step() = %v, want 7", got)
	}
}

func TestStep_RangeAndNilReturnZero(t *testing.T) {
	r := &RangeField{Name: "absolute_pan_tilt", Value: []float64{1, 2}}
	if got := Step(r, true); got != 0 {
		t.Errorf("Step(range) = %v, want 0", got)
	}
	if got := Step(nil, true); got != 0 || math.IsNaN(got) {
		t.Errorf("Step(nil) = %v, want 0", got)
	}
}
