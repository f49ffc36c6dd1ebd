package render

import (
	"strings"
	"testing"

	"github.com/kevmo314/uvc-controls/pkg/fields"
)

func TestRow_Boolean(t *testing.T) {
	got := Row(&fields.BooleanField{Name: "auto_focus", Value: 1}, false)

	want := "  « on »" + strings.Repeat(" ", Width-len([]rune("« on »"))) + " auto focus"
	if got != want {
		t.Errorf("Row() = %q, want %q", got, want)
	}
}

func TestRow_BooleanOff(t *testing.T) {
	got := Row(&fields.BooleanField{Name: "privacy", Value: 0}, false)
	if !strings.Contains(got, "« off »") {
		t.Errorf("Row() = %q, want « off »", got)
	}
}

func TestRow_SelectedIsBold(t *testing.T) {
	got := Row(&fields.BooleanField{Name: "privacy"}, true)
	if !strings.HasPrefix(got, "[::b]> ") || !strings.HasSuffix(got, "[::-]") {
		t.Errorf("Row() = %q, want bold with '>' prefix", got)
	}
}

func TestRow_Select(t *testing.T) {
	f := &fields.SelectField{
		Name:    "power_line_frequency",
		Value:   3,
		Options: []fields.Option{{Label: "DISABLED", Code: 0}, {Label: "AUTO_DETECT", Code: 3}},
	}

	got := Row(f, false)
	if !strings.HasPrefix(got, "  « auto detect »") {
		t.Errorf("Row() = %q, want « auto detect »", got)
	}
	if !strings.HasSuffix(got, " power line frequency") {
		t.Errorf("Row() = %q, want name suffix", got)
	}
}

func TestRow_SelectUnknown(t *testing.T) {
	f := &fields.SelectField{Name: "mode", Value: 9, Options: []fields.Option{{Label: "A", Code: 0}}}
	if got := Row(f, false); !strings.Contains(got, "« unknown »") {
		t.Errorf("Row() = %q, want « unknown »", got)
	}
}

func TestRow_Number(t *testing.T) {
	f := &fields.NumberField{Name: "brightness", Value: 128, Range: fields.MinMax{Min: 0, Max: 255}}

	got := Row(f, false)
	for _, want := range []string{" brightness ", "128", "(0-255)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Row() = %q, missing %q", got, want)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, min, max float64
		filled          int
	}{
		{value: 0, min: 0, max: 255, filled: 0},
		{value: 255, min: 0, max: 255, filled: barWidth},
		{value: 128, min: 0, max: 255, filled: 11},
		{value: 0, min: -64, max: 64, filled: 11},
		{value: 500, min: 0, max: 255, filled: barWidth},
		{value: 5, min: 5, max: 5, filled: 0},
	}
	for _, tt := range tests {
		got := Bar(&fields.NumberField{Name: "n", Value: tt.value, Range: fields.MinMax{Min: tt.min, Max: tt.max}})
		if len(got) != barWidth {
			t.Errorf("Bar(%v in %v-%v) width = %d, want %d", tt.value, tt.min, tt.max, len(got), barWidth)
		}
		if n := strings.Count(got, "="); n != tt.filled {
			t.Errorf("Bar(%v in %v-%v) filled = %d, want %d", tt.value, tt.min, tt.max, n, tt.filled)
		}
	}
}

func TestList(t *testing.T) {
	fs := []fields.Field{
		&fields.BooleanField{Name: "auto_focus", Value: 1},
		&fields.BooleanField{Name: "privacy"},
	}

	lines := strings.Split(List(fs, 1), "\n")
	if len(lines) != 2 {
		t.Fatalf("List() has %d lines, want 2", len(lines))
	}
	if strings.HasPrefix(lines[0], "[::b]") {
		t.Errorf("line 0 = %q, want unselected", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[::b]> ") {
		t.Errorf("line 1 = %q, want selected", lines[1])
	}
}

func TestTable(t *testing.T) {
	fs := []fields.Field{
		&fields.RangeField{Name: "absolute_pan_tilt", Value: []float64{0, 3600}, Range: []fields.MinMax{{Min: -36000, Max: 36000}, {Min: -36000, Max: 36000}}},
		&fields.NumberField{Name: "brightness", Value: 128, Range: fields.MinMax{Min: 0, Max: 255}},
	}

	got := Table(fs)
	for _, want := range []string{"CONTROL", "absolute_pan_tilt", "RANGE", "0, 3600", "-36000-36000", "brightness", "NUMBER", "0-255"} {
		if !strings.Contains(got, want) {
			t.Errorf("Table() missing %q:\n%s", want, got)
		}
	}
}
