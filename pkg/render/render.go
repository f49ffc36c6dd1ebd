// Package render formats classified fields as tview color-tag markup.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kevmo314/uvc-controls/pkg/fields"
	"github.com/rivo/tview"
)

const (
	// Width is the column width of the value cell.
	Width    = fields.Resolution
	barWidth = Width - 2
)

// Label formats a control or option name for display.
func Label(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Bar returns the fill of a NUMBER gauge, barWidth wide, proportional to the
// value's position in its range.
func Bar(f *fields.NumberField) string {
	span := f.Range.Max - f.Range.Min
	filled := 0
	if span > 0 {
		p := math.Min(1, math.Max(0, (f.Value-f.Range.Min)/span))
		filled = int(math.Round(barWidth * p))
	}
	return strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
}

func text(f fields.Field) string {
	switch f := f.(type) {
	case *fields.BooleanField:
		state := "off"
		if f.Value != 0 {
			state = "on"
		}
		return fmt.Sprintf("%-*s %s", Width, "« "+state+" »", Label(f.Name))
	case *fields.NumberField:
		return fmt.Sprintf("[%s] %s [%s] (%s-%s)", Bar(f), Label(f.Name),
			formatNumber(f.Value), formatNumber(f.Range.Min), formatNumber(f.Range.Max))
	case *fields.SelectField:
		label := "unknown"
		if o, ok := f.Selected(); ok {
			label = strings.ToLower(Label(o.Label))
		}
		return fmt.Sprintf("%-*s %s", Width, "« "+label+" »", Label(f.Name))
	case *fields.RangeField:
		values := make([]string, len(f.Value))
		for i, v := range f.Value {
			values[i] = formatNumber(v)
		}
		return fmt.Sprintf("%-*s %s", Width, "("+strings.Join(values, ", ")+")", Label(f.Name))
	}
	return ""
}

// Row renders a single field. The selected row is prefixed with '>' and bold.
func Row(f fields.Field, selected bool) string {
	if f == nil {
		return ""
	}
	row := tview.Escape(text(f))
	if selected {
		return "[::b]> " + row + "[::-]"
	}
	return "  " + row
}

// List renders one row per field, marking the active one.
func List(fs []fields.Field, active int) string {
	rows := make([]string, len(fs))
	for i, f := range fs {
		rows[i] = Row(f, i == active)
	}
	return strings.Join(rows, "\n")
}
