package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kevmo314/uvc-controls/pkg/fields"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders every field, RANGE included, as a bordered table.
func Table(fs []fields.Field) string {
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, []string{f.FieldName(), f.Kind().String(), value(f), bounds(f)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CONTROL", "KIND", "VALUE", "RANGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func value(f fields.Field) string {
	switch f := f.(type) {
	case *fields.NumberField:
		return formatNumber(f.Value)
	case *fields.BooleanField:
		if f.Value != 0 {
			return "on"
		}
		return "off"
	case *fields.SelectField:
		if o, ok := f.Selected(); ok {
			return fmt.Sprintf("%s (%s)", strings.ToLower(Label(o.Label)), formatNumber(o.Code))
		}
		return fmt.Sprintf("unknown (%s)", formatNumber(f.Value))
	case *fields.RangeField:
		values := make([]string, len(f.Value))
		for i, v := range f.Value {
			values[i] = formatNumber(v)
		}
		return strings.Join(values, ", ")
	}
	return ""
}

func bounds(f fields.Field) string {
	switch f := f.(type) {
	case *fields.NumberField:
		return formatNumber(f.Range.Min) + "-" + formatNumber(f.Range.Max)
	case *fields.RangeField:
		parts := make([]string, len(f.Range))
		for i, r := range f.Range {
			parts[i] = formatNumber(r.Min) + "-" + formatNumber(r.Max)
		}
		return strings.Join(parts, ", ")
	case *fields.SelectField:
		labels := make([]string, len(f.Options))
		for i, o := range f.Options {
			labels[i] = strings.ToLower(Label(o.Label))
		}
		return strings.Join(labels, " | ")
	}
	return ""
}
