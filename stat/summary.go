package stat

import (
	"fmt"
	"strings"

	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// SummaryEntry is one descriptive key of a column summary.
type SummaryEntry struct {
	Key   string
	Value any
}

// ColumnSummary describes one column: its declared type and the
// descriptive entries chosen for that type.
type ColumnSummary struct {
	Column  string
	Type    value.Type
	Entries []SummaryEntry
}

// Summary computes per-column descriptive statistics. Numeric columns get
// Min, 1st Qu., Median, Mean, 3rd Qu. and Max; other columns get their
// type and the number of unique values.
func Summary(m *matrix.Matrix) []ColumnSummary {
	out := make([]ColumnSummary, 0, m.ColumnCount())
	names := m.ColumnNames()
	types := m.Types()
	for i, name := range names {
		col, err := m.Column(i)
		if err != nil {
			continue
		}
		out = append(out, summarizeColumn(name, types[i], col))
	}

	return out
}

// SummaryOf summarizes a single column.
func SummaryOf(name string, col *matrix.Column) ColumnSummary {
	return summarizeColumn(name, col.Type(), col)
}

func summarizeColumn(name string, typ value.Type, col *matrix.Column) ColumnSummary {
	s := ColumnSummary{Column: name, Type: typ}
	vals := col.Values()

	if typ.IsNumeric() || (typ == value.Any && len(numeric(vals)) > 0) {
		q1, q3 := Quartiles(vals)
		s.Entries = []SummaryEntry{
			{Key: "Min", Value: Min(vals)},
			{Key: "1st Qu.", Value: q1},
			{Key: "Median", Value: Median(vals)},
			{Key: "Mean", Value: Mean(vals)},
			{Key: "3rd Qu.", Value: q3},
			{Key: "Max", Value: Max(vals)},
		}

		return s
	}

	s.Entries = []SummaryEntry{
		{Key: "Type", Value: typ.String()},
		{Key: "Unique values", Value: col.Unique().Len()},
	}

	return s
}

// String renders a summary in a compact fixed-width layout.
func (s ColumnSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", s.Column, s.Type)
	for _, e := range s.Entries {
		fmt.Fprintf(&b, "  %-14s %v\n", e.Key+":", e.Value)
	}

	return b.String()
}
