package matrix

// Subset returns a new, independent Matrix holding the rows for which the
// predicate returns true. The receiver is never mutated.
func (m *Matrix) Subset(pred func(*Row) bool) *Matrix {
	indices := m.SelectRowIndices(pred)
	cols := make([]*Column, len(m.columns))
	for c, col := range m.columns {
		vals := make([]any, len(indices))
		for i, r := range indices {
			vals[i] = col.Get(r)
		}
		cols[c] = NewColumn(col.typ, vals...)
	}
	out, _ := newMatrix(m.name, m.ColumnNames(), m.Types(), cols)

	return out
}

// MatchingRows returns live row views for the rows matching the predicate.
func (m *Matrix) MatchingRows(pred func(*Row) bool) []*Row {
	indices := m.SelectRowIndices(pred)
	rows := make([]*Row, len(indices))
	for i, r := range indices {
		rows[i] = &Row{owner: m, index: r}
	}

	return rows
}

// SelectRowIndices evaluates the predicate once per row view and returns
// the matching positional indices in order.
func (m *Matrix) SelectRowIndices(pred func(*Row) bool) []int {
	out := make([]int, 0)
	for r := 0; r < m.RowCount(); r++ {
		if pred(&Row{owner: m, index: r}) {
			out = append(out, r)
		}
	}

	return out
}
