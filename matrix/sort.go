package matrix

import (
	"sort"
	"strings"
	"time"

	"github.com/arloliu/tabular/value"
)

// SortKey names a sort column and its direction. Ascending is the default.
type SortKey struct {
	Column     string
	Descending bool
}

// Asc returns an ascending SortKey for the named column.
func Asc(column string) SortKey {
	return SortKey{Column: column}
}

// Desc returns a descending SortKey for the named column.
func Desc(column string) SortKey {
	return SortKey{Column: column, Descending: true}
}

// OrderBy sorts the rows in place by the given keys, applied left to right,
// and returns the receiver. The sort is stable, so rows tying on every key
// keep their relative order. Nulls sort before any value.
func (m *Matrix) OrderBy(keys ...SortKey) (*Matrix, error) {
	cols := make([]*Column, len(keys))
	for i, key := range keys {
		col, err := m.ColumnByName(key.Column)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	perm := make([]int, m.RowCount())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		ra, rb := perm[a], perm[b]
		for i, col := range cols {
			cmp := compareValues(col.Get(ra), col.Get(rb))
			if cmp == 0 {
				continue
			}
			if keys[i].Descending {
				return cmp > 0
			}

			return cmp < 0
		}

		return false
	})

	for _, col := range m.columns {
		reordered := make([]any, len(col.values))
		for i, p := range perm {
			reordered[i] = col.values[p]
		}
		col.values = reordered
	}

	return m, nil
}

// compareValues orders two cells: null first, then numerics by value,
// times chronologically, bools false-first, strings lexicographically,
// and anything else by its textual form.
func compareValues(a, b any) int {
	nullA, nullB := value.IsNull(a), value.IsNull(b)
	switch {
	case nullA && nullB:
		return 0
	case nullA:
		return -1
	case nullB:
		return 1
	}

	if ta, tb := value.TypeOf(a), value.TypeOf(b); ta.IsNumeric() && tb.IsNumeric() {
		da, _ := value.AsDecimal(a)
		db, _ := value.AsDecimal(b)

		return da.Cmp(db)
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}

	return strings.Compare(stringify(a), stringify(b))
}
