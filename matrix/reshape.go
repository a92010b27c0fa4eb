package matrix

import (
	"fmt"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/hash"
	"github.com/arloliu/tabular/internal/options"
	"github.com/arloliu/tabular/value"
)

type transposeConfig struct {
	colNames      []string
	promoteHeader bool
}

// TransposeOption represents a functional option for configuring Transpose.
type TransposeOption = options.Option[*transposeConfig]

// WithTransposedNames sets the column names of the transposed matrix.
// Without it the columns are named c1..cN.
func WithTransposedNames(names ...string) TransposeOption {
	return options.NoError(func(c *transposeConfig) {
		c.colNames = names
	})
}

// WithHeaderPromoted carries the original column names into the transposed
// data: each output row starts with the name of the column it came from.
func WithHeaderPromoted() TransposeOption {
	return options.NoError(func(c *transposeConfig) {
		c.promoteHeader = true
	})
}

// Transpose returns a new Matrix with rows and columns exchanged: output
// row i holds the values of input column i. The receiver is not mutated.
func (m *Matrix) Transpose(opts ...TransposeOption) (*Matrix, error) {
	cfg := &transposeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	rows := make([][]any, len(m.columns))
	for i, col := range m.columns {
		row := make([]any, 0, col.Len()+1)
		if cfg.promoteHeader {
			row = append(row, m.colNames[i])
		}
		row = append(row, col.values...)
		rows[i] = row
	}

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	names := cfg.colNames
	if names == nil {
		names = make([]string, width)
		for i := range names {
			names[i] = fmt.Sprintf("c%d", i+1)
		}
	} else if len(names) != width {
		return nil, fmt.Errorf("%w: %d names for %d transposed columns",
			errs.ErrDimensionMismatch, len(names), width)
	}

	cols := transposeRows(rows)
	columns := make([]*Column, len(cols))
	types := make([]value.Type, len(cols))
	for i, vals := range cols {
		columns[i] = NewColumn(inferColumnType(vals), vals...)
		types[i] = columns[i].typ
	}

	return newMatrix(m.name, names, types, columns)
}

// Pivot reshapes from long to wide format: rows are grouped by the id
// column, one output column is created per distinct pivot-column value
// (in first-occurrence order), filled with the value column or null where
// the (id, pivot) pair is absent. Columns other than the pivot and value
// columns are carried through with their first value per group. The result
// is a new Matrix; the receiver is not mutated.
func (m *Matrix) Pivot(idCol, pivotCol, valueCol string) (*Matrix, error) {
	idIdx, err := m.ColumnIndex(idCol)
	if err != nil {
		return nil, err
	}
	pivotIdx, err := m.ColumnIndex(pivotCol)
	if err != nil {
		return nil, err
	}
	valueIdx, err := m.ColumnIndex(valueCol)
	if err != nil {
		return nil, err
	}

	// Carried columns keep their original relative order.
	carried := make([]int, 0, len(m.columns))
	for i := range m.columns {
		if i != pivotIdx && i != valueIdx && i != idIdx {
			carried = append(carried, i)
		}
	}

	ids := newValueIndex()
	pivots := newValueIndex()
	type cellKey struct{ id, pivot int }
	cells := make(map[cellKey]any)
	carriedVals := make(map[int][]any)

	for r := 0; r < m.RowCount(); r++ {
		id := m.columns[idIdx].Get(r)
		gi, isNew := ids.add(id)
		pv := m.columns[pivotIdx].Get(r)
		pi, _ := pivots.add(pv)
		cells[cellKey{gi, pi}] = m.columns[valueIdx].Get(r)
		if isNew {
			row := make([]any, len(carried))
			for ci, c := range carried {
				row[ci] = m.columns[c].Get(r)
			}
			carriedVals[gi] = row
		}
	}

	names := []string{m.colNames[idIdx]}
	types := []value.Type{m.types[idIdx]}
	for _, c := range carried {
		names = append(names, m.colNames[c])
		types = append(types, m.types[c])
	}
	for _, pv := range pivots.ordered {
		names = append(names, stringify(pv))
		types = append(types, m.types[valueIdx])
	}

	nGroups := len(ids.ordered)
	cols := make([]*Column, len(names))
	for i := range cols {
		cols[i] = NewColumn(types[i], make([]any, nGroups)...)
	}
	for gi := 0; gi < nGroups; gi++ {
		cols[0].Set(gi, ids.ordered[gi])
		for ci := range carried {
			cols[1+ci].Set(gi, carriedVals[gi][ci])
		}
		for pi := range pivots.ordered {
			if v, ok := cells[cellKey{gi, pi}]; ok {
				cols[1+len(carried)+pi].Set(gi, v)
			}
		}
	}

	return newMatrix(m.name, names, types, cols)
}

// UnPivot reshapes from wide to sparse long format, inverting Pivot: one
// output row per (input row, melt column) pair whose cell is non-null.
// Null melt cells are omitted rather than emitted as null rows. The kept
// columns retain their order, followed by the value column and the key
// column holding the originating melt column's name. The result is a new
// Matrix; the receiver is not mutated.
func (m *Matrix) UnPivot(valueName, keyName string, meltColumns []string) (*Matrix, error) {
	melt := make([]int, len(meltColumns))
	meltSet := make(map[int]bool, len(meltColumns))
	for i, name := range meltColumns {
		idx, err := m.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		melt[i] = idx
		meltSet[idx] = true
	}

	kept := make([]int, 0, len(m.columns))
	for i := range m.columns {
		if !meltSet[i] {
			kept = append(kept, i)
		}
	}

	names := make([]string, 0, len(kept)+2)
	types := make([]value.Type, 0, len(kept)+2)
	for _, k := range kept {
		names = append(names, m.colNames[k])
		types = append(types, m.types[k])
	}
	valueType := value.Any
	for i, mi := range melt {
		if i == 0 {
			valueType = m.types[mi]
			continue
		}
		valueType = value.CommonSuper(valueType, m.types[mi])
	}
	names = append(names, valueName, keyName)
	types = append(types, valueType, value.String)

	cols := make([]*Column, len(names))
	for i := range cols {
		cols[i] = NewColumn(types[i])
	}
	for r := 0; r < m.RowCount(); r++ {
		for i, mi := range melt {
			v := m.columns[mi].Get(r)
			if value.IsNull(v) {
				continue
			}
			for ci, k := range kept {
				cols[ci].Append(m.columns[k].Get(r))
			}
			cols[len(kept)].Append(v)
			cols[len(kept)+1].Append(meltColumns[i])
		}
	}

	return newMatrix(m.name, names, types, cols)
}

// valueIndex assigns dense indices to distinct cell values in
// first-occurrence order, bucketing by composite hash with an equality
// check per candidate.
type valueIndex struct {
	buckets map[uint64][]int
	ordered []any
}

func newValueIndex() *valueIndex {
	return &valueIndex{buckets: make(map[uint64][]int)}
}

// add returns the dense index for v, allocating one when v is new.
func (ix *valueIndex) add(v any) (int, bool) {
	k := hash.Key(v)
	for _, i := range ix.buckets[k] {
		if value.Equal(ix.ordered[i], v) {
			return i, false
		}
	}
	i := len(ix.ordered)
	ix.ordered = append(ix.ordered, v)
	ix.buckets[k] = append(ix.buckets[k], i)

	return i, true
}
