package matrix

import (
	"fmt"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/hash"
	"github.com/arloliu/tabular/value"
)

// JoinSpec names the key columns of a merge: either On, a column name
// shared by both sides, or the explicit Left/Right pair. Setting both
// forms, or neither, is rejected.
type JoinSpec struct {
	On    string
	Left  string
	Right string
}

func (s JoinSpec) resolve(left, right *Matrix) (int, int, error) {
	switch {
	case s.On != "" && (s.Left != "" || s.Right != ""):
		return 0, 0, fmt.Errorf("%w: both On and Left/Right given", errs.ErrJoinKey)
	case s.On != "":
		li, err := left.ColumnIndex(s.On)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: left side: %s", errs.ErrJoinKey, err)
		}
		ri, err := right.ColumnIndex(s.On)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: right side: %s", errs.ErrJoinKey, err)
		}

		return li, ri, nil
	case s.Left != "" && s.Right != "":
		li, err := left.ColumnIndex(s.Left)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: left side: %s", errs.ErrJoinKey, err)
		}
		ri, err := right.ColumnIndex(s.Right)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: right side: %s", errs.ErrJoinKey, err)
		}

		return li, ri, nil
	default:
		return 0, 0, fmt.Errorf("%w: no key columns given", errs.ErrJoinKey)
	}
}

// Merge joins two matrices on key-equal rows. The output columns are the
// left matrix's columns followed by the right matrix's non-key columns, and
// one output row is produced per matching (left, right) pair, in left row
// order. With leftOuter, unmatched left rows are retained once with the
// right-side columns null.
//
// Key validation happens before any row processing, and neither input is
// ever mutated: the result owns independent storage.
func Merge(left, right *Matrix, spec JoinSpec, leftOuter ...bool) (*Matrix, error) {
	outer := len(leftOuter) > 0 && leftOuter[0]

	lKey, rKey, err := spec.resolve(left, right)
	if err != nil {
		return nil, err
	}

	names := left.ColumnNames()
	types := left.Types()
	rightCols := make([]int, 0, right.ColumnCount()-1)
	for i, name := range right.colNames {
		if i == rKey {
			continue
		}
		for _, existing := range names {
			if existing == name {
				return nil, fmt.Errorf("%w: output column %q is ambiguous", errs.ErrJoinKey, name)
			}
		}
		rightCols = append(rightCols, i)
		names = append(names, name)
		types = append(types, right.types[i])
	}

	// Bucket right rows by key hash; equality is re-checked per candidate.
	buckets := make(map[uint64][]int, right.RowCount())
	for r := 0; r < right.RowCount(); r++ {
		k := hash.Key(right.columns[rKey].Get(r))
		buckets[k] = append(buckets[k], r)
	}

	cols := make([]*Column, len(names))
	for i := range cols {
		cols[i] = NewColumn(types[i])
	}
	emit := func(lr int, rr int) {
		for c := range left.columns {
			cols[c].Append(left.columns[c].Get(lr))
		}
		for ci, rc := range rightCols {
			if rr < 0 {
				cols[left.ColumnCount()+ci].Append(nil)
			} else {
				cols[left.ColumnCount()+ci].Append(right.columns[rc].Get(rr))
			}
		}
	}

	for lr := 0; lr < left.RowCount(); lr++ {
		key := left.columns[lKey].Get(lr)
		matched := false
		for _, rr := range buckets[hash.Key(key)] {
			if value.Equal(key, right.columns[rKey].Get(rr)) {
				emit(lr, rr)
				matched = true
			}
		}
		if !matched && outer {
			emit(lr, -1)
		}
	}

	name := left.name
	if name == "" {
		name = right.name
	}

	return newMatrix(name, names, types, cols)
}
