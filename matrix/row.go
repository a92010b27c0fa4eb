package matrix

import (
	"fmt"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

// Row is a positional view over one matrix row. An attached row routes
// reads and writes to the owning matrix's columns; Detach yields an
// independent copy that severs the link in both directions.
type Row struct {
	owner *Matrix
	index int

	// detached cell storage; nil while the row is attached.
	vals  []any
	names []string
}

// Index returns the row's position within its owner, or -1 once detached.
func (r *Row) Index() int {
	if r.owner == nil {
		return -1
	}

	return r.index
}

// Len returns the number of fields.
func (r *Row) Len() int {
	if r.owner == nil {
		return len(r.vals)
	}

	return r.owner.ColumnCount()
}

// Get returns the field at position i.
func (r *Row) Get(i int) any {
	if r.owner == nil {
		return r.vals[i]
	}

	return r.owner.columns[i].Get(r.index)
}

// GetNamed returns the field in the named column.
func (r *Row) GetNamed(name string) (any, error) {
	i, err := r.fieldIndex(name)
	if err != nil {
		return nil, err
	}

	return r.Get(i), nil
}

// GetAs returns the field at position i coerced on the fly to the target
// type. The underlying declared column type is not altered.
func (r *Row) GetAs(i int, target value.Type, opts ...value.ConvertOption) (any, error) {
	return value.Convert(r.Get(i), target, opts...)
}

// GetNamedAs is GetNamed with on-the-fly coercion.
func (r *Row) GetNamedAs(name string, target value.Type, opts ...value.ConvertOption) (any, error) {
	v, err := r.GetNamed(name)
	if err != nil {
		return nil, err
	}

	return value.Convert(v, target, opts...)
}

// Set replaces the field at position i. On an attached row the write lands
// in the owning matrix.
func (r *Row) Set(i int, v any) {
	if r.owner == nil {
		r.vals[i] = v
		return
	}
	r.owner.columns[i].Set(r.index, v)
}

// SetNamed replaces the field in the named column.
func (r *Row) SetNamed(name string, v any) error {
	i, err := r.fieldIndex(name)
	if err != nil {
		return err
	}
	r.Set(i, v)

	return nil
}

// Values returns the row's cells as an independent slice in column order.
func (r *Row) Values() []any {
	out := make([]any, r.Len())
	for i := range out {
		out[i] = r.Get(i)
	}

	return out
}

// Names returns the column names the row's fields map to.
func (r *Row) Names() []string {
	if r.owner == nil {
		out := make([]string, len(r.names))
		copy(out, r.names)

		return out
	}

	return r.owner.ColumnNames()
}

// Minus returns the row's values with the field at position i removed,
// as a plain ordered slice.
func (r *Row) Minus(i int) ([]any, error) {
	if i < 0 || i >= r.Len() {
		return nil, fmt.Errorf("%w: field %d of %d", errs.ErrColumnNotFound, i, r.Len())
	}
	vals := r.Values()

	return append(vals[:i], vals[i+1:]...), nil
}

// MinusNamed returns the row's values with the named field removed.
func (r *Row) MinusNamed(name string) ([]any, error) {
	i, err := r.fieldIndex(name)
	if err != nil {
		return nil, err
	}

	return r.Minus(i)
}

// Detach returns an independent copy of the row. Mutating either side
// afterwards never affects the other.
func (r *Row) Detach() *Row {
	return &Row{vals: r.Values(), names: r.Names()}
}

func (r *Row) fieldIndex(name string) (int, error) {
	if r.owner != nil {
		return r.owner.ColumnIndex(name)
	}
	for i, n := range r.names {
		if n == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
}
