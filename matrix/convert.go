package matrix

import (
	"fmt"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

// ColumnConverter describes the conversion of one named column, optionally
// through a custom converter function. When Fn is set it replaces
// value.Convert for that column; a Fn that maps failures to nil gives
// per-value recovery instead of aborting the call.
type ColumnConverter struct {
	Name    string
	Target  value.Type
	Options []value.ConvertOption
	Fn      func(any) (any, error)
}

// colPlan is one column's resolved conversion within an all-or-nothing call.
type colPlan struct {
	index  int
	target value.Type
	opts   []value.ConvertOption
	fn     func(any) (any, error)
}

// ConvertColumn coerces one named column to the target type and updates its
// declared type. The call is all-or-nothing: on any cell failure the matrix
// is left unchanged.
func (m *Matrix) ConvertColumn(name string, target value.Type, opts ...value.ConvertOption) error {
	i, err := m.ColumnIndex(name)
	if err != nil {
		return err
	}

	return m.convertPlans([]colPlan{{index: i, target: target, opts: opts}})
}

// ConvertColumnAt is ConvertColumn addressed by position.
func (m *Matrix) ConvertColumnAt(pos int, target value.Type, opts ...value.ConvertOption) error {
	if pos < 0 || pos >= len(m.columns) {
		return fmt.Errorf("%w: position %d of %d", errs.ErrColumnNotFound, pos, len(m.columns))
	}

	return m.convertPlans([]colPlan{{index: pos, target: target, opts: opts}})
}

// ConvertColumns coerces a list of named columns to one shared target type.
func (m *Matrix) ConvertColumns(names []string, target value.Type, opts ...value.ConvertOption) error {
	plans := make([]colPlan, 0, len(names))
	for _, name := range names {
		i, err := m.ColumnIndex(name)
		if err != nil {
			return err
		}
		plans = append(plans, colPlan{index: i, target: target, opts: opts})
	}

	return m.convertPlans(plans)
}

// ConvertRange coerces the contiguous column range [from, to) to one target
// type.
func (m *Matrix) ConvertRange(from, to int, target value.Type, opts ...value.ConvertOption) error {
	if from < 0 || to > len(m.columns) || from > to {
		return fmt.Errorf("%w: range [%d, %d) of %d columns", errs.ErrColumnNotFound, from, to, len(m.columns))
	}
	plans := make([]colPlan, 0, to-from)
	for i := from; i < to; i++ {
		plans = append(plans, colPlan{index: i, target: target, opts: opts})
	}

	return m.convertPlans(plans)
}

// ConvertTypes coerces each named column to its own target type.
// Unselected columns are untouched.
func (m *Matrix) ConvertTypes(targets map[string]value.Type, opts ...value.ConvertOption) error {
	plans := make([]colPlan, 0, len(targets))
	// Walk column order so failure messages are deterministic.
	for i, name := range m.colNames {
		target, ok := targets[name]
		if !ok {
			continue
		}
		plans = append(plans, colPlan{index: i, target: target, opts: opts})
	}
	if len(plans) != len(targets) {
		for name := range targets {
			if _, err := m.ColumnIndex(name); err != nil {
				return err
			}
		}
	}

	return m.convertPlans(plans)
}

// ConvertWith applies an ordered list of per-column converter descriptors.
func (m *Matrix) ConvertWith(descs ...ColumnConverter) error {
	plans := make([]colPlan, 0, len(descs))
	for _, d := range descs {
		i, err := m.ColumnIndex(d.Name)
		if err != nil {
			return err
		}
		plans = append(plans, colPlan{index: i, target: d.Target, opts: d.Options, fn: d.Fn})
	}

	return m.convertPlans(plans)
}

// convertPlans converts every planned column into fresh storage and commits
// only when all cells succeed, so a failing call leaves the prior state
// intact.
func (m *Matrix) convertPlans(plans []colPlan) error {
	converted := make([][]any, len(plans))
	for pi, p := range plans {
		src := m.columns[p.index].values
		dst := make([]any, len(src))
		for r, v := range src {
			var (
				out any
				err error
			)
			if p.fn != nil {
				out, err = p.fn(v)
			} else {
				out, err = value.Convert(v, p.target, p.opts...)
			}
			if err != nil {
				return fmt.Errorf("column %q, row %d: %w", m.colNames[p.index], r, err)
			}
			dst[r] = out
		}
		converted[pi] = dst
	}

	for pi, p := range plans {
		m.columns[p.index].values = converted[pi]
		m.columns[p.index].typ = p.target
		m.types[p.index] = p.target
	}

	return nil
}
