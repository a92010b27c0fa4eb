package matrix

import (
	"fmt"
	"strings"

	"github.com/arloliu/tabular/internal/options"
	"github.com/arloliu/tabular/value"
)

type equalConfig struct {
	ignoreTypes bool
}

// EqualOption represents a functional option for configuring Equals.
type EqualOption = options.Option[*equalConfig]

// IgnoreTypes makes Equals forgiving about declared-type differences,
// comparing names and values only.
func IgnoreTypes() EqualOption {
	return options.NoError(func(c *equalConfig) {
		c.ignoreTypes = true
	})
}

// Equals reports structural equality: same column names in the same order,
// equal cell values, and (unless IgnoreTypes is given) equal declared
// types. The matrix names themselves are not compared.
func (m *Matrix) Equals(other *Matrix, opts ...EqualOption) bool {
	cfg := &equalConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return false
	}
	if other == nil {
		return false
	}
	if len(m.colNames) != len(other.colNames) || m.RowCount() != other.RowCount() {
		return false
	}
	for i, name := range m.colNames {
		if name != other.colNames[i] {
			return false
		}
		if !cfg.ignoreTypes && m.types[i] != other.types[i] {
			return false
		}
	}
	for c := range m.columns {
		for r := 0; r < m.RowCount(); r++ {
			if !value.Equal(m.columns[c].Get(r), other.columns[c].Get(r)) {
				return false
			}
		}
	}

	return true
}

// Diff returns a human-readable report of the differences between the two
// matrices: shape, column name, declared type and per-row value
// differences. An empty report means the matrices are structurally equal.
func (m *Matrix) Diff(other *Matrix) string {
	var b strings.Builder

	mr, mc := m.Dimensions()
	or, oc := other.Dimensions()
	if mr != or || mc != oc {
		fmt.Fprintf(&b, "dimensions differ: %d x %d vs %d x %d\n", mr, mc, or, oc)
	}

	cols := mc
	if oc < cols {
		cols = oc
	}
	for i := 0; i < cols; i++ {
		if m.colNames[i] != other.colNames[i] {
			fmt.Fprintf(&b, "column %d name differs: %q vs %q\n", i, m.colNames[i], other.colNames[i])
		}
		if m.types[i] != other.types[i] {
			fmt.Fprintf(&b, "column %q type differs: %s vs %s\n", m.colNames[i], m.types[i], other.types[i])
		}
	}

	rows := mr
	if or < rows {
		rows = or
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			a, bv := m.columns[c].Get(r), other.columns[c].Get(r)
			if !value.Equal(a, bv) {
				fmt.Fprintf(&b, "row %d, column %q: %s vs %s\n",
					r, m.colNames[c], cellText(a), cellText(bv))
			}
		}
	}

	return b.String()
}
