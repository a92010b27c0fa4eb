package matrix

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/hash"
	"github.com/arloliu/tabular/value"
)

// Column is an ordered, mutable sequence of cells sharing one declared type.
// Matrix accessors return columns by reference, so mutating a fetched
// Column is visible in the owning Matrix. Operations documented as
// returning a new Column never mutate the receiver.
type Column struct {
	typ    value.Type
	values []any
}

// NewColumn creates a column with the given declared type and initial values.
// The values slice is used directly, not copied.
func NewColumn(typ value.Type, values ...any) *Column {
	return &Column{typ: typ, values: values}
}

// Type returns the declared type of the column.
func (c *Column) Type() value.Type {
	return c.typ
}

// Len returns the number of cells.
func (c *Column) Len() int {
	return len(c.values)
}

// Get returns the cell at position i.
func (c *Column) Get(i int) any {
	return c.values[i]
}

// GetAs returns the cell at position i coerced to the target type.
// The column's declared type is not changed.
func (c *Column) GetAs(i int, target value.Type, opts ...value.ConvertOption) (any, error) {
	return value.Convert(c.values[i], target, opts...)
}

// Set replaces the cell at position i. Null is permitted and the declared
// type is unchanged.
func (c *Column) Set(i int, v any) {
	c.values[i] = v
}

// Append adds values to the end of the column.
func (c *Column) Append(vs ...any) *Column {
	c.values = append(c.values, vs...)
	return c
}

// Values returns the live backing slice. Mutations show through.
func (c *Column) Values() []any {
	return c.values
}

// Clone returns an independent copy of the column.
func (c *Column) Clone() *Column {
	vals := make([]any, len(c.values))
	copy(vals, c.values)

	return &Column{typ: c.typ, values: vals}
}

// SubList returns a new column holding positions [from, to).
func (c *Column) SubList(from, to int) (*Column, error) {
	if from < 0 || to > len(c.values) || from > to {
		return nil, fmt.Errorf("%w: sublist [%d, %d) of %d values", errs.ErrRowIndex, from, to, len(c.values))
	}
	vals := make([]any, to-from)
	copy(vals, c.values[from:to])

	return &Column{typ: c.typ, values: vals}, nil
}

// Unique returns a new column with duplicates removed, keeping the first
// occurrence of each distinct value. Null counts as a value.
func (c *Column) Unique() *Column {
	seen := make(map[uint64][]any)
	out := make([]any, 0, len(c.values))
	for _, v := range c.values {
		k := hash.Key(v)
		dup := false
		for _, prev := range seen[k] {
			if value.Equal(prev, v) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[k] = append(seen[k], v)
		out = append(out, v)
	}

	return &Column{typ: c.typ, values: out}
}

// RemoveNulls returns a new column with all null cells dropped.
func (c *Column) RemoveNulls() *Column {
	out := make([]any, 0, len(c.values))
	for _, v := range c.values {
		if !value.IsNull(v) {
			out = append(out, v)
		}
	}

	return &Column{typ: c.typ, values: out}
}

// Op identifies an elementwise arithmetic operation.
type Op uint8

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
)

// Add returns a new column with operand added elementwise. A scalar operand
// broadcasts over every cell; a sequence operand is zipped positionally.
// The result always has the column's own length: positions beyond a shorter
// operand yield null, extra positions of a longer operand are ignored, and
// null absorbs (null op x = null). On string columns Add concatenates.
func (c *Column) Add(operand any) *Column { return c.apply(OpAdd, operand) }

// Subtract returns a new column with operand subtracted elementwise, under
// the same broadcasting rules as Add. On string columns it removes the
// first occurrence of the operand substring.
func (c *Column) Subtract(operand any) *Column { return c.apply(OpSubtract, operand) }

// Multiply returns a new column with cells multiplied elementwise.
func (c *Column) Multiply(operand any) *Column { return c.apply(OpMultiply, operand) }

// Divide returns a new column with cells divided elementwise. Division by
// zero yields null.
func (c *Column) Divide(operand any) *Column { return c.apply(OpDivide, operand) }

// Power returns a new column with cells raised to the operand elementwise.
func (c *Column) Power(operand any) *Column { return c.apply(OpPower, operand) }

func (c *Column) apply(op Op, operand any) *Column {
	at := operandAt(operand)
	out := make([]any, len(c.values))
	for i, v := range c.values {
		out[i] = applyCell(op, v, at(i))
	}

	return &Column{typ: inferColumnType(out), values: out}
}

// operandAt normalizes a scalar or sequence operand into a positional
// accessor. Positions past the end of a sequence read as null.
func operandAt(operand any) func(int) any {
	if col, ok := operand.(*Column); ok {
		operand = col.values
	}
	rv := reflect.ValueOf(operand)
	if operand == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || isByteSlice(operand) {
		return func(int) any { return operand }
	}

	return func(i int) any {
		if i >= rv.Len() {
			return nil
		}

		return rv.Index(i).Interface()
	}
}

func isByteSlice(v any) bool {
	_, ok := v.([]byte)
	return ok
}

func applyCell(op Op, a, b any) any {
	if value.IsNull(a) || value.IsNull(b) {
		return nil
	}
	if s, ok := a.(string); ok {
		switch op {
		case OpAdd:
			return s + stringify(b)
		case OpSubtract:
			return strings.Replace(s, stringify(b), "", 1)
		default:
			return nil
		}
	}

	da, okA := value.AsDecimal(a)
	db, okB := value.AsDecimal(b)
	if !okA || !okB {
		return nil
	}

	exact := value.TypeOf(a) == value.Decimal || value.TypeOf(a) == value.BigInt ||
		value.TypeOf(b) == value.Decimal || value.TypeOf(b) == value.BigInt
	if exact {
		return applyDecimal(op, da, db)
	}

	ints := value.TypeOf(a).IsInteger() && value.TypeOf(b).IsInteger()
	fa, _ := value.AsFloat(a)
	fb, _ := value.AsFloat(b)
	switch op {
	case OpAdd:
		if ints {
			return intOrFloat(fa + fb)
		}

		return fa + fb
	case OpSubtract:
		if ints {
			return intOrFloat(fa - fb)
		}

		return fa - fb
	case OpMultiply:
		if ints {
			return intOrFloat(fa * fb)
		}

		return fa * fb
	case OpDivide:
		if fb == 0 {
			return nil
		}

		return fa / fb
	case OpPower:
		return math.Pow(fa, fb)
	default:
		return nil
	}
}

func applyDecimal(op Op, a, b decimal.Decimal) any {
	switch op {
	case OpAdd:
		return a.Add(b)
	case OpSubtract:
		return a.Sub(b)
	case OpMultiply:
		return a.Mul(b)
	case OpDivide:
		if b.IsZero() {
			return nil
		}

		return a.DivRound(b, int32(decimal.DivisionPrecision))
	case OpPower:
		fa, fb := a.InexactFloat64(), b.InexactFloat64()

		return decimal.NewFromFloat(math.Pow(fa, fb))
	default:
		return nil
	}
}

func intOrFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}

	return f
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

// inferColumnType folds the common supertype over the nominal types of the
// non-null values, so arithmetic results carry a meaningful declared type.
func inferColumnType(values []any) value.Type {
	t := value.Type(0)
	first := true
	for _, v := range values {
		if value.IsNull(v) {
			continue
		}
		if first {
			t = value.TypeOf(v)
			first = false
			continue
		}
		t = value.CommonSuper(t, value.TypeOf(v))
	}
	if first {
		return value.Any
	}

	return t
}

// numericValues extracts the float64 view of the column, skipping null and
// non-numeric cells.
func (c *Column) numericValues() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if value.IsNull(v) {
			continue
		}
		if f, ok := value.AsFloat(v); ok {
			out = append(out, f)
		}
	}

	return out
}

// Max returns the largest numeric cell, skipping null and non-numeric
// entries. The second return is false when no numeric cell exists.
func (c *Column) Max() (float64, bool) {
	nums := c.numericValues()
	if len(nums) == 0 {
		return 0, false
	}
	m := nums[0]
	for _, f := range nums[1:] {
		if f > m {
			m = f
		}
	}

	return m, true
}

// Min returns the smallest numeric cell on the same terms as Max.
func (c *Column) Min() (float64, bool) {
	nums := c.numericValues()
	if len(nums) == 0 {
		return 0, false
	}
	m := nums[0]
	for _, f := range nums[1:] {
		if f < m {
			m = f
		}
	}

	return m, true
}

// Mean returns the arithmetic mean of the numeric cells.
func (c *Column) Mean() (float64, bool) {
	nums := c.numericValues()
	if len(nums) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, f := range nums {
		sum += f
	}

	return sum / float64(len(nums)), true
}

// Median returns the median of the numeric cells.
func (c *Column) Median() (float64, bool) {
	nums := c.numericValues()
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], true
	}

	return (nums[mid-1] + nums[mid]) / 2, true
}

// Variance returns the bias-corrected (sample) variance of the numeric cells.
func (c *Column) Variance() (float64, bool) {
	return c.variance(true)
}

// Stdev returns the bias-corrected (sample) standard deviation.
func (c *Column) Stdev() (float64, bool) {
	v, ok := c.variance(true)
	if !ok {
		return 0, false
	}

	return math.Sqrt(v), true
}

// StdevP returns the population standard deviation.
func (c *Column) StdevP() (float64, bool) {
	v, ok := c.variance(false)
	if !ok {
		return 0, false
	}

	return math.Sqrt(v), true
}

func (c *Column) variance(sample bool) (float64, bool) {
	nums := c.numericValues()
	if len(nums) == 0 || (sample && len(nums) < 2) {
		return 0, false
	}
	mean := 0.0
	for _, f := range nums {
		mean += f
	}
	mean /= float64(len(nums))

	ss := 0.0
	for _, f := range nums {
		d := f - mean
		ss += d * d
	}
	n := float64(len(nums))
	if sample {
		n--
	}

	return ss / n, true
}
