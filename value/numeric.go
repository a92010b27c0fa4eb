package value

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AsFloat widens v to a float64 when it is a number or a numeric-looking
// string. The second return is false for null and non-numeric values.
// Statistics use this to skip entries that cannot contribute.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case *big.Int:
		if t == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(t).Float64()

		return f, true
	case decimal.Decimal:
		return t.InexactFloat64(), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// AsDecimal widens v to an arbitrary-precision decimal on the same terms
// as AsFloat. Aggregations over Decimal or BigInt columns accumulate
// through this to avoid float drift.
func AsDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case *big.Int:
		if t == nil {
			return decimal.Zero, false
		}

		return decimal.NewFromBigInt(t, 0), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}

		return d, true
	default:
		return decimal.Zero, false
	}
}

// IsEmpty reports whether v counts as empty for row/column pruning:
// null, or a string that is blank after trimming.
func IsEmpty(v any) bool {
	if IsNull(v) {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	return false
}

// Equal compares two cell values for structural equality. Numeric values of
// different widths compare by value, so int(1) equals int64(1) and
// decimal "1.0" equals float 1.0. Null equals only null. Cells of
// uncomparable dynamic types (slices, maps) compare by reflect.DeepEqual,
// never by the panicking interface comparison.
func Equal(a, b any) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	ta, tb := TypeOf(a), TypeOf(b)
	if ta.IsNumeric() && tb.IsNumeric() {
		da, okA := AsDecimal(a)
		db, okB := AsDecimal(b)
		if okA && okB {
			return da.Equal(db)
		}

		return false
	}
	if ta == Time && tb == Time {
		return a.(time.Time).Equal(b.(time.Time))
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}

	return a == b
}
