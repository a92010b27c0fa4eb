package value

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/errs"
)

// Type identifies the declared type of a column or the nominal type of a cell value.
type Type uint8

const (
	Any     Type = iota // Any is the untyped default; any value is acceptable.
	Bool                // Bool holds bool values.
	Int16               // Int16 holds 16-bit signed integers.
	Int                 // Int holds 32-bit-range signed integers (Go int).
	Int64               // Int64 holds 64-bit signed integers.
	Float32             // Float32 holds 32-bit floating point values.
	Float64             // Float64 holds 64-bit floating point values.
	BigInt              // BigInt holds *big.Int arbitrary-size integers.
	Decimal             // Decimal holds decimal.Decimal arbitrary-precision values.
	String              // String holds string values.
	Time                // Time holds time.Time values.
)

func (t Type) String() string {
	switch t {
	case Any:
		return "Any"
	case Bool:
		return "Bool"
	case Int16:
		return "Int16"
	case Int:
		return "Int"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case BigInt:
		return "BigInt"
	case Decimal:
		return "Decimal"
	case String:
		return "String"
	case Time:
		return "Time"
	default:
		return "Unknown"
	}
}

// ParseType returns the Type named by s, matched case-insensitively.
// It accepts both the canonical names from Type.String and a few common
// aliases (e.g. "int32", "double", "bigdecimal").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "untyped", "object":
		return Any, nil
	case "bool", "boolean":
		return Bool, nil
	case "int16", "short":
		return Int16, nil
	case "int", "int32", "integer":
		return Int, nil
	case "int64", "long":
		return Int64, nil
	case "float32", "float":
		return Float32, nil
	case "float64", "double":
		return Float64, nil
	case "bigint", "biginteger":
		return BigInt, nil
	case "decimal", "bigdecimal":
		return Decimal, nil
	case "string", "text":
		return String, nil
	case "time", "date", "datetime", "timestamp":
		return Time, nil
	default:
		return Any, fmt.Errorf("%w: %q", errs.ErrUnknownType, s)
	}
}

// IsNumeric reports whether t is one of the numeric types.
func (t Type) IsNumeric() bool {
	switch t {
	case Int16, Int, Int64, Float32, Float64, BigInt, Decimal:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is an integer type of any width.
func (t Type) IsInteger() bool {
	switch t {
	case Int16, Int, Int64, BigInt:
		return true
	default:
		return false
	}
}

// TypeOf returns the nominal Type of a runtime value. Nil maps to Any.
func TypeOf(v any) Type {
	switch v.(type) {
	case nil:
		return Any
	case bool:
		return Bool
	case int16, int8:
		return Int16
	case int, int32:
		return Int
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	case *big.Int:
		return BigInt
	case decimal.Decimal:
		return Decimal
	case string:
		return String
	case time.Time:
		return Time
	default:
		return Any
	}
}

// IsNull reports whether v represents a missing value.
// Typed nil pointers for BigInt count as null as well.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if b, ok := v.(*big.Int); ok {
		return b == nil
	}

	return false
}
