package value

// integer widening ranks; higher rank holds every value of a lower one.
var intRank = map[Type]int{Int16: 1, Int: 2, Int64: 3, BigInt: 4}

// CommonSuper returns the narrowest type both a and b can be widened to
// without losing information.
//
// Equal types are their own supertype. Numeric types widen along the integer
// ladder (Int16 → Int → Int64 → BigInt) and the float ladder
// (Float32 → Float64). Mixing integers and floats stays in floating point as
// long as the integer fits the float's mantissa exactly; any pairing that
// could lose precision, or that involves an arbitrary-precision side, widens
// to Decimal. Every other differing pair resolves to Any, the universal top.
func CommonSuper(a, b Type) Type {
	if a == b {
		return a
	}
	if a == Any || b == Any {
		return Any
	}

	if a.IsNumeric() && b.IsNumeric() {
		return numericSuper(a, b)
	}

	return Any
}

func numericSuper(a, b Type) Type {
	if a == Decimal || b == Decimal {
		return Decimal
	}

	aInt, bInt := a.IsInteger(), b.IsInteger()
	switch {
	case aInt && bInt:
		if intRank[a] >= intRank[b] {
			return a
		}

		return b

	case !aInt && !bInt:
		// Float32 vs Float64.
		return Float64

	default:
		// One integer side, one float side.
		i, f := a, b
		if bInt {
			i, f = b, a
		}
		switch i {
		case Int16:
			// Fits both float mantissas exactly.
			return f
		case Int:
			// Fits a float64 mantissa, not a float32 one.
			return Float64
		default:
			// Int64 and BigInt can exceed any float mantissa.
			return Decimal
		}
	}
}
