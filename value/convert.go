package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/options"
)

// convertConfig carries the optional parameters of a Convert call.
type convertConfig struct {
	layout      string
	groupSep    rune
	decSep      rune
	fallback    any
	hasFallback bool
	nullOnError bool
}

// ConvertOption represents a functional option for configuring a Convert call.
type ConvertOption = options.Option[*convertConfig]

// WithLayout sets an explicit time layout (Go reference layout) used when
// converting to or from Time, or when formatting a Time as a String.
func WithLayout(layout string) ConvertOption {
	return options.NoError(func(c *convertConfig) {
		c.layout = layout
	})
}

// WithSeparators configures locale-aware numeric parsing with the given
// grouping and decimal separators, e.g. WithSeparators('.', ',') for
// "1.234,56". Scientific notation is accepted either way.
func WithSeparators(group, dec rune) ConvertOption {
	return options.New(func(c *convertConfig) error {
		if group == dec {
			return fmt.Errorf("%w: grouping and decimal separators must differ", errs.ErrConversion)
		}
		c.groupSep = group
		c.decSep = dec

		return nil
	})
}

// WithFallback substitutes v for null input instead of propagating null.
func WithFallback(v any) ConvertOption {
	return options.NoError(func(c *convertConfig) {
		c.fallback = v
		c.hasFallback = true
	})
}

// WithNullOnError maps per-value conversion failures to null instead of
// returning an error.
func WithNullOnError() ConvertOption {
	return options.NoError(func(c *convertConfig) {
		c.nullOnError = true
	})
}

// Convert coerces v to the target type.
//
// Numeric targets accept numbers, numeric strings (optionally locale-aware
// via WithSeparators) and booleans (true→1, false→0). Time targets accept
// time.Time, ISO-8601 strings, epoch values, or an explicit WithLayout
// pattern. Bool targets accept numeric truthiness (positive→true,
// zero or negative→false) and the case-insensitive tokens
// yes/on/true and no/off/false.
//
// Null input converts to null, or to the WithFallback value when one is
// given. A failed conversion returns an error wrapping errs.ErrConversion,
// unless WithNullOnError is set, in which case it yields null.
func Convert(v any, target Type, opts ...ConvertOption) (any, error) {
	cfg := &convertConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return convert(v, target, cfg)
}

func convert(v any, target Type, cfg *convertConfig) (any, error) {
	if IsNull(v) {
		if !cfg.hasFallback {
			return nil, nil
		}
		v = cfg.fallback
	}

	out, err := convertValue(v, target, cfg)
	if err != nil {
		if cfg.nullOnError {
			return nil, nil
		}

		return nil, err
	}

	return out, nil
}

func convertValue(v any, target Type, cfg *convertConfig) (any, error) {
	switch target {
	case Any:
		return v, nil
	case Bool:
		return toBool(v, cfg)
	case Int16:
		n, err := toInt64(v, cfg)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return nil, convErr(v, target, "out of range")
		}

		return int16(n), nil
	case Int:
		n, err := toInt64(v, cfg)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, convErr(v, target, "out of range")
		}

		return int(n), nil
	case Int64:
		return toInt64(v, cfg)
	case Float32:
		f, err := toFloat64(v, cfg)
		if err != nil {
			return nil, err
		}

		return float32(f), nil
	case Float64:
		return toFloat64(v, cfg)
	case BigInt:
		return toBigInt(v, cfg)
	case Decimal:
		return toDecimal(v, cfg)
	case String:
		return toString(v, cfg), nil
	case Time:
		return toTime(v, cfg)
	default:
		return nil, fmt.Errorf("%w: type code %d", errs.ErrUnknownType, target)
	}
}

func convErr(v any, target Type, reason string) error {
	return fmt.Errorf("%w: cannot convert %v (%T) to %s: %s", errs.ErrConversion, v, v, target, reason)
}

// normalizeNumeric rewrites a locale-formatted numeric string into the form
// strconv expects. Without configured separators the string is returned
// trimmed but otherwise untouched.
func normalizeNumeric(s string, cfg *convertConfig) string {
	s = strings.TrimSpace(s)
	if cfg.decSep == 0 && cfg.groupSep == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case cfg.groupSep:
			// Grouping separators carry no value.
		case cfg.decSep:
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func toInt64(v any, cfg *convertConfig) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float32:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case bool:
		if t {
			return 1, nil
		}

		return 0, nil
	case *big.Int:
		if !t.IsInt64() {
			return 0, convErr(v, Int64, "out of range")
		}

		return t.Int64(), nil
	case decimal.Decimal:
		return t.IntPart(), nil
	case string:
		s := normalizeNumeric(t, cfg)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		// Fractional or scientific-notation strings go through float parsing.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, convErr(v, Int64, "not a numeric string")
		}

		return int64(f), nil
	default:
		return 0, convErr(v, Int64, "unsupported source type")
	}
}

func toFloat64(v any, cfg *convertConfig) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	case bool:
		if t {
			return 1, nil
		}

		return 0, nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()

		return f, nil
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case string:
		f, err := strconv.ParseFloat(normalizeNumeric(t, cfg), 64)
		if err != nil {
			return 0, convErr(v, Float64, "not a numeric string")
		}

		return f, nil
	default:
		return 0, convErr(v, Float64, "unsupported source type")
	}
}

func toBigInt(v any, cfg *convertConfig) (*big.Int, error) {
	switch t := v.(type) {
	case *big.Int:
		return t, nil
	case decimal.Decimal:
		return t.BigInt(), nil
	case string:
		s := normalizeNumeric(t, cfg)
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, convErr(v, BigInt, "not a numeric string")
		}
		n, _ := big.NewFloat(f).Int(nil)

		return n, nil
	case float32:
		n, _ := big.NewFloat(float64(t)).Int(nil)

		return n, nil
	case float64:
		n, _ := big.NewFloat(t).Int(nil)

		return n, nil
	default:
		n, err := toInt64(v, cfg)
		if err != nil {
			return nil, convErr(v, BigInt, "unsupported source type")
		}

		return big.NewInt(n), nil
	}
}

func toDecimal(v any, cfg *convertConfig) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case *big.Int:
		return decimal.NewFromBigInt(t, 0), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		d, err := decimal.NewFromString(normalizeNumeric(t, cfg))
		if err != nil {
			return decimal.Zero, convErr(v, Decimal, "not a numeric string")
		}

		return d, nil
	default:
		n, err := toInt64(v, cfg)
		if err != nil {
			return decimal.Zero, convErr(v, Decimal, "unsupported source type")
		}

		return decimal.NewFromInt(n), nil
	}
}

// truthy and falsy are the case-insensitive boolean tokens Convert accepts.
var (
	truthy = map[string]bool{"true": true, "yes": true, "on": true, "1": true}
	falsy  = map[string]bool{"false": true, "no": true, "off": true, "0": true}
)

func toBool(v any, cfg *convertConfig) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if truthy[s] {
			return true, nil
		}
		if falsy[s] {
			return false, nil
		}
		f, err := strconv.ParseFloat(normalizeNumeric(t, cfg), 64)
		if err != nil {
			return false, convErr(v, Bool, "not a boolean token")
		}

		return f > 0, nil
	default:
		f, err := toFloat64(v, cfg)
		if err != nil {
			return false, convErr(v, Bool, "unsupported source type")
		}

		return f > 0, nil
	}
}

func toString(v any, cfg *convertConfig) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		if cfg.layout != "" {
			return t.Format(cfg.layout)
		}

		return t.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// timeLayouts are tried in order when no explicit layout is configured.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// epochMillisThreshold separates epoch-second from epoch-millisecond values:
// anything at or above it is taken as milliseconds (~5138-03-16 in seconds).
const epochMillisThreshold = 100_000_000_000

func toTime(v any, cfg *convertConfig) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if cfg.layout != "" {
			parsed, err := time.Parse(cfg.layout, s)
			if err != nil {
				return time.Time{}, convErr(v, Time, "does not match layout "+cfg.layout)
			}

			return parsed, nil
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}

		return time.Time{}, convErr(v, Time, "unrecognized time format")
	default:
		epoch, err := toInt64(v, cfg)
		if err != nil {
			return time.Time{}, convErr(v, Time, "unsupported source type")
		}
		if epoch >= epochMillisThreshold || epoch <= -epochMillisThreshold {
			return time.UnixMilli(epoch).UTC(), nil
		}

		return time.Unix(epoch, 0).UTC(), nil
	}
}
