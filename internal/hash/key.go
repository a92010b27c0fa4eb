// Package hash builds the 64-bit composite keys used by hash joins and
// group-by. Keys are xxHash64 digests of the participating cell values with
// a field separator, so ("a","bc") and ("ab","c") hash differently.
package hash

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/tabular/value"
)

// sep separates fields inside a composite key. 0x1F is the ASCII unit
// separator; a string cell containing it can at worst cause a bucket
// collision, which the per-candidate equality check absorbs.
var sep = []byte{0x1f}

// nullMarker distinguishes a null field from the string "null".
var nullMarker = []byte{0x00, 'N'}

// Key returns the composite xxHash64 of the given cell values. Values that
// compare equal under value.Equal produce the same key, so numeric widths
// do not matter: int(2), int64(2) and float64(2) all hash alike.
// Buckets built on these keys still need an equality check per candidate;
// the hash only narrows the search.
func Key(values ...any) uint64 {
	d := xxhash.New()
	for i, v := range values {
		if i > 0 {
			_, _ = d.Write(sep)
		}
		writeValue(d, v)
	}

	return d.Sum64()
}

func writeValue(d *xxhash.Digest, v any) {
	if value.IsNull(v) {
		_, _ = d.Write(nullMarker)
		return
	}
	switch t := v.(type) {
	case string:
		_, _ = d.WriteString(t)
	case time.Time:
		_, _ = d.WriteString(strconv.FormatInt(t.UnixNano(), 10))
	default:
		// Equal numbers of any width widen to the same float64, which keeps
		// their digests identical.
		if f, ok := value.AsFloat(v); ok {
			_, _ = d.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		_, _ = d.WriteString(fmt.Sprintf("%v", t))
	}
}
