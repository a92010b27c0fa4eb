// Package csvio parses character streams into matrices of String columns
// and serializes matrices back out, with configurable delimiter, quote and
// escape characters, comment lines, header handling, null tokens, record
// separators and optional gzip compression.
//
// The reader produces text columns only; converting them to typed columns
// is the matrix Convert family's job:
//
//	r, _ := csvio.NewReader(f, csvio.WithTrimSpace())
//	m, _ := r.Read()
//	_ = m.ConvertTypes(map[string]value.Type{"id": value.Int, "salary": value.Decimal})
//
// Character sets other than UTF-8 are the caller's concern: wrap the
// stream in a decoding io.Reader before handing it over.
package csvio
