package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/tabular/internal/options"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// Writer serializes a Matrix to a character stream.
type Writer struct {
	cfg *config
	dst io.Writer
}

// NewWriter creates a Writer over dst with the given options.
func NewWriter(dst io.Writer, opts ...Option) (*Writer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, dst: dst}, nil
}

// Write serializes the matrix. A header row is written unless the writer
// was configured WithoutHeader; WithHeader overrides the matrix's own
// column names. Null cells render as the null token.
func (w *Writer) Write(m *matrix.Matrix) error {
	dst := w.dst
	var gz *gzip.Writer
	if w.cfg.gzipped {
		gz = gzip.NewWriter(dst)
		dst = gz
	}

	var b strings.Builder
	header := w.cfg.header
	if header == nil && w.cfg.firstRowHeader {
		header = m.ColumnNames()
	}
	if header != nil {
		w.writeRecord(&b, anyStrings(header))
	}
	for r := 0; r < m.RowCount(); r++ {
		row, err := m.RowValues(r)
		if err != nil {
			return err
		}
		w.writeRecord(&b, row)
	}

	if _, err := io.WriteString(dst, b.String()); err != nil {
		return err
	}
	if gz != nil {
		return gz.Close()
	}

	return nil
}

func anyStrings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}

func (w *Writer) writeRecord(b *strings.Builder, row []any) {
	for i, v := range row {
		if i > 0 {
			b.WriteRune(w.cfg.delimiter)
		}
		b.WriteString(w.field(v))
	}
	sep := w.cfg.recordSeparator
	if sep == "" {
		sep = "\n"
	}
	b.WriteString(sep)
}

// field renders one cell, quoting when the text contains the delimiter,
// the quote character, a record break, or surrounding space.
func (w *Writer) field(v any) string {
	if value.IsNull(v) {
		return w.cfg.nullToken
	}

	text := cellString(v)
	needsQuote := strings.ContainsRune(text, w.cfg.delimiter) ||
		strings.ContainsRune(text, w.cfg.quote) ||
		strings.ContainsAny(text, "\r\n") ||
		(len(text) > 0 && text != strings.TrimSpace(text)) ||
		text == w.cfg.nullToken

	if !needsQuote {
		return text
	}

	q := string(w.cfg.quote)
	if w.cfg.escape != 0 {
		esc := string(w.cfg.escape)
		text = strings.ReplaceAll(text, esc, esc+esc)
		text = strings.ReplaceAll(text, q, esc+q)
	} else {
		text = strings.ReplaceAll(text, q, q+q)
	}

	return q + text + q
}

func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}
