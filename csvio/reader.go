package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/options"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// Reader parses a character stream into a Matrix of String columns.
// Type coercion is left to the caller via the matrix Convert family.
type Reader struct {
	cfg *config
	src io.Reader
}

// NewReader creates a Reader over src with the given options.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Reader{cfg: cfg, src: src}, nil
}

// Read consumes the whole stream and builds the Matrix.
func (r *Reader) Read() (*matrix.Matrix, error) {
	src := r.src
	if r.cfg.gzipped {
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrCSVFormat, err)
		}
		defer gz.Close()
		src = gz
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrCSVFormat, err)
	}

	records, err := r.parse(string(data))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", errs.ErrCSVFormat)
	}

	header := r.cfg.header
	if r.cfg.firstRowHeader {
		header = make([]string, len(records[0]))
		for i, f := range records[0] {
			if f == nil {
				header[i] = ""
				continue
			}
			header[i] = f.(string)
		}
		records = records[1:]
	}
	if header == nil {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("c%d", i+1)
		}
	}
	header, err = dedupe(header, r.cfg.duplicatePolicy)
	if err != nil {
		return nil, err
	}

	width := len(header)
	cols := make([][]any, width)
	for c := range cols {
		cols[c] = make([]any, len(records))
	}
	for rec, fields := range records {
		if len(fields) != width {
			return nil, fmt.Errorf("%w: record %d has %d fields, expected %d",
				errs.ErrCSVFormat, rec+1, len(fields), width)
		}
		for c, f := range fields {
			cols[c][rec] = f
		}
	}

	types := make([]value.Type, width)
	for i := range types {
		types[i] = value.String
	}
	named := matrix.NamedColumns{}
	for c, name := range header {
		named = named.Add(name, cols[c]...)
	}

	return matrix.NewBuilder().Types(types...).ColumnMap(named).Build()
}

// parse tokenizes the input into records of fields. A nil field is a null
// cell (the configured null token).
func (r *Reader) parse(data string) ([][]any, error) {
	cfg := r.cfg
	var (
		records   [][]any
		fields    []any
		field     strings.Builder
		inQuotes  bool
		fieldUsed bool // a quoted empty field is not blank
	)

	endField := func(quoted bool) {
		text := field.String()
		if cfg.trimSpace && !quoted {
			text = strings.TrimSpace(text)
		}
		if !quoted && text == cfg.nullToken {
			fields = append(fields, nil)
		} else {
			fields = append(fields, text)
		}
		field.Reset()
	}
	endRecord := func(quoted bool) {
		blank := len(fields) == 0 && field.Len() == 0 && !fieldUsed
		if blank && cfg.skipBlankLines {
			return
		}
		endField(quoted)
		records = append(records, fields)
		fields = nil
		fieldUsed = false
	}

	runes := []rune(data)
	quotedField := false
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			switch {
			case cfg.escape != 0 && ch == cfg.escape && i+1 < len(runes):
				i++
				field.WriteRune(runes[i])
			case ch == cfg.quote && cfg.escape == 0 && i+1 < len(runes) && runes[i+1] == cfg.quote:
				field.WriteRune(cfg.quote)
				i++
			case ch == cfg.quote:
				inQuotes = false
			default:
				field.WriteRune(ch)
			}
			continue
		}

		switch {
		case ch == cfg.quote && field.Len() == 0:
			inQuotes = true
			quotedField = true
			fieldUsed = true
		case ch == cfg.delimiter:
			endField(quotedField)
			quotedField = false
			fieldUsed = true
		case ch == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRecord(quotedField)
			quotedField = false
		case ch == '\n':
			endRecord(quotedField)
			quotedField = false
		case cfg.comment != 0 && ch == cfg.comment && len(fields) == 0 && field.Len() == 0 && !fieldUsed:
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		default:
			field.WriteRune(ch)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quoted field", errs.ErrCSVFormat)
	}
	if field.Len() > 0 || len(fields) > 0 || fieldUsed {
		endRecord(quotedField)
	}

	return records, nil
}

func dedupe(header []string, policy DuplicatePolicy) ([]string, error) {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		seen[name]++
		if seen[name] == 1 {
			out[i] = name
			continue
		}
		if policy == DuplicateError {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateHeader, name)
		}
		out[i] = fmt.Sprintf("%s_%d", name, seen[name])
	}

	return out, nil
}
