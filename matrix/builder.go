package matrix

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

// TabularResult is the row-iteration contract a foreign tabular source
// (e.g. a relational query result) satisfies to feed the Builder.
// ColumnTypes may return nil when the source carries no type metadata.
type TabularResult interface {
	ColumnNames() []string
	ColumnTypes() []value.Type
	Next() bool
	Scan() ([]any, error)
	Err() error
}

// NamedColumn pairs a column name with its values.
type NamedColumn struct {
	Name   string
	Values []any
}

// NamedColumns is an ordered collection of named columns, the map-like
// builder source that preserves insertion order.
type NamedColumns []NamedColumn

// Add appends a named column and returns the collection for chaining.
func (nc NamedColumns) Add(name string, values ...any) NamedColumns {
	return append(nc, NamedColumn{Name: name, Values: values})
}

type sourceKind uint8

const (
	srcNone sourceKind = iota
	srcColumnMap
	srcRows
	srcColumns
	srcRecords
	srcJSON
	srcResult
)

func (k sourceKind) String() string {
	switch k {
	case srcColumnMap:
		return "ColumnMap"
	case srcRows:
		return "Rows"
	case srcColumns:
		return "Columns"
	case srcRecords:
		return "Records"
	case srcJSON:
		return "JSONRecords"
	case srcResult:
		return "Result"
	default:
		return "none"
	}
}

// Builder assembles a Matrix from exactly one data source plus optional
// name, column names and declared types. Configuring a second source is
// rejected at Build time.
type Builder struct {
	name     string
	colNames []string
	types    []value.Type

	kind    sourceKind
	kinds   []sourceKind
	byName  NamedColumns
	byRow   [][]any
	byCol   [][]any
	records any
	rawJSON []byte
	result  TabularResult
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Name sets the matrix name.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// ColumnNames sets explicit column names, overriding any the source provides.
func (b *Builder) ColumnNames(names ...string) *Builder {
	b.colNames = names
	return b
}

// Types sets the declared column types. Unset types default to Any.
func (b *Builder) Types(types ...value.Type) *Builder {
	b.types = types
	return b
}

func (b *Builder) setSource(kind sourceKind) {
	b.kind = kind
	b.kinds = append(b.kinds, kind)
}

// ColumnMap sources the matrix from an ordered name→values collection.
func (b *Builder) ColumnMap(cols NamedColumns) *Builder {
	b.byName = cols
	b.setSource(srcColumnMap)

	return b
}

// Rows sources the matrix from a 2-D row-major array.
func (b *Builder) Rows(rows [][]any) *Builder {
	b.byRow = rows
	b.setSource(srcRows)

	return b
}

// Columns sources the matrix from a 2-D column-major array.
func (b *Builder) Columns(cols [][]any) *Builder {
	b.byCol = cols
	b.setSource(srcColumns)

	return b
}

// Records sources the matrix from a slice of uniform structs (or pointers
// to structs); exported fields become columns in declaration order.
func (b *Builder) Records(records any) *Builder {
	b.records = records
	b.setSource(srcRecords)

	return b
}

// JSONRecords sources the matrix from a JSON array of uniform objects.
// Column order follows the key order of the first object.
func (b *Builder) JSONRecords(data []byte) *Builder {
	b.rawJSON = data
	b.setSource(srcJSON)

	return b
}

// Result sources the matrix from a foreign tabular result, taking column
// names and declared types from its metadata.
func (b *Builder) Result(r TabularResult) *Builder {
	b.result = r
	b.setSource(srcResult)

	return b
}

// Build assembles the Matrix. It fails when multiple sources were
// configured, when names/types/columns lengths disagree, or when the source
// itself is malformed. With no source at all, Build produces a matrix of
// empty columns from the explicit names, sized later by the first populated
// column.
func (b *Builder) Build() (*Matrix, error) {
	if len(b.kinds) > 1 {
		return nil, fmt.Errorf("%w: multiple data sources configured (%v and %v)",
			errs.ErrInvalidBuilder, b.kinds[0], b.kinds[1])
	}

	var (
		names []string
		types []value.Type
		cols  [][]any
		err   error
	)

	switch b.kind {
	case srcNone:
		if len(b.colNames) == 0 {
			return nil, fmt.Errorf("%w: no data source and no column names", errs.ErrInvalidBuilder)
		}
		cols = make([][]any, len(b.colNames))
	case srcColumnMap:
		names = make([]string, len(b.byName))
		cols = make([][]any, len(b.byName))
		for i, nc := range b.byName {
			names[i] = nc.Name
			cols[i] = nc.Values
		}
	case srcRows:
		for i, row := range b.byRow {
			if len(row) != len(b.byRow[0]) {
				return nil, fmt.Errorf("%w: row %d has %d values, row 0 has %d",
					errs.ErrInvalidBuilder, i, len(row), len(b.byRow[0]))
			}
		}
		cols = transposeRows(b.byRow)
	case srcColumns:
		cols = make([][]any, len(b.byCol))
		for i, c := range b.byCol {
			cols[i] = append([]any(nil), c...)
		}
	case srcRecords:
		names, types, cols, err = recordColumns(b.records)
	case srcJSON:
		names, cols, err = jsonColumns(b.rawJSON)
	case srcResult:
		names, types, cols, err = resultColumns(b.result)
	}
	if err != nil {
		return nil, err
	}

	if len(b.colNames) > 0 {
		if len(b.colNames) != len(cols) {
			return nil, fmt.Errorf("%w: %d column names for %d columns",
				errs.ErrInvalidBuilder, len(b.colNames), len(cols))
		}
		names = b.colNames
	}
	if names == nil {
		names = make([]string, len(cols))
		for i := range names {
			names[i] = fmt.Sprintf("c%d", i+1)
		}
	}
	if len(b.types) > 0 {
		if len(b.types) != len(cols) {
			return nil, fmt.Errorf("%w: %d types for %d columns",
				errs.ErrInvalidBuilder, len(b.types), len(cols))
		}
		types = b.types
	}
	if types == nil {
		types = make([]value.Type, len(cols))
	}

	columns := make([]*Column, len(cols))
	for i, vals := range cols {
		columns[i] = NewColumn(types[i], vals...)
	}
	m, err := newMatrix(b.name, names, append([]value.Type(nil), types...), columns)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
	}

	return m, nil
}

func transposeRows(rows [][]any) [][]any {
	if len(rows) == 0 {
		return nil
	}
	cols := make([][]any, len(rows[0]))
	for c := range cols {
		cols[c] = make([]any, len(rows))
	}
	for r, row := range rows {
		for c := range cols {
			if c < len(row) {
				cols[c][r] = row[c]
			}
		}
	}

	return cols
}

// recordColumns converts a slice of uniform structs into columns via
// reflection over the exported fields.
func recordColumns(records any) ([]string, []value.Type, [][]any, error) {
	rv := reflect.ValueOf(records)
	if records == nil || rv.Kind() != reflect.Slice {
		return nil, nil, nil, fmt.Errorf("%w: Records requires a slice of structs, got %T",
			errs.ErrInvalidBuilder, records)
	}

	elemType := rv.Type().Elem()
	for elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("%w: Records requires struct elements, got %s",
			errs.ErrInvalidBuilder, elemType)
	}

	fields := make([]int, 0, elemType.NumField())
	names := make([]string, 0, elemType.NumField())
	types := make([]value.Type, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		f := elemType.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, i)
		names = append(names, f.Name)
		types = append(types, fieldType(f.Type))
	}

	cols := make([][]any, len(fields))
	for c := range cols {
		cols[c] = make([]any, rv.Len())
	}
	for r := 0; r < rv.Len(); r++ {
		elem := rv.Index(r)
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		for c, fi := range fields {
			cols[c][r] = elem.Field(fi).Interface()
		}
	}

	return names, types, cols, nil
}

func fieldType(t reflect.Type) value.Type {
	switch t {
	case reflect.TypeOf(time.Time{}):
		return value.Time
	case reflect.TypeOf(decimal.Decimal{}):
		return value.Decimal
	case reflect.TypeOf((*big.Int)(nil)):
		return value.BigInt
	}
	switch t.Kind() {
	case reflect.Bool:
		return value.Bool
	case reflect.Int8, reflect.Int16:
		return value.Int16
	case reflect.Int, reflect.Int32:
		return value.Int
	case reflect.Int64:
		return value.Int64
	case reflect.Float32:
		return value.Float32
	case reflect.Float64:
		return value.Float64
	case reflect.String:
		return value.String
	default:
		return value.Any
	}
}

// jsonColumns decodes a JSON array of uniform objects. The first object is
// tokenized to recover its key order, which map decoding discards.
func jsonColumns(data []byte) ([]string, [][]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty JSON record array", errs.ErrInvalidBuilder)
	}

	names, err := firstObjectKeys(data)
	if err != nil {
		return nil, nil, err
	}

	cols := make([][]any, len(names))
	for c := range cols {
		cols[c] = make([]any, len(records))
	}
	for r, rec := range records {
		for c, name := range names {
			cols[c][r] = rec[name]
		}
	}

	return names, cols, nil
}

func firstObjectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Consume the array '[' and the first object's '{'.
	for i := 0; i < 2; i++ {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
		}
	}

	var keys []string
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					return keys, nil
				}
				depth--
			}
			continue
		}
		if depth == 0 {
			if key, ok := tok.(string); ok {
				keys = append(keys, key)
				// Skip the value; nested containers bump depth above.
				var raw json.RawMessage
				if err := dec.Decode(&raw); err != nil {
					return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
				}
			}
		}
	}
}

func resultColumns(r TabularResult) ([]string, []value.Type, [][]any, error) {
	if r == nil {
		return nil, nil, nil, fmt.Errorf("%w: nil result", errs.ErrInvalidBuilder)
	}
	names := r.ColumnNames()
	types := r.ColumnTypes()
	cols := make([][]any, len(names))
	for r.Next() {
		row, err := r.Scan()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
		}
		if len(row) != len(names) {
			return nil, nil, nil, fmt.Errorf("%w: result row has %d values for %d columns",
				errs.ErrInvalidBuilder, len(row), len(names))
		}
		for c := range cols {
			cols[c] = append(cols[c], row[c])
		}
	}
	if err := r.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", errs.ErrInvalidBuilder, err)
	}

	return names, types, cols, nil
}
