package csvio

import (
	"fmt"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/internal/options"
)

// DuplicatePolicy controls how repeated header names are handled.
type DuplicatePolicy uint8

const (
	// DuplicateError rejects repeated header names.
	DuplicateError DuplicatePolicy = iota
	// DuplicateSuffix disambiguates repeats with a _2, _3, ... suffix.
	DuplicateSuffix
)

// config carries the shared reader/writer settings.
type config struct {
	delimiter       rune
	quote           rune
	escape          rune // 0 means doubled-quote escaping
	comment         rune // 0 disables comment lines
	trimSpace       bool
	skipBlankLines  bool
	firstRowHeader  bool
	header          []string
	duplicatePolicy DuplicatePolicy
	nullToken       string
	recordSeparator string
	gzipped         bool
}

func defaultConfig() *config {
	return &config{
		delimiter:       ',',
		quote:           '"',
		skipBlankLines:  true,
		firstRowHeader:  true,
		nullToken:       "",
		recordSeparator: "\n",
	}
}

// Option represents a functional option shared by Reader and Writer.
type Option = options.Option[*config]

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(d rune) Option {
	return options.New(func(c *config) error {
		if d == 0 {
			return fmt.Errorf("%w: delimiter must not be NUL", errs.ErrCSVFormat)
		}
		c.delimiter = d

		return nil
	})
}

// WithQuote sets the quote character (default '"').
func WithQuote(q rune) Option {
	return options.NoError(func(c *config) { c.quote = q })
}

// WithEscape sets an explicit escape character. Without one, quotes inside
// quoted fields are escaped by doubling.
func WithEscape(e rune) Option {
	return options.NoError(func(c *config) { c.escape = e })
}

// WithComment makes lines starting with the marker skipped entirely.
func WithComment(marker rune) Option {
	return options.NoError(func(c *config) { c.comment = marker })
}

// WithTrimSpace trims surrounding space from unquoted fields.
func WithTrimSpace() Option {
	return options.NoError(func(c *config) { c.trimSpace = true })
}

// WithBlankLines keeps blank lines as empty records instead of skipping them.
func WithBlankLines() Option {
	return options.NoError(func(c *config) { c.skipBlankLines = false })
}

// WithHeader sets explicit column names; the input's first row is data.
func WithHeader(names ...string) Option {
	return options.NoError(func(c *config) {
		c.header = names
		c.firstRowHeader = false
	})
}

// WithoutHeader disables headers entirely: columns are named c1..cN on
// read, and no header row is written.
func WithoutHeader() Option {
	return options.NoError(func(c *config) {
		c.header = nil
		c.firstRowHeader = false
	})
}

// WithDuplicatePolicy sets how repeated header names are handled
// (default DuplicateError).
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return options.NoError(func(c *config) { c.duplicatePolicy = p })
}

// WithNullToken sets the token representing null (default: the empty
// string). On read a matching field becomes a null cell; on write null
// cells render as the token.
func WithNullToken(token string) Option {
	return options.NoError(func(c *config) { c.nullToken = token })
}

// WithRecordSeparator sets the record separator written between rows
// (default "\n"). The reader always accepts \n, \r\n and \r.
func WithRecordSeparator(sep string) Option {
	return options.NoError(func(c *config) { c.recordSeparator = sep })
}

// WithGzip wraps the underlying stream in gzip compression.
func WithGzip() Option {
	return options.NoError(func(c *config) { c.gzipped = true })
}
