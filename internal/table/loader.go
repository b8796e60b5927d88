package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
)

// Options controls how delimited text is read and written.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// Comment, when non-zero, marks lines to skip on input.
	Comment rune
}

// Option mutates Options.
type Option func(*Options)

// WithDelimiter sets the field delimiter.
func WithDelimiter(r rune) Option {
	return func(o *Options) {
		if r != 0 {
			o.Delimiter = r
		}
	}
}

// WithComment sets the comment rune for input.
func WithComment(r rune) Option {
	return func(o *Options) {
		o.Comment = r
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Delimiter: ','}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// LoadFile reads a table from the delimited text file at path.
func LoadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	tbl, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return tbl, nil
}

// Load reads delimited text without a header row. Every record becomes a
// table row and every field a cell; records may have different lengths.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	o := buildOptions(opts)

	reader := csv.NewReader(r)
	reader.Comma = o.Delimiter
	reader.Comment = o.Comment
	reader.FieldsPerRecord = -1

	tbl := New()
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", row+1, err)
		}
		for column, field := range record {
			tbl.Set(cellref.Coordinate{Row: row, Column: column}, field)
		}
	}
	return tbl, nil
}
