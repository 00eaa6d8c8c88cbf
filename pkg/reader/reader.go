// Package reader streams merge groups out of a delimited input file. One
// forward pass, standard quoting rules, configurable single-character
// delimiter.
package reader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row is one input row after trimming and blank-field removal. Rows with
// fewer than two fields are still returned; the caller decides to skip them.
type Row struct {
	Line   int
	Fields []string
}

// GroupReader reads rows from the input file. Not restartable; open a new
// reader to re-read.
type GroupReader struct {
	file *os.File
	csv  *csv.Reader
	line int
}

// Open opens the input file for a single forward pass. Failure to open is
// the only fatal condition the reader produces.
func Open(path string, delimiter rune) (*GroupReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}

	r := csv.NewReader(file)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	return &GroupReader{file: file, csv: r}, nil
}

// Next returns the next row that yields at least one usable field, or io.EOF
// when the file is exhausted. Fields are whitespace-trimmed and blank fields
// discarded; rows that end up empty are silently passed over.
func (g *GroupReader) Next() (*Row, error) {
	for {
		record, err := g.csv.Read()
		if err != nil {
			return nil, err
		}
		g.line++

		fields := make([]string, 0, len(record))
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field != "" {
				fields = append(fields, field)
			}
		}
		if len(fields) == 0 {
			continue
		}

		return &Row{Line: g.line, Fields: fields}, nil
	}
}

func (g *GroupReader) Close() error {
	return g.file.Close()
}
