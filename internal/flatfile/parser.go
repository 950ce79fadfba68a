// Package flatfile parses the loosely structured CSV exports that back the
// portal. Files are read whole on every call; nothing is cached.
package flatfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const bom = "\ufeff"

// Options controls how a file is mapped to rows.
type Options struct {
	// Columns names the cells explicitly. When empty, the first non-blank
	// line of the file is used as the header.
	Columns []string

	// SkipHeader drops the file's own header line when Columns is set.
	SkipHeader bool

	// KeepSpace lists columns whose cells are kept verbatim. All other
	// cells are trimmed.
	KeepSpace []string

	// Name is used in error messages. ReadFile fills it from the path.
	Name string
}

// Row is a single data line mapped onto the header.
type Row struct {
	// Line is the 1-indexed line number in the source file
	Line int

	// Width is the raw cell count before truncation or padding
	Width int

	index map[string]int
	cells []string
}

// Get returns the cell for the given column, or "" if the column is
// unknown. Cells are trimmed unless the column is listed in KeepSpace.
func (r Row) Get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// Cells returns the row's cells in header order.
func (r Row) Cells() []string {
	out := make([]string, len(r.cells))
	copy(out, r.cells)
	return out
}

// Table is the result of parsing one file.
type Table struct {
	Header []string

	// HeaderWidth is the raw cell count of the file's header line, or the
	// number of configured columns when the file header is not read.
	HeaderWidth int

	Rows []Row
}

// Irregular returns the rows whose raw width differs from HeaderWidth.
func (t *Table) Irregular() []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.Width != t.HeaderWidth {
			out = append(out, r)
		}
	}
	return out
}

// ReadFile opens path, parses it with opts and closes it again.
func ReadFile(ctx context.Context, path string, opts Options) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if opts.Name == "" {
		opts.Name = name
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newParseError("open", name, 0, ErrFileNotFound)
		}
		return nil, newParseError("open", name, 0, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, newParseError("stat", name, 0, err)
	}
	if stat.Size() == 0 {
		return nil, newParseError("stat", name, 0, ErrEmptyFile)
	}

	return Parse(file, opts)
}

// Parse reads CSV text from r. Rows wider than the header are truncated,
// narrower rows are padded with empty cells and blank rows are skipped.
func Parse(r io.Reader, opts Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		header      []string
		headerWidth int
	)
	if len(opts.Columns) > 0 {
		header = append([]string(nil), opts.Columns...)
		headerWidth = len(header)
	}
	awaitingHeader := len(opts.Columns) == 0 || opts.SkipHeader

	var (
		index map[string]int
		keep  []int
		rows  []Row
		first = true
		seen  bool
	)
	if header != nil {
		index = buildIndex(header)
		keep = keepIndexes(index, opts.KeepSpace)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			line := 0
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, newParseError("read", opts.Name, line, err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			record[0] = strings.TrimPrefix(record[0], bom)
			first = false
		}
		raw := append([]string(nil), record...)
		if err := trimCells(record); err != nil {
			return nil, newParseError("decode", opts.Name, line, err)
		}
		if isBlank(record) {
			continue
		}
		seen = true

		if awaitingHeader {
			awaitingHeader = false
			headerWidth = len(record)
			if header == nil {
				header = trimTrailingEmpty(record)
				if len(header) == 0 {
					return nil, newParseError("header", opts.Name, line, ErrNoHeader)
				}
				index = buildIndex(header)
				keep = keepIndexes(index, opts.KeepSpace)
			}
			continue
		}

		cells := fit(record, len(header))
		for _, i := range keep {
			if i < len(raw) {
				cells[i] = raw[i]
			}
		}
		rows = append(rows, Row{
			Line:  line,
			Width: len(record),
			index: index,
			cells: cells,
		})
	}

	if !seen {
		return nil, newParseError("read", opts.Name, 0, ErrEmptyFile)
	}
	if header == nil {
		return nil, newParseError("header", opts.Name, 0, ErrNoHeader)
	}

	return &Table{Header: header, HeaderWidth: headerWidth, Rows: rows}, nil
}

func buildIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}

func keepIndexes(index map[string]int, columns []string) []int {
	var out []int
	for _, col := range columns {
		if i, ok := index[col]; ok {
			out = append(out, i)
		}
	}
	return out
}

func trimCells(record []string) error {
	for i, cell := range record {
		if !utf8.ValidString(cell) {
			return ErrInvalidEncoding
		}
		record[i] = strings.TrimSpace(cell)
	}
	return nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

// trimTrailingEmpty drops the empty header cells left behind by trailing
// delimiters.
func trimTrailingEmpty(record []string) []string {
	end := len(record)
	for end > 0 && record[end-1] == "" {
		end--
	}
	return append([]string(nil), record[:end]...)
}

func fit(record []string, width int) []string {
	cells := make([]string, width)
	copy(cells, record)
	return cells
}
