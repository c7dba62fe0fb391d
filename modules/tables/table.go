package tables

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrDuplicateHost = errors.New("duplicate host")
)

type Row []string

// Cell returns the value in column i, or blank if the row is shorter than that
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Table is one loaded input file, header plus data rows
type Table struct {
	Name    string
	Header  []string
	Rows    []Row
	columns map[string]int
}

func NewTable(name string, header ...string) *Table {
	t := &Table{
		Name:    name,
		Header:  header,
		columns: make(map[string]int, len(header)),
	}
	for i, column := range header {
		// first one wins if a header is repeated
		if _, found := t.columns[column]; !found {
			t.columns[column] = i
		}
	}
	return t
}

func (t *Table) Add(cells ...string) {
	t.Rows = append(t.Rows, Row(cells))
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Column(name string) (int, error) {
	if i, found := t.columns[name]; found {
		return i, nil
	}
	return -1, errors.Wrapf(ErrMissingColumn, "%v has no %q column (found %v)", t.Name, name, strings.Join(t.Header, ", "))
}

// Columns resolves several column names at once, failing on the first one missing
func (t *Table) Columns(names ...string) ([]int, error) {
	result := make([]int, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		result[i] = col
	}
	return result, nil
}

const utf8BOM = "\ufeff"

// ReadCSV parses comma separated data with a header row. Short rows are padded with blank cells,
// rows with more fields than the header are rejected.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrapf(ErrMissingColumn, "%v is empty, expected a header row", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "problem reading header of %v", name)
	}

	t := NewTable(name, header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "problem reading %v", name)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(ErrMalformedRow, "%v line %v has %v fields, header has %v", name, line, len(record), len(header))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		t.Add(record...)
	}
	return t, nil
}
