// Package tabular reads the tab-separated reference datasets shipped with the
// beacon (enzyme names, CHEBI names, Rhea cross-references).
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/klauspost/compress/gzip"
)

// Row is one record keyed by column name.
type Row map[string]string

// Table is an in-memory, read-only dataset.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Options controls how a file is parsed.
type Options struct {
	// Columns names the fields of a headerless file. When empty the first
	// record is the header.
	Columns []string
}

// Read parses tab-separated data from r.
func Read(r io.Reader, opts Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	columns := opts.Columns
	if len(columns) == 0 {
		header, err := cr.Read()
		if err == io.EOF {
			return &Table{}, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read header")
		}
		columns = make([]string, len(header))
		for i, h := range header {
			columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		}
	}

	t := &Table{Columns: columns}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read record %d", len(t.Rows)+1)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Load reads the file at path, transparently decompressing ".gz" files.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gunzip %s", path)
		}
		defer zr.Close()
		r = zr
	}

	t, err := Read(r, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return t, nil
}
