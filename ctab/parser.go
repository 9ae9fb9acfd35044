package ctab

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/calcdelta/qpcr"
	"github.com/calcdelta/qpcr/foldchange"
)

// Load reads the table at path into a Dataset. path may be local,
// ~-prefixed, or a gs:// URL (client required for the latter); the format
// is chosen from the path's extension.
func Load(path string, layout Layout, client *storage.Client) (foldchange.Dataset, error) {
	rc, _, err := qpcr.MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return foldchange.Dataset{}, err
	}
	defer rc.Close()

	d, err := Parse(rc, path, layout)
	if err != nil {
		return foldchange.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Parse reads a table from r. filename is consulted only for its
// extension: .xls and .xlsx are opened as workbooks, anything else is
// treated as delimited text with a sniffed delimiter, transparently
// decompressed when the bytes say so.
func Parse(r io.Reader, filename string, layout Layout) (foldchange.Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		raw, err := io.ReadAll(r)
		if err != nil {
			return foldchange.Dataset{}, pfx.Err(err)
		}
		return ParseXLS(bytes.NewReader(raw), layout)
	case ".xlsx":
		return ParseXLSX(r, layout)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}

	dr, err := qpcr.MaybeDecompressReadCloser(bytes.NewReader(raw))
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}
	defer dr.Close()

	return ParseDelimited(dr, layout)
}

// ParseDelimited parses an uncompressed delimited-text table from r. The
// delimiter is sniffed from the content, so comma, tab and semicolon
// exports all work without telling us which one to expect.
func ParseDelimited(r io.Reader, layout Layout) (foldchange.Dataset, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}
	text = bytes.TrimPrefix(text, []byte(utf8BOM))

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = qpcr.DetermineDelimiter(bytes.NewReader(text))
	// Instrument exports pad trailing columns inconsistently.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}

	return fromRows(rows, layout)
}

// tableHeader holds the source column index of each mapped column. ct is -1
// when the layout's Ct column was absent, which is legal at load time.
type tableHeader struct {
	gene  int
	group int
	ct    int
}

func readTableHeader(cols []string, layout Layout) (tableHeader, error) {
	h := tableHeader{gene: -1, group: -1, ct: -1}

	for col, v := range cols {
		switch strings.TrimSpace(v) {
		case layout.GeneColumn:
			h.gene = col
		case layout.GroupColumn:
			h.group = col
		case layout.CtColumn:
			h.ct = col
		}
	}

	// Report missing columns under their canonical names: that is the schema
	// the caller chose a mapping onto.
	var missing []string
	if h.gene < 0 {
		missing = append(missing, foldchange.ColGene)
	}
	if h.group < 0 {
		missing = append(missing, foldchange.ColGroup)
	}
	if len(missing) > 0 {
		return h, foldchange.SchemaError{Missing: missing}
	}

	return h, nil
}

// fromRows converts a header row plus data rows into a Dataset. A missing
// Ct column is tolerated here and left for the calculator's schema check;
// missing Gene or Group columns fail immediately.
func fromRows(rows [][]string, layout Layout) (foldchange.Dataset, error) {
	if len(rows) == 0 {
		return foldchange.Dataset{}, pfx.Err(fmt.Errorf("The table has no header row"))
	}

	h, err := readTableHeader(rows[0], layout)
	if err != nil {
		return foldchange.Dataset{}, err
	}

	columns := []string{foldchange.ColGene, foldchange.ColGroup}
	if h.ct >= 0 {
		columns = append(columns, foldchange.ColCt)
	}

	measurements := make([]foldchange.Measurement, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		gene := cell(cols, h.gene)
		group := cell(cols, h.group)

		// Spreadsheets routinely carry blank padding rows below the data.
		if strings.TrimSpace(gene) == "" && strings.TrimSpace(group) == "" {
			continue
		}

		m := foldchange.Measurement{Gene: gene, Group: group}
		if h.ct >= 0 {
			m.Ct = layout.ParseCt(cell(cols, h.ct))
		}

		measurements = append(measurements, m)
	}

	return foldchange.Dataset{Measurements: measurements, Columns: columns}, nil
}

// cell indexes into a possibly short row, reading absent positions as empty.
func cell(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}

	return cols[idx]
}
