package ctab

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/calcdelta/qpcr"
	"github.com/calcdelta/qpcr/foldchange"
)

// utf8BOM prefixes result.csv so Excel recognizes the Δ characters in the
// header instead of mangling them.
const utf8BOM = "\xef\xbb\xbf"

// ResultHeader is the exact column order of a result file.
var ResultHeader = []string{"Gene", "Group", "ΔCt", "ΔΔCt", "Fold Change"}

// WriteResults serializes flattened analysis rows as BOM-prefixed CSV.
// Undefined values are written literally as NaN, which both this package's
// reader and spreadsheet software keep visible rather than silently zeroing.
func WriteResults(w io.Writer, rows []foldchange.Row) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return pfx.Err(err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(ResultHeader); err != nil {
		return pfx.Err(err)
	}

	for _, row := range rows {
		record := []string{
			row.Gene,
			row.Group,
			formatResultValue(row.DeltaCt),
			formatResultValue(row.DeltaDeltaCt),
			formatResultValue(row.FoldChange),
		}
		if err := cw.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func formatResultValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteResultsFile writes rows to a result file at path, checking the
// close error since a short write here silently truncates the export.
func WriteResultsFile(path string, rows []foldchange.Row) error {
	f, err := os.Create(qpcr.ExpandHome(path))
	if err != nil {
		return pfx.Err(err)
	}

	if err := WriteResults(f, rows); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}

// resultRow mirrors one result.csv line for gocsv.
type resultRow struct {
	Gene         string  `csv:"Gene"`
	Group        string  `csv:"Group"`
	DeltaCt      float64 `csv:"ΔCt"`
	DeltaDeltaCt float64 `csv:"ΔΔCt"`
	FoldChange   float64 `csv:"Fold Change"`
}

// ReadResults loads a result file written by WriteResults back into
// Results, so the plotting tool can run from a result.csv without the raw
// measurements. Gene order is the file's row order.
func ReadResults(r io.Reader) (foldchange.Results, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return foldchange.Results{}, pfx.Err(err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	rows := []*resultRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return foldchange.Results{}, pfx.Err(err)
	}

	out := foldchange.Results{Records: make(map[string][]foldchange.Record)}
	for _, row := range rows {
		if _, seen := out.Records[row.Gene]; !seen {
			out.Genes = append(out.Genes, row.Gene)
		}

		out.Records[row.Gene] = append(out.Records[row.Gene], foldchange.Record{
			Group:        row.Group,
			DeltaCt:      row.DeltaCt,
			DeltaDeltaCt: row.DeltaDeltaCt,
			FoldChange:   row.FoldChange,
		})
	}

	return out, nil
}
