package main

import (
	"math"

	"gopkg.in/guregu/null.v3"

	"github.com/calcdelta/qpcr/foldchange"
)

// jsonRow carries the analysis values as nullable floats, since
// encoding/json rejects NaN.
type jsonRow struct {
	Gene         string
	Group        string
	DeltaCt      null.Float
	DeltaDeltaCt null.Float
	FoldChange   null.Float
}

func jsonRows(rows []foldchange.Row) []jsonRow {
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, jsonRow{
			Gene:         row.Gene,
			Group:        row.Group,
			DeltaCt:      nullableFloat(row.DeltaCt),
			DeltaDeltaCt: nullableFloat(row.DeltaDeltaCt),
			FoldChange:   nullableFloat(row.FoldChange),
		})
	}

	return out
}

func nullableFloat(v float64) null.Float {
	if math.IsNaN(v) {
		return null.Float{}
	}

	return null.FloatFrom(v)
}
