package main

import (
	"bytes"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/calcdelta/qpcr/foldchange"
)

const (
	ChartWidth  = 640
	ChartHeight = 400
)

// geneChart is one gene's inline plot for the plots page. EncodedImage is
// the base64 PNG payload; HasData is false when every group's fold change
// was undefined.
type geneChart struct {
	Gene         string
	HasData      bool
	EncodedImage string
}

// renderGeneChart draws one gene's per-group fold changes as a bar chart
// and returns the PNG bytes. Groups with an undefined fold change get no
// bar; ok is false when no group has a defined value.
func renderGeneChart(gene string, records []foldchange.Record, width, height int) ([]byte, bool, error) {
	bars := make([]chart.Value, 0, len(records))
	maxValue := 0.0

	for _, rec := range records {
		if math.IsNaN(rec.FoldChange) {
			continue
		}

		bars = append(bars, chart.Value{
			Label: rec.Group,
			Value: rec.FoldChange,
			Style: chart.Style{
				FillColor:   chart.ColorBlack,
				StrokeColor: chart.ColorBlack,
			},
		})

		if rec.FoldChange > maxValue {
			maxValue = rec.FoldChange
		}
	}

	if len(bars) == 0 {
		return nil, false, nil
	}

	graph := chart.BarChart{
		Title:  "The mRNA expression of " + gene,
		Width:  width,
		Height: height,
		YAxis: chart.YAxis{
			// Bars read from a zero baseline; leave headroom above the
			// tallest one.
			Range: &chart.ContinuousRange{Min: 0, Max: 1.1 * maxValue},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, false, err
	}

	return buffer.Bytes(), true, nil
}
