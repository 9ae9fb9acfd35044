package main

import (
	"bytes"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/calcdelta/qpcr/foldchange"
)

// plotGene renders one gene's per-group fold changes as a bar chart PNG.
// Groups with an undefined fold change get no bar. Returns false without
// writing anything when no group has a defined value.
func plotGene(filename, gene string, records []foldchange.Record, width, height int) (bool, error) {
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
		return false, nil
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

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return false, err
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return false, err
	}
	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return false, err
	}

	return true, outFile.Close()
}
