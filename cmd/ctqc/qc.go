package main

import (
	"log"

	"gonum.org/v1/gonum/stat"

	"github.com/calcdelta/qpcr/foldchange"
)

func runQC(grouped *foldchange.GroupedCt, dataset foldchange.Dataset, nStandardDeviations, maxCtSD float64) CellFlags {
	cellsWithFlags := CellFlags{}

	// Flag cells in which no replicate amplified at all
	flagAllMissing(cellsWithFlags, grouped)
	log.Println("Flagged cells with no valid Ct")

	// Flag cells whose replicates disagree by more than the ceiling
	flagHighReplicateSD(cellsWithFlags, grouped, maxCtSD)
	log.Println("Flagged cells with replicate SD above", maxCtSD, "Ct")

	// Flag cells holding replicates far from their own cell mean, measured
	// against the spread of residuals across the whole table
	flagCtOutliers(cellsWithFlags, grouped, dataset, nStandardDeviations)
	log.Println("Flagged cells with replicates beyond", nStandardDeviations, "standard deviations of the residual spread")

	// Flag cells that don't have the modal number of replicates
	flagAbnormalReplicateCounts(cellsWithFlags, grouped)
	log.Println("Flagged cells that didn't have the modal replicate count")

	// Number of cells with each flag:
	flagCounts := make(map[string]int)
	for _, flags := range cellsWithFlags {
		for v := range flags {
			flagCounts[v]++
		}
	}

	log.Println(len(cellsWithFlags), "cells out of", len(grouped.Cells()), "have been flagged as potentially having invalid data")
	log.Printf("Number of cells with each flag: %+v\n", flagCounts)

	return cellsWithFlags
}

func flagAllMissing(out CellFlags, grouped *foldchange.GroupedCt) {
	for _, cell := range grouped.Cells() {
		if cell.ValidCount() == 0 {
			out.AddFlag(cellID{cell.Gene, cell.Group}, "AllMissing")
		}
	}
}

func flagHighReplicateSD(out CellFlags, grouped *foldchange.GroupedCt, maxCtSD float64) {
	for _, cell := range grouped.Cells() {
		// A lone replicate has no spread to judge
		if cell.ValidCount() < 2 {
			continue
		}

		if cell.SD() > maxCtSD {
			out.AddFlag(cellID{cell.Gene, cell.Group}, "HighReplicateSD")
		}
	}
}

func flagCtOutliers(out CellFlags, grouped *foldchange.GroupedCt, dataset foldchange.Dataset, nStandardDeviations float64) {

	residuals := make([]float64, 0, len(dataset.Measurements))

	// Pass 1: populate the slice with each replicate's distance from its own
	// cell mean
	for _, meas := range dataset.Measurements {
		if !meas.Ct.Valid {
			continue
		}
		residuals = append(residuals, meas.Ct.Float64-grouped.MeanCt(meas.Gene, meas.Group))
	}

	m, s := stat.MeanStdDev(residuals, nil)

	// Pass 2: flag the cell of any replicate that exceeds the bounds:
	for _, meas := range dataset.Measurements {
		if !meas.Ct.Valid {
			continue
		}

		residual := meas.Ct.Float64 - grouped.MeanCt(meas.Gene, meas.Group)
		if residual < m-nStandardDeviations*s || residual > m+nStandardDeviations*s {
			out.AddFlag(cellID{meas.Gene, meas.Group}, "CtOutlier")
		}
	}
}

func flagAbnormalReplicateCounts(out CellFlags, grouped *foldchange.GroupedCt) {
	countCounts := make(map[int]int)

	// Count the number of cells with each discrete replicate count
	for _, cell := range grouped.Cells() {
		countCounts[cell.Rows]++
	}

	// Find the modal replicate count
	var modalCount, maxCount = -1, -1
	for replicatesPerCell, cellsWithThisCount := range countCounts {
		if cellsWithThisCount > maxCount {
			modalCount = replicatesPerCell
			maxCount = cellsWithThisCount
		}
	}

	// Flag cells that don't have the modal replicate count
	for _, cell := range grouped.Cells() {
		if cell.Rows != modalCount {
			out.AddFlag(cellID{cell.Gene, cell.Group}, "AbnormalReplicateCount")
		}
	}
}
