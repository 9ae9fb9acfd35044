// ctqc performs replicate-level qc on a gene/group/Ct table before a ΔΔCt
// analysis, flagging cells whose replicates look untrustworthy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/calcdelta/qpcr"
	_ "github.com/calcdelta/qpcr/buildinfoprint"
	"github.com/calcdelta/qpcr/ctab"
	"github.com/calcdelta/qpcr/foldchange"
)

var client *storage.Client

func main() {
	var file string
	var geneCol, groupCol, ctCol, na string
	var sd, maxCtSD float64

	flag.StringVar(&file, "file", "", "Ct table to check (csv/tsv/xls/xlsx, optionally compressed). Local path or gs:// URL.")
	flag.StringVar(&geneCol, "gene-col", "Gene", "Header name of the gene column in the input.")
	flag.StringVar(&groupCol, "group-col", "Group", "Header name of the group column in the input.")
	flag.StringVar(&ctCol, "ct-col", "Ct", "Header name of the Ct column in the input.")
	flag.StringVar(&na, "na", "", "(Optional) Comma-separated tokens to treat as missing Ct, in addition to the built-in set.")
	flag.Float64Var(&sd, "sd", 5, "Replicates whose residual from their cell mean lies beyond this many standard deviations of all residuals flag their cell as CtOutlier.")
	flag.Float64Var(&maxCtSD, "max-ct-sd", 0.5, "Cells whose replicate standard deviation exceeds this many Ct units are flagged HighReplicateSD.")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	layout := ctab.DefaultLayout()
	layout.GeneColumn = geneCol
	layout.GroupColumn = groupCol
	layout.CtColumn = ctCol
	if na != "" {
		layout = layout.WithExtraNATokens(strings.Split(na, ",")...)
	}

	if qpcr.NeedsGoogleStorageClient(file) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	log.Println("Launched ctqc")

	if err := runAll(file, layout, sd, maxCtSD); err != nil {
		log.Fatalln(err)
	}
}

func runAll(file string, layout ctab.Layout, sd, maxCtSD float64) error {
	dataset, err := ctab.Load(file, layout, client)
	if err != nil {
		return err
	}
	log.Println("Loaded", file)

	if missing := dataset.MissingColumns(); len(missing) > 0 {
		return foldchange.SchemaError{Missing: missing}
	}

	grouped := foldchange.GroupCt(dataset)
	log.Println("Grouped", len(dataset.Measurements), "measurements into", len(grouped.Cells()), "cells")

	cellsWithFlags := runQC(grouped, dataset, sd, maxCtSD)

	fmt.Println(strings.Join([]string{"Gene", "Group", "Rows", "ValidN", "MeanCt", "CtSD", "Flags"}, "\t"))
	for _, cell := range grouped.Cells() {
		flags := cellsWithFlags[cellID{cell.Gene, cell.Group}]
		fmt.Printf("%s\t%s\t%d\t%d\t%g\t%g\t%s\n",
			cell.Gene, cell.Group, cell.Rows, cell.ValidCount(), cell.MeanCt(), cell.SD(), flags)
	}

	return nil
}
