// foldchange computes relative gene expression from a flat gene/group/Ct
// table using the comparative Ct (ΔΔCt) method, prints the per-group fold
// changes, and writes them to a result CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"

	"github.com/calcdelta/qpcr"
	_ "github.com/calcdelta/qpcr/buildinfoprint"
	"github.com/calcdelta/qpcr/ctab"
	"github.com/calcdelta/qpcr/foldchange"
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	var file, reference, control, out string
	var geneCol, groupCol, ctCol, na string
	var hist bool

	flag.StringVar(&file, "file", "", "Ct table to analyze (csv/tsv/xls/xlsx, optionally compressed). Local path, ~-prefixed path, or gs:// URL.")
	flag.StringVar(&reference, "reference", "", "Reference (housekeeping) gene that groups are normalized against.")
	flag.StringVar(&control, "control", "", "Control group that fold changes are expressed relative to.")
	flag.StringVar(&out, "out", "result.csv", "Path for the result CSV.")
	flag.StringVar(&geneCol, "gene-col", "Gene", "Header name of the gene column in the input.")
	flag.StringVar(&groupCol, "group-col", "Group", "Header name of the group column in the input.")
	flag.StringVar(&ctCol, "ct-col", "Ct", "Header name of the Ct column in the input.")
	flag.StringVar(&na, "na", "", "(Optional) Comma-separated tokens to treat as missing Ct, in addition to the built-in set.")
	flag.BoolVar(&hist, "hist", false, "If true, prints a terminal histogram of the computed fold changes.")
	flag.Parse()

	if file == "" || reference == "" || control == "" {
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

	if err := run(file, reference, control, out, layout, hist); err != nil {
		log.Fatalln(err)
	}
}

func run(file, reference, control, out string, layout ctab.Layout, hist bool) error {
	dataset, err := ctab.Load(file, layout, client)
	if err != nil {
		return err
	}

	log.Printf("Loaded %d measurements (%d genes, %d groups) from %s\n",
		len(dataset.Measurements), len(dataset.Genes()), len(dataset.Groups()), file)

	if err := foldchange.ValidateSelection(dataset, reference, control); err != nil {
		return err
	}

	results, err := foldchange.Compute(dataset, reference, control)
	if err != nil {
		return err
	}

	rows := results.Flatten()

	fmt.Println(strings.Join(ctab.ResultHeader, "\t"))
	for _, row := range rows {
		fmt.Printf("%s\t%s\t%g\t%g\t%g\n", row.Gene, row.Group, row.DeltaCt, row.DeltaDeltaCt, row.FoldChange)
	}

	if err := ctab.WriteResultsFile(out, rows); err != nil {
		return err
	}
	log.Printf("Wrote %d rows to %s\n", len(rows), out)

	for _, gene := range results.Genes {
		data := stats.LoadRawData(definedFoldChanges(results.Records[gene]))
		if data.Len() < 1 {
			log.Printf("%s: no defined fold changes\n", gene)
			continue
		}

		mean, err := data.Mean()
		if err != nil {
			return err
		}
		sd, err := data.StandardDeviation()
		if err != nil {
			return err
		}
		log.Printf("%s: mean fold change %.3f (SD %.3f) over %d groups\n", gene, mean, sd, data.Len())
	}

	if hist {
		if err := printHistogram(rows); err != nil {
			return err
		}
	}

	return nil
}

func definedFoldChanges(records []foldchange.Record) []float64 {
	out := make([]float64, 0, len(records))
	for _, rec := range records {
		if math.IsNaN(rec.FoldChange) {
			continue
		}
		out = append(out, rec.FoldChange)
	}

	return out
}

func printHistogram(rows []foldchange.Row) error {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if math.IsNaN(row.FoldChange) {
			continue
		}
		values = append(values, row.FoldChange)
	}

	if len(values) == 0 {
		return nil
	}

	hist := histogram.Hist(10, values)

	return histogram.Fprint(os.Stdout, hist, histogram.Linear(5))
}
