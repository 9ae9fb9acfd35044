// foldchangeplot renders one bar chart PNG per gene from a ΔΔCt analysis,
// either recomputed from a Ct table or replotted from an existing result
// CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/calcdelta/qpcr"
	_ "github.com/calcdelta/qpcr/buildinfoprint"
	"github.com/calcdelta/qpcr/ctab"
	"github.com/calcdelta/qpcr/foldchange"
)

var client *storage.Client

func main() {
	var file, reference, control, results, outdir string
	var width, height int

	flag.StringVar(&file, "file", "", "Ct table to analyze. Mutually exclusive with -results.")
	flag.StringVar(&reference, "reference", "", "Reference gene (required with -file).")
	flag.StringVar(&control, "control", "", "Control group (required with -file).")
	flag.StringVar(&results, "results", "", "Previously written result CSV to plot without recomputing. Mutually exclusive with -file.")
	flag.StringVar(&outdir, "outdir", ".", "Directory that receives one foldchange_<gene>.png per gene.")
	flag.IntVar(&width, "width", 1000, "Chart width in pixels.")
	flag.IntVar(&height, "height", 600, "Chart height in pixels.")
	flag.Parse()

	if results != "" && file != "" {
		log.Fatalln("Provide either -results or -file, not both")
	}
	if results == "" && (file == "" || reference == "" || control == "") {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if qpcr.NeedsGoogleStorageClient(file, results) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := run(file, reference, control, results, outdir, width, height); err != nil {
		log.Fatalln(err)
	}
}

func run(file, reference, control, results, outdir string, width, height int) error {
	res, err := loadResults(file, reference, control, results)
	if err != nil {
		return err
	}

	for _, gene := range res.Genes {
		outPath := filepath.Join(qpcr.ExpandHome(outdir), fmt.Sprintf("foldchange_%s.png", gene))

		plotted, err := plotGene(outPath, gene, res.Records[gene], width, height)
		if err != nil {
			return err
		}

		if plotted {
			log.Printf("Wrote %s\n", outPath)
		} else {
			log.Printf("%s: no defined fold changes to plot\n", gene)
		}
	}

	return nil
}

func loadResults(file, reference, control, results string) (foldchange.Results, error) {
	if results != "" {
		rc, _, err := qpcr.MaybeOpenFromGoogleStorage(results, client)
		if err != nil {
			return foldchange.Results{}, err
		}
		defer rc.Close()

		return ctab.ReadResults(rc)
	}

	dataset, err := ctab.Load(file, ctab.DefaultLayout(), client)
	if err != nil {
		return foldchange.Results{}, err
	}

	if err := foldchange.ValidateSelection(dataset, reference, control); err != nil {
		return foldchange.Results{}, err
	}

	return foldchange.Compute(dataset, reference, control)
}
