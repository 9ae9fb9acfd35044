// ddctweb serves a local web interface for the ΔΔCt fold-change calculator:
// upload a Ct table, choose the reference gene and control group, and read
// back the per-group fold changes as a table, a result CSV, or bar charts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"

	"github.com/calcdelta/qpcr"
	_ "github.com/calcdelta/qpcr/buildinfoprint"
	"github.com/calcdelta/qpcr/ctab"
)

var global *Global

func init() {
	// Prevent seed re-use
	rand.Seed(int64(time.Now().Nanosecond()))
}

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		os.Kill,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	var file, outputPath string
	var geneCol, groupCol, ctCol, na string
	var port int
	flag.StringVar(&file, "file", "", "(Optional) Ct table to preload, as if it had been uploaded. Local path, ~-prefixed path, or gs:// URL.")
	flag.StringVar(&outputPath, "output", ".", "Directory that receives result.csv after each analysis.")
	flag.IntVar(&port, "port", 9019, "Port for HTTP server")
	flag.StringVar(&geneCol, "gene-col", "Gene", "Header name of the gene column in uploaded tables.")
	flag.StringVar(&groupCol, "group-col", "Group", "Header name of the group column in uploaded tables.")
	flag.StringVar(&ctCol, "ct-col", "Ct", "Header name of the Ct column in uploaded tables.")
	flag.StringVar(&na, "na", "", "(Optional) Comma-separated tokens to treat as missing Ct, in addition to the built-in set.")
	flag.Parse()

	layout := ctab.DefaultLayout()
	layout.GeneColumn = geneCol
	layout.GroupColumn = groupCol
	layout.CtColumn = ctCol
	if na != "" {
		layout = layout.WithExtraNATokens(strings.Split(na, ",")...)
	}

	var sclient *storage.Client
	var err error

	if qpcr.NeedsGoogleStorageClient(file) {
		sclient, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	global = &Global{
		Site: "Fold Change",
		log:  log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),

		OutputPath: outputPath,
		Layout:     layout,
	}

	if file != "" {
		dataset, err := ctab.Load(file, layout, sclient)
		if err != nil {
			log.Fatalln(err)
		}

		global.SetDataset(dataset, file)
		global.log.Printf("Preloaded %d measurements (%d genes, %d groups) from %s\n",
			len(dataset.Measurements), len(dataset.Genes()), len(dataset.Groups()), file)
	}

	global.log.Println("Launching", global.Site)
	global.log.Printf("Open http://localhost:%d in your browser\n", port)

	go func() {
		global.log.Println("Starting HTTP server on port", port)

		routing, err := router(global)
		if err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}

		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, port), routing); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:

			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
}
