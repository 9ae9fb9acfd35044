package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/calcdelta/qpcr/ctab"
	"github.com/calcdelta/qpcr/foldchange"
)

// MaxUploadBytes caps the in-memory portion of an uploaded table. Plate
// exports are tiny; anything larger spills to a temp file.
const MaxUploadBytes = 32 << 20

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	dataset, sourceName, loaded := h.Global.Dataset()

	output := struct {
		Loaded     bool
		SourceName string
		N          int
		Genes      []string
		Groups     []string
	}{
		Loaded:     loaded,
		SourceName: sourceName,
		N:          len(dataset.Measurements),
		Genes:      dataset.Genes(),
		Groups:     dataset.Groups(),
	}

	Render(h, w, r, h.Global.Site, "index.html", output, nil)
}

func (h *handler) LoadTable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("table")
	if err != nil {
		HTTPError(h, w, r, fmt.Errorf("No table file was uploaded"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// The filename decides the parser (.xls, .xlsx, or delimited text).
	dataset, err := ctab.Parse(file, header.Filename, h.Global.Layout)
	if err != nil {
		HTTPError(h, w, r, err, errorStatus(err))
		return
	}

	h.Global.SetDataset(dataset, header.Filename)
	h.Global.log.Printf("Loaded %d measurements (%d genes, %d groups) from %s\n",
		len(dataset.Measurements), len(dataset.Genes()), len(dataset.Groups()), header.Filename)

	indexURL, err := h.router.Get("index").URL()
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	http.Redirect(w, r, indexURL.String(), http.StatusSeeOther)
}

func (h *handler) Analyze(w http.ResponseWriter, r *http.Request) {
	dataset, sourceName, loaded := h.Global.Dataset()
	if !loaded {
		HTTPError(h, w, r, fmt.Errorf("No table has been loaded yet"), http.StatusBadRequest)
		return
	}

	r.ParseForm()
	referenceGene := r.PostForm.Get("reference")
	controlGroup := r.PostForm.Get("control")

	opts := NewRenderOpts()
	if r.Form.Get("format") == JSON {
		opts.OutputFormat = JSON
	}

	results, err := analyze(dataset, referenceGene, controlGroup)
	if err != nil {
		if opts.OutputFormat == JSON {
			JSONError(h, w, r, err, errorStatus(err))
		} else {
			HTTPError(h, w, r, err, errorStatus(err))
		}
		return
	}

	rows := results.Flatten()

	// Each analysis overwrites result.csv in place.
	resultPath := filepath.Join(h.Global.OutputPath, "result.csv")
	if err := ctab.WriteResultsFile(resultPath, rows); err != nil {
		HTTPError(h, w, r, err)
		return
	}
	h.Global.log.Printf("Wrote %d rows to %s\n", len(rows), resultPath)

	if opts.OutputFormat == JSON {
		output := struct {
			ReferenceGene string
			ControlGroup  string
			Rows          []jsonRow
		}{
			ReferenceGene: referenceGene,
			ControlGroup:  controlGroup,
			Rows:          jsonRows(rows),
		}

		Render(h, w, r, "Results", "", output, opts)
		return
	}

	output := struct {
		SourceName    string
		ReferenceGene string
		ControlGroup  string
		Rows          []foldchange.Row
	}{
		SourceName:    sourceName,
		ReferenceGene: referenceGene,
		ControlGroup:  controlGroup,
		Rows:          rows,
	}

	Render(h, w, r, "Results", "results.html", output, nil)
}

func (h *handler) Plot(w http.ResponseWriter, r *http.Request) {
	dataset, _, loaded := h.Global.Dataset()
	if !loaded {
		HTTPError(h, w, r, fmt.Errorf("No table has been loaded yet"), http.StatusBadRequest)
		return
	}

	r.ParseForm()
	referenceGene := r.PostForm.Get("reference")
	controlGroup := r.PostForm.Get("control")

	results, err := analyze(dataset, referenceGene, controlGroup)
	if err != nil {
		HTTPError(h, w, r, err, errorStatus(err))
		return
	}

	charts := make([]geneChart, 0, len(results.Genes))
	for _, gene := range results.Genes {
		pngBytes, ok, err := renderGeneChart(gene, results.Records[gene], ChartWidth, ChartHeight)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}

		if !ok {
			charts = append(charts, geneChart{Gene: gene})
			continue
		}

		charts = append(charts, geneChart{
			Gene:         gene,
			HasData:      true,
			EncodedImage: base64.StdEncoding.EncodeToString(pngBytes),
		})
	}

	output := struct {
		ReferenceGene string
		ControlGroup  string
		Charts        []geneChart
	}{
		ReferenceGene: referenceGene,
		ControlGroup:  controlGroup,
		Charts:        charts,
	}

	Render(h, w, r, "Plots", "plots.html", output, nil)
}

// analyze guards Compute with the selector check the dropdowns normally
// enforce, since nothing stops a hand-built POST from naming a gene or
// group that is not in the table.
func analyze(dataset foldchange.Dataset, referenceGene, controlGroup string) (foldchange.Results, error) {
	if err := foldchange.ValidateSelection(dataset, referenceGene, controlGroup); err != nil {
		return foldchange.Results{}, err
	}

	return foldchange.Compute(dataset, referenceGene, controlGroup)
}

func (h *handler) DownloadResult(w http.ResponseWriter, r *http.Request) {
	resultPath := filepath.Join(h.Global.OutputPath, "result.csv")
	if _, err := os.Stat(resultPath); err != nil {
		HTTPError(h, w, r, fmt.Errorf("No result.csv has been produced yet"), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="result.csv"`)
	http.ServeFile(w, r, resultPath)
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	goroutines := fmt.Sprintf("%d goroutines are currently active\n", runtime.NumGoroutine())

	w.Write([]byte(goroutines))
}
