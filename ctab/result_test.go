package ctab

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/calcdelta/qpcr/foldchange"
)

func TestWriteResultsFormat(t *testing.T) {
	rows := []foldchange.Row{
		{Gene: "Myc", Group: "Ctrl", DeltaCt: 4, DeltaDeltaCt: 0, FoldChange: 1},
		{Gene: "Myc", Group: "Trt", DeltaCt: math.NaN(), DeltaDeltaCt: math.NaN(), FoldChange: math.NaN()},
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, rows); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, utf8BOM) {
		t.Error("Result file does not start with the UTF-8 byte-order mark")
	}

	lines := strings.Split(strings.TrimPrefix(out, utf8BOM), "\n")
	if expected := "Gene,Group,ΔCt,ΔΔCt,Fold Change"; lines[0] != expected {
		t.Errorf("Header: got %q, expected %q", lines[0], expected)
	}
	if expected := "Myc,Ctrl,4,0,1"; lines[1] != expected {
		t.Errorf("Row: got %q, expected %q", lines[1], expected)
	}
	if expected := "Myc,Trt,NaN,NaN,NaN"; lines[2] != expected {
		t.Errorf("NaN row: got %q, expected %q", lines[2], expected)
	}
}

func TestResultsRoundTrip(t *testing.T) {
	table := strings.Join([]string{
		"Gene,Group,Ct",
		"Ref,Ctrl,20", "Ref,Trt,19",
		"Myc,Ctrl,24", "Myc,Trt,22",
		"Jun,Ctrl,27", "Jun,Trt,28.5",
	}, "\n")

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	res, err := foldchange.Compute(d, "Ref", "Ctrl")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, res.Flatten()); err != nil {
		t.Fatal(err)
	}

	back, err := ReadResults(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(back, res) {
		t.Fatalf("Round trip changed the results:\nwrote %+v\nread  %+v", res, back)
	}
}

func TestReadResultsKeepsNaN(t *testing.T) {
	rows := []foldchange.Row{
		{Gene: "Myc", Group: "Trt", DeltaCt: math.NaN(), DeltaDeltaCt: math.NaN(), FoldChange: math.NaN()},
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, rows); err != nil {
		t.Fatal(err)
	}

	back, err := ReadResults(&buf)
	if err != nil {
		t.Fatal(err)
	}

	rec := back.Records["Myc"][0]
	if !math.IsNaN(rec.DeltaCt) || !math.IsNaN(rec.FoldChange) {
		t.Fatalf("NaN not preserved: %+v", rec)
	}
}

func TestReadResultsEmptyFileHasNoGenes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, nil); err != nil {
		t.Fatal(err)
	}

	back, err := ReadResults(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(back.Genes) != 0 || len(back.Records) != 0 {
		t.Fatalf("Expected empty results, got %+v", back)
	}
}
