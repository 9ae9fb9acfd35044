package ctab

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/calcdelta/qpcr/foldchange"
)

func TestParseDelimitedComma(t *testing.T) {
	table := strings.Join([]string{
		"Gene,Group,Ct",
		"Ref,Ctrl,20",
		"Ref,Ctrl,22",
		"Myc,Trt,18.5",
	}, "\n")

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Measurements) != 3 {
		t.Fatalf("Expected 3 measurements, got %d: %+v", len(d.Measurements), d.Measurements)
	}

	last := d.Measurements[2]
	if last.Gene != "Myc" || last.Group != "Trt" {
		t.Errorf("Unexpected measurement: %+v", last)
	}
	if !last.Ct.Valid || last.Ct.Float64 != 18.5 {
		t.Errorf("Ct not parsed: %+v", last.Ct)
	}

	if missing := d.MissingColumns(); len(missing) != 0 {
		t.Errorf("Full schema reported missing columns: %v", missing)
	}
}

func TestParseDelimitedSniffsTabs(t *testing.T) {
	table := "Gene\tGroup\tCt\nRef\tCtrl\t20\nMyc\tCtrl\t24\n"

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	if expected := []string{"Ref", "Myc"}; !reflect.DeepEqual(d.Genes(), expected) {
		t.Fatalf("Genes: got %v, expected %v", d.Genes(), expected)
	}
}

func TestParseDelimitedStripsLeadingBOM(t *testing.T) {
	table := utf8BOM + "Gene,Group,Ct\nRef,Ctrl,20\n"

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	if missing := d.MissingColumns(); len(missing) != 0 {
		t.Fatalf("BOM broke header matching: missing %v", missing)
	}
}

func TestParseCtCoercion(t *testing.T) {
	layout := DefaultLayout()

	for _, token := range DefaultNATokens {
		if got := layout.ParseCt(token); got.Valid {
			t.Errorf("Token %q parsed as a value: %+v", token, got)
		}
	}

	for _, v := range []struct {
		In    string
		Valid bool
		Value float64
	}{
		{"21.5", true, 21.5},
		{" 21.5 ", true, 21.5},
		{"garbage", false, 0},
		{"Undetermined", false, 0},
	} {
		got := layout.ParseCt(v.In)
		if got.Valid != v.Valid {
			t.Errorf("%q: Valid got %v, expected %v", v.In, got.Valid, v.Valid)
		}
		if v.Valid && got.Float64 != v.Value {
			t.Errorf("%q: got %f, expected %f", v.In, got.Float64, v.Value)
		}
	}
}

func TestExtraNATokens(t *testing.T) {
	layout := DefaultLayout().WithExtraNATokens("FAIL")

	if got := layout.ParseCt("FAIL"); got.Valid {
		t.Errorf("Extra token still parsed as a value: %+v", got)
	}
	if got := layout.ParseCt("21"); !got.Valid {
		t.Errorf("Extra tokens broke numeric parsing: %+v", got)
	}
}

func TestRenamedColumns(t *testing.T) {
	table := strings.Join([]string{
		"Well,Target Name,Sample,Cq",
		"A1,Ref,Ctrl,20.1",
		"A2,Myc,Ctrl,Undetermined",
	}, "\n")

	layout := DefaultLayout()
	layout.GeneColumn = "Target Name"
	layout.GroupColumn = "Sample"
	layout.CtColumn = "Cq"

	d, err := ParseDelimited(strings.NewReader(table), layout)
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Measurements) != 2 {
		t.Fatalf("Expected 2 measurements, got %+v", d.Measurements)
	}
	if m := d.Measurements[0]; m.Gene != "Ref" || m.Group != "Ctrl" || !m.Ct.Valid {
		t.Errorf("First measurement mismapped: %+v", m)
	}
	if m := d.Measurements[1]; m.Ct.Valid {
		t.Errorf("Undetermined Cq should be missing: %+v", m)
	}
}

func TestMissingGroupColumnFails(t *testing.T) {
	table := "Gene,Ct\nRef,20\n"

	_, err := ParseDelimited(strings.NewReader(table), DefaultLayout())

	var schemaErr foldchange.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected a SchemaError, got %v", err)
	}
	if expected := []string{foldchange.ColGroup}; !reflect.DeepEqual(schemaErr.Missing, expected) {
		t.Fatalf("Missing: got %v, expected %v", schemaErr.Missing, expected)
	}
}

// A missing Ct column is not a load failure: the dataset records the gap
// and the calculator reports it when an analysis is attempted.
func TestMissingCtColumnDeferredToAnalysis(t *testing.T) {
	table := "Gene,Group\nRef,Ctrl\nMyc,Ctrl\n"

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	if expected := []string{foldchange.ColCt}; !reflect.DeepEqual(d.MissingColumns(), expected) {
		t.Fatalf("MissingColumns: got %v, expected %v", d.MissingColumns(), expected)
	}

	_, err = foldchange.Compute(d, "Ref", "Ctrl")
	var schemaErr foldchange.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected analysis-time SchemaError, got %v", err)
	}
}

func TestBlankRowsSkipped(t *testing.T) {
	table := "Gene,Group,Ct\nRef,Ctrl,20\n,,\n , ,\nMyc,Ctrl,24\n"

	d, err := ParseDelimited(strings.NewReader(table), DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Measurements) != 2 {
		t.Fatalf("Blank rows not skipped: %+v", d.Measurements)
	}
}

func TestLoadDecompressesGzip(t *testing.T) {
	table := "Gene,Group,Ct\nRef,Ctrl,20\nMyc,Ctrl,24\n"

	path := filepath.Join(t.TempDir(), "table.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(table)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path, DefaultLayout(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if expected := []string{"Ref", "Myc"}; !reflect.DeepEqual(d.Genes(), expected) {
		t.Fatalf("Genes: got %v, expected %v", d.Genes(), expected)
	}
}
