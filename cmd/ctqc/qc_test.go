package main

import (
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/calcdelta/qpcr/foldchange"
)

func ct(gene, group string, value float64) foldchange.Measurement {
	return foldchange.Measurement{Gene: gene, Group: group, Ct: null.FloatFrom(value)}
}

func ctMissing(gene, group string) foldchange.Measurement {
	return foldchange.Measurement{Gene: gene, Group: group}
}

func TestRunQC(t *testing.T) {
	dataset := foldchange.NewDataset([]foldchange.Measurement{
		// Tight triplicates
		ct("Ref", "Ctrl", 20.0), ct("Ref", "Ctrl", 20.1), ct("Ref", "Ctrl", 19.9),
		ct("Ref", "Trt", 19.0), ct("Ref", "Trt", 19.1), ct("Ref", "Trt", 18.9),
		ct("Myc", "Ctrl", 24.0), ct("Myc", "Ctrl", 24.1), ct("Myc", "Ctrl", 23.9),
		// A cell whose replicates disagree wildly
		ct("Myc", "Trt", 22.0), ct("Myc", "Trt", 25.0), ct("Myc", "Trt", 19.0),
		// A cell in which nothing amplified
		ctMissing("Jun", "Ctrl"), ctMissing("Jun", "Ctrl"), ctMissing("Jun", "Ctrl"),
		// A cell with a lost replicate
		ct("Jun", "Trt", 27.0), ct("Jun", "Trt", 27.1),
	})

	grouped := foldchange.GroupCt(dataset)

	flags := runQC(grouped, dataset, 2, 0.5)

	for _, v := range []struct {
		Gene     string
		Group    string
		Expected string
	}{
		{"Ref", "Ctrl", ""},
		{"Ref", "Trt", ""},
		{"Myc", "Ctrl", ""},
		{"Myc", "Trt", "CtOutlier|HighReplicateSD"},
		{"Jun", "Ctrl", "AllMissing"},
		{"Jun", "Trt", "AbnormalReplicateCount"},
	} {
		got := flags[cellID{v.Gene, v.Group}].String()
		if got != v.Expected {
			t.Errorf("%s/%s: flags got %q, expected %q", v.Gene, v.Group, got, v.Expected)
		}
	}
}

func TestFlagSetStringIsSortedAndJoined(t *testing.T) {
	flags := CellFlags{}
	id := cellID{"Myc", "Trt"}

	flags.AddFlag(id, "HighReplicateSD")
	flags.AddFlag(id, "CtOutlier")
	flags.AddFlag(id, "CtOutlier")

	if got, expected := flags[id].String(), "CtOutlier|HighReplicateSD"; got != expected {
		t.Errorf("Got %q, expected %q", got, expected)
	}

	if got := (flagSet{}).String(); got != "" {
		t.Errorf("Empty set: got %q, expected empty", got)
	}
}

func TestHighCellSDWithoutGlobalOutliers(t *testing.T) {
	// Every replicate sits well within the table-wide residual spread, but
	// one cell's spread still exceeds the per-cell Ct ceiling.
	dataset := foldchange.NewDataset([]foldchange.Measurement{
		ct("Ref", "Ctrl", 20.0), ct("Ref", "Ctrl", 20.8),
		ct("Ref", "Trt", 19.0), ct("Ref", "Trt", 19.8),
		ct("Myc", "Ctrl", 24.0), ct("Myc", "Ctrl", 24.9),
	})

	grouped := foldchange.GroupCt(dataset)

	flags := runQC(grouped, dataset, 5, 0.5)

	for _, id := range []cellID{{"Ref", "Ctrl"}, {"Ref", "Trt"}, {"Myc", "Ctrl"}} {
		got := flags[id].String()
		if got != "HighReplicateSD" {
			t.Errorf("%s/%s: flags got %q, expected HighReplicateSD only", id.Gene, id.Group, got)
		}
	}
}
