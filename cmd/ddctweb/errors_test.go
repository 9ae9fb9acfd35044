package main

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/calcdelta/qpcr/foldchange"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid selection",
			err:  foldchange.InvalidSelectionError{What: "reference gene", Value: "Gapd"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing columns",
			err:  foldchange.SchemaError{Missing: []string{foldchange.ColCt}},
			want: http.StatusBadRequest,
		},
		{
			name: "control group without rows",
			err:  foldchange.ControlGroupNotFoundError{Gene: "Myc", Group: "Ctrl"},
			want: http.StatusBadRequest,
		},
		{
			name: "wrapped user error",
			err:  fmt.Errorf("table.csv: %w", foldchange.SchemaError{Missing: []string{foldchange.ColGroup}}),
			want: http.StatusBadRequest,
		},
		{
			name: "anything else",
			err:  fmt.Errorf("disk full"),
			want: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := errorStatus(test.err); got != test.want {
				t.Errorf("errorStatus(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}

func TestJSONRowsTurnNaNIntoNull(t *testing.T) {
	rows := []foldchange.Row{
		{Gene: "Myc", Group: "Ctrl", DeltaCt: 4, DeltaDeltaCt: 0, FoldChange: 1},
		{Gene: "Myc", Group: "Trt", DeltaCt: math.NaN(), DeltaDeltaCt: math.NaN(), FoldChange: math.NaN()},
	}

	got := jsonRows(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	if !got[0].FoldChange.Valid || got[0].FoldChange.Float64 != 1 {
		t.Errorf("defined fold change should survive as a number: %+v", got[0].FoldChange)
	}
	if got[1].DeltaCt.Valid || got[1].DeltaDeltaCt.Valid || got[1].FoldChange.Valid {
		t.Errorf("undefined values should be invalid: %+v", got[1])
	}
}
