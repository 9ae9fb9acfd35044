// Package ctab loads flat gene/group/Ct tables from the formats qPCR
// instruments actually export: delimited text (optionally compressed),
// legacy .xls workbooks, and .xlsx workbooks. It maps whatever the export
// calls its columns onto the canonical schema the calculator consumes.
package ctab

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// DefaultNATokens are the cell values treated as a missing Ct. Beyond the
// bare empty cell, thermocycler software writes "Undetermined" or "No Cq"
// for wells that never crossed threshold, and hand-edited sheets tend
// toward the N/A spellings.
var DefaultNATokens = []string{"", "N/A", "NA", "NaN", "Undetermined", "No Cq"}

// Layout names the columns of interest in a source table and the tokens
// that mean "no Ct". Header cells are matched exactly after trimming
// surrounding whitespace.
type Layout struct {
	GeneColumn  string
	GroupColumn string
	CtColumn    string
	NATokens    []string
}

// DefaultLayout matches tables whose header row literally says Gene, Group
// and Ct.
func DefaultLayout() Layout {
	return Layout{
		GeneColumn:  "Gene",
		GroupColumn: "Group",
		CtColumn:    "Ct",
		NATokens:    DefaultNATokens,
	}
}

// WithExtraNATokens returns a copy of the layout that additionally treats
// the given tokens as missing Ct values.
func (l Layout) WithExtraNATokens(tokens ...string) Layout {
	combined := make([]string, 0, len(l.NATokens)+len(tokens))
	combined = append(combined, l.NATokens...)
	combined = append(combined, tokens...)
	l.NATokens = combined

	return l
}

// ParseCt coerces one raw cell into a Ct value. Missing tokens and anything
// that fails to parse as a number come back invalid; bad cells are data
// here, not errors.
func (l Layout) ParseCt(value string) null.Float {
	value = strings.TrimSpace(value)

	for _, token := range l.NATokens {
		if value == token {
			return null.Float{}
		}
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return null.Float{}
	}

	return null.FloatFrom(parsed)
}
