package foldchange

import (
	"gopkg.in/guregu/null.v3"
)

// The canonical column names the calculator requires. Sources may label
// their columns differently; the loader maps them onto these before a
// Dataset reaches Compute.
var RequiredColumns = []string{ColGene, ColGroup, ColCt}

const (
	ColGene  = "Gene"
	ColGroup = "Group"
	ColCt    = "Ct"
)

// Measurement is one well's worth of data: which gene was assayed, which
// experimental group the sample belonged to, and the observed cycle
// threshold. A Ct that was absent or non-numeric in the source is carried as
// an invalid null.Float rather than rejected, because no-amplification wells
// ("Undetermined") are ordinary data in qPCR runs.
type Measurement struct {
	Gene  string
	Group string
	Ct    null.Float
}

// Dataset is an ordered collection of measurements plus the canonical
// columns that were actually present in the source. Loaders only guarantee
// Gene and Group up front; a missing Ct column is discovered here by
// Compute, mirroring the reference tool's analysis-time check.
type Dataset struct {
	Measurements []Measurement
	Columns      []string
}

// NewDataset wraps in-memory measurements as a Dataset with the full schema
// marked present.
func NewDataset(measurements []Measurement) Dataset {
	return Dataset{
		Measurements: measurements,
		Columns:      RequiredColumns,
	}
}

// MissingColumns lists the required columns the source did not provide, in
// schema order.
func (d Dataset) MissingColumns() []string {
	present := make(map[string]struct{}, len(d.Columns))
	for _, col := range d.Columns {
		present[col] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}

	return missing
}

// Genes returns the distinct gene identifiers in first-seen order.
func (d Dataset) Genes() []string {
	return d.distinct(func(m Measurement) string { return m.Gene })
}

// Groups returns the distinct group identifiers in first-seen order. This is
// the order the selectors in the UI are populated in; the calculator's
// per-gene emission order is the grouping order instead.
func (d Dataset) Groups() []string {
	return d.distinct(func(m Measurement) string { return m.Group })
}

func (d Dataset) distinct(key func(Measurement) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, m := range d.Measurements {
		k := key(m)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	return out
}
