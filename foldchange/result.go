package foldchange

// Record is the per-group outcome of the ΔΔCt analysis for one gene. Values
// may be NaN when the underlying means were undefined. Records are never
// mutated after Compute returns them.
type Record struct {
	Group        string
	DeltaCt      float64
	DeltaDeltaCt float64
	FoldChange   float64
}

// Results maps each target gene to its per-group records. Genes preserves
// the emission order: distinct genes as first encountered in the dataset,
// reference gene excluded.
type Results struct {
	Genes   []string
	Records map[string][]Record
}

// Row is one line of the flattened presentation table that the stdout
// table, the CSV export and the web view all share.
type Row struct {
	Gene         string
	Group        string
	DeltaCt      float64
	DeltaDeltaCt float64
	FoldChange   float64
}

// Flatten prefixes each gene's records with the gene name and concatenates
// them in emission order, one row per (gene, group).
func (r Results) Flatten() []Row {
	out := make([]Row, 0)

	for _, gene := range r.Genes {
		for _, rec := range r.Records[gene] {
			out = append(out, Row{
				Gene:         gene,
				Group:        rec.Group,
				DeltaCt:      rec.DeltaCt,
				DeltaDeltaCt: rec.DeltaDeltaCt,
				FoldChange:   rec.FoldChange,
			})
		}
	}

	return out
}
