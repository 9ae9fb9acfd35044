package foldchange

import (
	"math"
)

// Compute runs the comparative Ct (ΔΔCt) analysis. For every gene other
// than referenceGene it yields one Record per group present in that gene's
// measurements: the gene's mean Ct minus the reference gene's mean Ct in
// the same group (ΔCt), that difference re-centered on the control group
// (ΔΔCt), and the resulting relative expression 2^(−ΔΔCt).
//
// Compute is a pure function of its arguments: it keeps no state, logs
// nothing, and returns the same output for the same input. Undefined means
// (a pair with no valid Ct, or a group the reference gene was never
// measured in) propagate as NaN rather than failing. The one hard failure
// mode is a target gene with no rows at all in the control group, which
// leaves nothing to normalize against; the whole analysis is abandoned on
// the first such gene.
//
// Compute does not check that referenceGene occurs in the dataset; callers
// validate selections (see ValidateSelection), and an absent reference
// deterministically produces NaN records.
func Compute(d Dataset, referenceGene, controlGroup string) (Results, error) {
	if missing := d.MissingColumns(); len(missing) > 0 {
		return Results{}, SchemaError{Missing: missing}
	}

	grouped := GroupCt(d)

	out := Results{Records: make(map[string][]Record)}

	for _, gene := range grouped.Genes() {
		if gene == referenceGene {
			continue
		}

		if _, ok := grouped.Cell(gene, controlGroup); !ok {
			return Results{}, ControlGroupNotFoundError{Gene: gene, Group: controlGroup}
		}

		controlDelta := grouped.MeanCt(gene, controlGroup) - grouped.MeanCt(referenceGene, controlGroup)

		groups := grouped.Groups(gene)
		records := make([]Record, 0, len(groups))
		for _, group := range groups {
			delta := grouped.MeanCt(gene, group) - grouped.MeanCt(referenceGene, group)
			deltaDelta := delta - controlDelta

			records = append(records, Record{
				Group:        group,
				DeltaCt:      delta,
				DeltaDeltaCt: deltaDelta,
				FoldChange:   math.Exp2(-deltaDelta),
			})
		}

		out.Genes = append(out.Genes, gene)
		out.Records[gene] = records
	}

	return out, nil
}

// ValidateSelection is the pre-analysis check the interactive surface
// performs before calling Compute: the chosen control group and reference
// gene must each occur among the dataset's distinct values. Kept separate
// from Compute so the calculator's contract stays caller-validates.
func ValidateSelection(d Dataset, referenceGene, controlGroup string) error {
	if !containsString(d.Genes(), referenceGene) {
		return InvalidSelectionError{What: "reference gene", Value: referenceGene}
	}

	if !containsString(d.Groups(), controlGroup) {
		return InvalidSelectionError{What: "control group", Value: controlGroup}
	}

	return nil
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}
