package foldchange

import (
	"math"
	"sort"
	"strconv"

	"github.com/carbocation/runningvariance"
	"gopkg.in/guregu/null.v3"
)

// CellStats accumulates the replicate Ct measurements behind one
// (gene, group) cell of the experiment.
type CellStats struct {
	Gene  string
	Group string

	// Rows counts every measurement routed to this cell, whether or not its
	// Ct was usable. Presence of rows, not of valid values, is what decides
	// whether a group "exists" for a gene.
	Rows int

	stat *runningvariance.RunningStat
}

func newCellStats(gene, group string) *CellStats {
	return &CellStats{
		Gene:  gene,
		Group: group,
		stat:  runningvariance.NewRunningStat(),
	}
}

func (c *CellStats) add(ct null.Float) {
	c.Rows++
	if ct.Valid {
		c.stat.Push(ct.Float64)
	}
}

// ValidCount is the number of replicates that carried a numeric Ct.
func (c *CellStats) ValidCount() int {
	return int(c.stat.N)
}

// MeanCt is the arithmetic mean over the valid replicates, or NaN when the
// cell has none. Never zero-by-default: an undefined mean must propagate as
// undefined.
func (c *CellStats) MeanCt() float64 {
	if c.stat.N == 0 {
		return math.NaN()
	}

	return c.stat.Mean()
}

// SD is the sample standard deviation over the valid replicates: 0 for a
// single replicate, NaN for none.
func (c *CellStats) SD() float64 {
	if c.stat.N == 0 {
		return math.NaN()
	}

	return c.stat.StandardDeviation()
}

// GroupedCt is the dataset regrouped by (gene, group), with per-cell
// replicate statistics. It is built fresh for each analysis and discarded
// afterwards.
type GroupedCt struct {
	cells map[string]map[string]*CellStats

	geneOrder  []string            // first-seen order of genes
	groupSeen  map[string][]string // per-gene first-seen order of groups
	allGroups  []string            // dataset-wide distinct groups, first seen
	numericKey bool                // every distinct group parses as a number
}

// GroupCt buckets every measurement by gene and group.
func GroupCt(d Dataset) *GroupedCt {
	g := &GroupedCt{
		cells:     make(map[string]map[string]*CellStats),
		groupSeen: make(map[string][]string),
	}

	seenGroup := make(map[string]struct{})

	for _, m := range d.Measurements {
		byGroup, ok := g.cells[m.Gene]
		if !ok {
			byGroup = make(map[string]*CellStats)
			g.cells[m.Gene] = byGroup
			g.geneOrder = append(g.geneOrder, m.Gene)
		}

		cell, ok := byGroup[m.Group]
		if !ok {
			cell = newCellStats(m.Gene, m.Group)
			byGroup[m.Group] = cell
			g.groupSeen[m.Gene] = append(g.groupSeen[m.Gene], m.Group)
		}

		cell.add(m.Ct)

		if _, ok := seenGroup[m.Group]; !ok {
			seenGroup[m.Group] = struct{}{}
			g.allGroups = append(g.allGroups, m.Group)
		}
	}

	g.numericKey = allNumeric(g.allGroups)

	return g
}

// Genes returns the distinct genes in first-seen order.
func (g *GroupedCt) Genes() []string {
	return g.geneOrder
}

// Groups returns the gene's groups in grouping-key order: numeric ascending
// when every group identifier in the dataset is numeric, lexicographic
// ascending otherwise. This is the order records are emitted in, and it is
// reproducible across runs regardless of row order within a group.
func (g *GroupedCt) Groups(gene string) []string {
	seen := g.groupSeen[gene]
	out := make([]string, len(seen))
	copy(out, seen)

	sortGroupKeys(out, g.numericKey)

	return out
}

// Cell fetches the stats for one (gene, group) pair, reporting whether any
// rows existed for it.
func (g *GroupedCt) Cell(gene, group string) (*CellStats, bool) {
	cell, ok := g.cells[gene][group]
	return cell, ok
}

// MeanCt is the mean Ct for the pair, or NaN when the pair has no rows or no
// valid values.
func (g *GroupedCt) MeanCt(gene, group string) float64 {
	cell, ok := g.Cell(gene, group)
	if !ok {
		return math.NaN()
	}

	return cell.MeanCt()
}

// Cells returns every cell, genes in first-seen order and groups in
// grouping-key order within each gene.
func (g *GroupedCt) Cells() []*CellStats {
	out := make([]*CellStats, 0, len(g.geneOrder))
	for _, gene := range g.geneOrder {
		for _, group := range g.Groups(gene) {
			out = append(out, g.cells[gene][group])
		}
	}

	return out
}

func allNumeric(keys []string) bool {
	if len(keys) == 0 {
		return false
	}

	for _, k := range keys {
		if _, err := strconv.ParseFloat(k, 64); err != nil {
			return false
		}
	}

	return true
}

func sortGroupKeys(keys []string, numeric bool) {
	if !numeric {
		sort.Strings(keys)
		return
	}

	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseFloat(keys[i], 64)
		b, _ := strconv.ParseFloat(keys[j], 64)
		return a < b
	})
}
