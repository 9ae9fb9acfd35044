package foldchange

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns that the input table did not contain.
type SchemaError struct {
	Missing []string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("Required columns %s not found in the input table", strings.Join(e.Missing, ", "))
}

// ControlGroupNotFoundError reports that the selected control group has no
// measurements at all for a target gene, which leaves that gene with no
// baseline to normalize against.
type ControlGroupNotFoundError struct {
	Gene  string
	Group string
}

func (e ControlGroupNotFoundError) Error() string {
	return fmt.Sprintf("Control group %s has no measurements for gene %s", e.Group, e.Gene)
}

// InvalidSelectionError reports a reference-gene or control-group choice
// that does not occur anywhere in the dataset. The interactive surface
// prevents this by construction; command-line callers hit it with a typo.
type InvalidSelectionError struct {
	What  string
	Value string
}

func (e InvalidSelectionError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.What, e.Value)
}
