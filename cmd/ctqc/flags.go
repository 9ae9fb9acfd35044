package main

import (
	"sort"
	"strings"
)

type cellID struct {
	Gene  string
	Group string
}

// map[cell] => set of flags
type CellFlags map[cellID]flagSet

func (c CellFlags) AddFlag(cell cellID, flag string) {
	set, exists := c[cell]
	if !exists {
		set = make(flagSet)
	}
	set[flag] = struct{}{}
	c[cell] = set
}

type flagSet map[string]struct{}

func (fs flagSet) String() string {
	if len(fs) == 0 {
		return ""
	}

	sb := make([]string, 0, len(fs))
	for v := range fs {
		sb = append(sb, v)
	}

	sort.Strings(sb)

	return strings.Join(sb, "|")
}
