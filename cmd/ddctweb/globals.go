package main

import (
	"sync"

	"github.com/calcdelta/qpcr/ctab"
	"github.com/calcdelta/qpcr/foldchange"
)

type Global struct {
	log logger

	Site string

	// OutputPath is the directory that receives result.csv.
	OutputPath string
	Layout     ctab.Layout

	// The currently loaded table. Replaced wholesale on each upload; never
	// mutated in place.
	m          sync.RWMutex
	dataset    foldchange.Dataset
	sourceName string
	loaded     bool
}

func (g *Global) Dataset() (foldchange.Dataset, string, bool) {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.dataset, g.sourceName, g.loaded
}

func (g *Global) SetDataset(d foldchange.Dataset, sourceName string) {
	g.m.Lock()
	defer g.m.Unlock()

	g.dataset = d
	g.sourceName = sourceName
	g.loaded = true
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
