package prsparser

import (
	"math"
	"sort"
)

// Entry is one weighted SNP of a panel.
type Entry struct {
	ID              string
	Weight          float64
	OddsRatio       float64 // Zero when the layout has no odds ratio column
	EffectAllele    string
	NonEffectAllele string // Empty when the layout has no such column
}

// LogWeight is the natural log of the odds ratio.
func (e Entry) LogWeight() float64 {
	return math.Log(e.OddsRatio)
}

// Panel is a named set of entries keyed by ID.
type Panel struct {
	Name    string
	Layout  Layout
	Entries map[string]Entry
}

// IDs returns the panel's IDs in sorted order.
func (p *Panel) IDs() []string {
	out := make([]string, 0, len(p.Entries))
	for id := range p.Entries {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

func (p *Panel) Len() int {
	return len(p.Entries)
}
