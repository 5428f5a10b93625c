// Package score turns a merged genotype store and a SNP panel into a genetic
// risk score.
package score

import (
	"log"

	"github.com/carbocation/grs"
	"github.com/carbocation/grs/genotype"
	"github.com/carbocation/grs/hla"
)

// Lookup is satisfied by *genotype.Store.
type Lookup = hla.Lookup

// Tally accumulates the per-SNP contributions of one panel.
type Tally struct {
	Total       int
	Used        int
	Score       float64
	MaxPossible float64
	OddsRatio   float64
	Missing     []string
}

func NewTally() Tally {
	return Tally{OddsRatio: 1.0}
}

// Check is the completeness gate: it returns a *grs.IncompleteDataError if
// any SNP was not found.
func (t *Tally) Check(panel string) error {
	if t.Used < t.Total {
		return &grs.IncompleteDataError{
			Panel:   panel,
			Missing: t.Total - t.Used,
			IDs:     t.Missing,
		}
	}

	return nil
}

// find looks up a panel SNP, counting it toward Total and, when present,
// toward Used.
func (t *Tally) find(lookup Lookup, id string) (genotype.Variant, bool) {
	t.Total++

	v, exists := lookup.Get(id)
	if !exists {
		log.Printf("%s not found in variant data\n", id)
		t.Missing = append(t.Missing, id)
		return v, false
	}
	t.Used++

	return v, true
}
