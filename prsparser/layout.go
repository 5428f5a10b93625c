package prsparser

import (
	"sort"
	"strings"
)

// Layout describes the columns of a panel file. Columns that a layout does
// not carry are set to -1. A zero Delimiter means the delimiter is detected
// from the file contents.
type Layout struct {
	Delimiter          rune
	Comment            rune
	ColID              int
	ColOddsRatio       int
	ColWeight          int
	ColEffectAllele    int
	ColNonEffectAllele int
}

var Layouts = map[string]Layout{
	// snp, _, _, weight, effect allele
	"BIOBANK": {
		Delimiter:          ',',
		ColID:              0,
		ColOddsRatio:       -1,
		ColWeight:          3,
		ColEffectAllele:    4,
		ColNonEffectAllele: -1,
	},
	// snp, _, odds ratio, weight, effect allele, non-effect allele
	"FIVETYPES": {
		Delimiter:          ',',
		ColID:              0,
		ColOddsRatio:       2,
		ColWeight:          3,
		ColEffectAllele:    4,
		ColNonEffectAllele: 5,
	},
}

// MinColumns is the number of fields a row needs to hold every column the
// layout uses.
func (l Layout) MinColumns() int {
	max := l.ColID
	for _, col := range []int{l.ColOddsRatio, l.ColWeight, l.ColEffectAllele, l.ColNonEffectAllele} {
		if col > max {
			max = col
		}
	}

	return max + 1
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
