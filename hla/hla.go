// Package hla scores the HLA-DR3/DR4 haplotypes from two tag SNPs, which the
// linear T1D score weights separately from the rest of its panel.
package hla

import (
	"log"

	"github.com/carbocation/grs/genotype"
)

// Tag SNPs for DR3 and DR4
const (
	DR3Tag = "rs2187668"
	DR4Tag = "rs7454108"
)

// Markers lists the tag SNPs in the order they are reported.
var Markers = []string{DR3Tag, DR4Tag}

// Any matches every genotype in a Rule.
const Any = ""

// Rule matches raw genotype strings. The first matching rule in Rules wins.
type Rule struct {
	DR3   string
	DR4   string
	Label string
	Score float64
}

func (r Rule) matches(dr3, dr4 string) bool {
	return (r.DR3 == Any || r.DR3 == dr3) && (r.DR4 == Any || r.DR4 == dr4)
}

var Rules = []Rule{
	{DR3: "AG", DR4: "CT", Label: "DR3/DR4", Score: 3.87},
	{DR3: "AA", DR4: Any, Label: "DR3/DR3", Score: 3.05},
	{DR3: Any, DR4: "CC", Label: "DR4/DR4", Score: 3.09},
	{DR3: Any, DR4: "CT", Label: "DR4/X", Score: 1.95},
	{DR3: "AG", DR4: Any, Label: "DR3/X", Score: 1.51},
	{DR3: Any, DR4: Any, Label: "DRX/DRX", Score: 0},
}

// Lookup is satisfied by *genotype.Store.
type Lookup interface {
	Get(id string) (genotype.Variant, bool)
}

type Result struct {
	Label        string
	Contribution float64
	Found        bool     // Both tag SNPs were present
	Missing      []string // Tag SNPs that were absent
}

// Score classifies the HLA haplotype pair. If either tag SNP is absent, the
// result has no label and contributes nothing.
func Score(lookup Lookup) Result {
	res := Result{}

	dr3, ok3 := lookup.Get(DR3Tag)
	dr4, ok4 := lookup.Get(DR4Tag)

	if !ok3 {
		res.Missing = append(res.Missing, DR3Tag)
	}
	if !ok4 {
		res.Missing = append(res.Missing, DR4Tag)
	}
	if len(res.Missing) > 0 {
		for _, id := range res.Missing {
			log.Printf("%s not found in variant data\n", id)
		}
		return res
	}

	res.Found = true
	for _, rule := range Rules {
		if rule.matches(dr3.Genotype, dr4.Genotype) {
			res.Label = rule.Label
			res.Contribution = rule.Score
			break
		}
	}

	log.Printf("HLA: %s (%s %s, %s %s)\n", res.Label, DR3Tag, dr3.Genotype, DR4Tag, dr4.Genotype)

	return res
}
