package score

import (
	"github.com/carbocation/grs/genotype"
	"github.com/carbocation/grs/hla"
	"github.com/carbocation/grs/prsparser"
)

// Cutoff above which a linear GRS is consistent with T1D.
const Cutoff = 0.231

type LinearResult struct {
	Tally
	GRS float64
	HLA hla.Result
}

func (r LinearResult) Consistent() bool {
	return r.GRS > Cutoff
}

func (r LinearResult) Classification() string {
	if r.Consistent() {
		return "Consistent with T1D"
	}
	return "Unlikely to be T1D"
}

// Linear computes the weighted effect allele sum over the panel, divided by
// the number of alleles scored. With withHLA, the two HLA tag SNPs are scored
// first by the haplotype table; they count toward the SNP total whether or not
// they were found.
func Linear(lookup Lookup, panel *prsparser.Panel, withHLA bool) (LinearResult, error) {
	res := LinearResult{Tally: NewTally()}

	if withHLA {
		res.HLA = hla.Score(lookup)
		res.Total += len(hla.Markers)
		if res.HLA.Found {
			res.Used += len(hla.Markers)
			res.Score += res.HLA.Contribution
		} else {
			res.Missing = append(res.Missing, res.HLA.Missing...)
		}
	}

	for _, id := range panel.IDs() {
		v, exists := res.find(lookup, id)
		if !exists {
			continue
		}

		entry := panel.Entries[id]
		ac, _ := genotype.CountAlleles(v.Genotype, entry.EffectAllele, "")
		res.Score += entry.Weight * float64(ac)
	}

	if err := res.Check(panel.Name); err != nil {
		return res, err
	}

	// The denominator counts the HLA tag SNPs as two alleles each
	res.GRS = res.Score / float64(2*res.Total)

	return res, nil
}
