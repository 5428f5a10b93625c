package score

import (
	"math"

	"github.com/carbocation/grs/genotype"
	"github.com/carbocation/grs/prsparser"
)

type LogOddsResult struct {
	Tally
	Percent float64
}

// LogOdds scores a panel in ln(odds ratio) units. A protective SNP (odds
// ratio below 1) scores its non-effect alleles instead of its effect alleles,
// so that every contribution is non-negative. Imputed calls are weighted by
// their confidence.
func LogOdds(lookup Lookup, panel *prsparser.Panel) (LogOddsResult, error) {
	res := LogOddsResult{Tally: NewTally()}

	for _, id := range panel.IDs() {
		entry := panel.Entries[id]
		w := entry.LogWeight()
		res.MaxPossible += 2 * math.Abs(w)

		v, exists := res.find(lookup, id)
		if !exists {
			continue
		}

		ac, nac := genotype.CountAlleles(v.Genotype, entry.EffectAllele, entry.NonEffectAllele)

		var contribution float64
		if w >= 0 {
			contribution = w * float64(ac)
		} else {
			contribution = -w * float64(nac)
		}
		res.Score += contribution * v.Confidence

		for i := 0; i < ac; i++ {
			res.OddsRatio *= entry.OddsRatio
		}
	}

	if err := res.Check(panel.Name); err != nil {
		return res, err
	}

	if res.MaxPossible != 0 {
		res.Percent = 100 * res.Score / res.MaxPossible
	}

	return res, nil
}
