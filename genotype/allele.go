package genotype

import "strings"

var complement = map[rune]rune{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
}

// Complement returns the base complement of a genotype read from the other
// strand, upper-cased. Genotypes are unordered pairs, so the result is not
// reversed. Only upper-case A/C/G/T are complemented; anything else,
// including lower-case bases, is upper-cased and otherwise kept.
func Complement(genotype string) string {
	b := strings.Builder{}
	b.Grow(len(genotype))
	for _, base := range genotype {
		if c, ok := complement[base]; ok {
			b.WriteRune(c)
		} else {
			b.WriteString(strings.ToUpper(string(base)))
		}
	}
	return b.String()
}

// CountAlleles returns the number of effect and non-effect alleles in a
// genotype. With an empty nonEffect, the non-effect count is 2 minus the
// effect count. When the two counts do not add up to 2, the genotype is
// assumed to have been reported on the opposite strand and both counts are
// taken from its complement instead. The complemented counts are returned as
// they are, even if they still do not add up to 2.
func CountAlleles(genotype, effect, nonEffect string) (ac, nac int) {
	ac, nac = countAlleles(genotype, effect, nonEffect)
	if ac+nac != 2 {
		ac, nac = countAlleles(Complement(genotype), effect, nonEffect)
	}
	return ac, nac
}

func countAlleles(genotype, effect, nonEffect string) (ac, nac int) {
	ac = countAllele(genotype, effect)
	if nonEffect == "" {
		return ac, 2 - ac
	}
	return ac, countAllele(genotype, nonEffect)
}

func countAllele(genotype, allele string) int {
	if allele == "" {
		return 0
	}
	return strings.Count(genotype, allele)
}
