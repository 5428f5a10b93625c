package genotype

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
)

// Map columns in a .gen file to their positions. Format definition:
// http://www.stats.ox.ac.uk/~marchini/software/gwas/file_format.html
const (
	GenSNPID int = iota
	GenRSID
	GenPosition
	GenAlleleA
	GenAlleleB
	GenProbAA
	GenProbAB
	GenProbBB
)

// PickGenotype returns the index (0 = AA, 1 = AB, 2 = BB) and value of the
// largest probability. Ties go to the earliest genotype in AA, AB, BB order.
func PickGenotype(probs [3]float64) (int, float64) {
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best, probs[best]
}

// genotypeFromAlleles builds the AA, AB or BB genotype string for index i.
func genotypeFromAlleles(a, b string, i int) string {
	switch i {
	case 0:
		return a + a
	case 1:
		return a + b
	}
	return b + b
}

// LoadImputed reads a .gen file holding a single sample. Each record keeps the
// most probable genotype, with that probability as its confidence.
func LoadImputed(r io.Reader, source string) (map[string]Variant, error) {
	out := make(map[string]Variant)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) < GenProbBB+1 {
			return nil, &grs.ParseError{Source: source, Line: line, Fields: len(cols), Want: GenProbBB + 1}
		}

		var probs [3]float64
		for i := range probs {
			p, err := strconv.ParseFloat(cols[GenProbAA+i], 64)
			if err != nil {
				return nil, &grs.ParseError{Source: source, Line: line, Fields: len(cols), Want: GenProbBB + 1, Err: err}
			}
			probs[i] = p
		}

		which, prob := PickGenotype(probs)

		v := Variant{
			ID:         cols[GenRSID],
			Genotype:   genotypeFromAlleles(cols[GenAlleleA], cols[GenAlleleB], which),
			Confidence: prob,
			Source:     SourceGen,
		}
		if pos, err := strconv.ParseUint(cols[GenPosition], 10, 32); err == nil {
			v.Position = uint32(pos)
		}

		out[v.ID] = v
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// LoadImputedFile loads a .gen file from a local or gs:// path. The imputed
// source is optional: if it does not exist, an empty map and no error are
// returned.
func LoadImputedFile(path string, client *storage.Client) (map[string]Variant, error) {
	if path == "" {
		return map[string]Variant{}, nil
	}

	f, err := grs.Open(path, client)
	if errors.Is(err, grs.ErrMissingRequiredFile) {
		log.Printf("No imputed genotypes at %s; continuing with direct calls only\n", path)
		return map[string]Variant{}, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := LoadImputed(f, path)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d imputed variants from %s\n", len(out), path)

	return out, nil
}
