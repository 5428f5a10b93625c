package genotype

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
)

const BufferSize = 4096 * 8

// LoadImputedVCF reads imputed calls for one sample from a VCF. The genotype
// comes from the GP (genotype probability) field when it is present, and
// otherwise from the hard GT call, with confidence 1. Multiallelic sites and
// sites with no usable call for the sample are skipped.
func LoadImputedVCF(r io.Reader, source string, sample int) (map[string]Variant, error) {
	out := make(map[string]Variant)

	rdr, err := vcfgo.NewReader(bufio.NewReaderSize(r, BufferSize), false)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if sample < 0 || sample >= len(rdr.Header.SampleNames) {
		return nil, fmt.Errorf("%s: sample %d is out of range (%d samples)", source, sample, len(rdr.Header.SampleNames))
	}

	skipped := 0
	for variant := rdr.Read(); variant != nil; variant = rdr.Read() {
		v, err := variantFromVCF(variant, sample)
		if err != nil {
			skipped++
			continue
		}

		out[v.ID] = v
	}
	if err := rdr.Error(); err != nil {
		return nil, pfx.Err(err)
	}

	if skipped > 0 {
		log.Printf("Skipped %d sites in %s that had no usable biallelic call\n", skipped, source)
	}

	return out, nil
}

// LoadImputedVCFFile loads a VCF from a local or gs:// path, which may be
// compressed. The source is optional: if it does not exist, an empty map and
// no error are returned.
func LoadImputedVCFFile(path string, client *storage.Client, sample int) (map[string]Variant, error) {
	if path == "" {
		return map[string]Variant{}, nil
	}

	f, err := grs.Open(path, client)
	if errors.Is(err, grs.ErrMissingRequiredFile) {
		log.Printf("No imputed VCF at %s; continuing without it\n", path)
		return map[string]Variant{}, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := LoadImputedVCF(f, path, sample)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d imputed variants from %s\n", len(out), path)

	return out, nil
}

func variantFromVCF(variant *vcfgo.Variant, sample int) (Variant, error) {
	id := variant.Id()
	if id == "" || id == "." {
		return Variant{}, fmt.Errorf("%s:%d has no ID", variant.Chromosome, variant.Pos)
	}
	if len(variant.Alt()) != 1 {
		return Variant{}, fmt.Errorf("%s is not biallelic", id)
	}
	if sample >= len(variant.Samples) || variant.Samples[sample] == nil {
		return Variant{}, fmt.Errorf("%s has no genotype for sample %d", id, sample)
	}

	ref, alt := variant.Ref(), variant.Alt()[0]
	sg := variant.Samples[sample]

	out := Variant{
		ID:         id,
		Chromosome: variant.Chromosome,
		Position:   uint32(variant.Pos),
		Source:     SourceVCF,
	}

	if probs, err := parseGP(sg.Fields["GP"]); err == nil {
		which, prob := PickGenotype(probs)
		out.Genotype = genotypeFromAlleles(ref, alt, which)
		out.Confidence = prob
		return out, nil
	}

	// Hard calls: 0 is ref, 1 is alt, negative is missing
	if len(sg.GT) != 2 || sg.GT[0] < 0 || sg.GT[1] < 0 {
		return Variant{}, fmt.Errorf("%s has no diploid call for sample %d", id, sample)
	}
	out.Genotype = genotypeFromAlleles(ref, alt, sg.GT[0]+sg.GT[1])
	out.Confidence = 1.0

	return out, nil
}

// parseGP reads a VCF GP value such as "0.01,0.09,0.9".
func parseGP(value string) ([3]float64, error) {
	var probs [3]float64

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return probs, fmt.Errorf("GP %q: expected 3 probabilities, found %d", value, len(parts))
	}
	for i, part := range parts {
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return probs, err
		}
		probs[i] = p
	}

	return probs, nil
}
