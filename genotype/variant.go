package genotype

import "fmt"

// Source records where a genotype call came from.
type Source byte

const (
	SourceDirect Source = iota
	SourceGen
	SourceBGEN
	SourceVCF
)

func (s Source) String() string {
	switch s {
	case SourceDirect:
		return "direct"
	case SourceGen:
		return "gen"
	case SourceBGEN:
		return "bgen"
	case SourceVCF:
		return "vcf"
	}
	return "unknown"
}

// Variant is one genotype call for one SNP.
type Variant struct {
	ID         string // E.g., RSID
	Chromosome string // Empty when the source does not carry it
	Position   uint32 // Zero when the source does not carry it
	Genotype   string // Two bases, e.g. "AG"
	Confidence float64
	Source     Source
}

func (v Variant) String() string {
	return fmt.Sprintf("%s %s (%s, confidence %.3f)", v.ID, v.Genotype, v.Source, v.Confidence)
}

// Imputed reports whether the genotype was inferred rather than measured.
func (v Variant) Imputed() bool {
	return v.Source != SourceDirect
}

// Store is the immutable, merged view of all genotype calls for one person.
type Store struct {
	variants map[string]Variant
}

// Merge combines imputed and directly genotyped calls. When both provide the
// same ID, the direct call wins. Neither input is modified.
func Merge(imputed, direct map[string]Variant) *Store {
	s := &Store{variants: make(map[string]Variant, len(imputed)+len(direct))}
	for id, v := range imputed {
		s.variants[id] = v
	}
	for id, v := range direct {
		s.variants[id] = v
	}
	return s
}

// MergeImputed folds several imputed sources into one map. Later sources
// overwrite earlier ones.
func MergeImputed(sources ...map[string]Variant) map[string]Variant {
	out := make(map[string]Variant)
	for _, src := range sources {
		for id, v := range src {
			out[id] = v
		}
	}
	return out
}

func (s *Store) Get(id string) (Variant, bool) {
	v, exists := s.variants[id]
	return v, exists
}

func (s *Store) Len() int {
	return len(s.variants)
}

// Counts returns the number of calls per source.
func (s *Store) Counts() map[Source]int {
	out := make(map[Source]int)
	for _, v := range s.variants {
		out[v.Source]++
	}
	return out
}
