package genotype

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/grs"
)

func TestCountAlleles(t *testing.T) {
	tests := []struct {
		genotype, effect, nonEffect string
		ac, nac                     int
	}{
		{"AG", "A", "G", 1, 1},
		{"GG", "A", "G", 0, 2},
		{"AA", "A", "G", 2, 0},
		{"TT", "A", "G", 2, 0}, // Opposite strand
		{"TC", "A", "G", 1, 1},
		{"CC", "A", "G", 0, 2},
		{"--", "A", "G", 0, 0}, // No-call
		{"AG", "A", "", 1, 1},
		{"GG", "A", "", 0, 2},
		{"TT", "A", "", 0, 2}, // No strand fallback without a non-effect allele
		{"ag", "A", "G", 1, 1}, // Upper-cased by the fallback
	}

	for _, tt := range tests {
		ac, nac := CountAlleles(tt.genotype, tt.effect, tt.nonEffect)
		if ac != tt.ac || nac != tt.nac {
			t.Errorf("CountAlleles(%q, %q, %q) = (%d, %d), want (%d, %d)", tt.genotype, tt.effect, tt.nonEffect, ac, nac, tt.ac, tt.nac)
		}
	}
}

func TestCountAllelesSumsToTwo(t *testing.T) {
	bases := []string{"A", "C", "G", "T"}

	for _, e := range bases {
		for _, n := range bases {
			if e == n || Complement(e) == n {
				// Identical or strand-ambiguous pairs cannot be resolved
				continue
			}

			for _, strand := range [][2]string{{e, n}, {Complement(e), Complement(n)}} {
				for _, a := range strand {
					for _, b := range strand {
						ac, nac := CountAlleles(a+b, e, n)
						if ac+nac != 2 {
							t.Errorf("CountAlleles(%q, %q, %q) = (%d, %d), which does not sum to 2", a+b, e, n, ac, nac)
						}
					}
				}
			}
		}
	}
}

func TestComplement(t *testing.T) {
	tests := map[string]string{
		"AG": "TC",
		"CT": "GA",
		"--": "--",
		"ag": "AG",
		"DI": "DI",
	}

	for in, want := range tests {
		if got := Complement(in); got != want {
			t.Errorf("Complement(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPickGenotype(t *testing.T) {
	tests := []struct {
		probs [3]float64
		which int
		prob  float64
	}{
		{[3]float64{0.1, 0.1, 0.8}, 2, 0.8},
		{[3]float64{0.5, 0.5, 0}, 0, 0.5},
		{[3]float64{0, 0.5, 0.5}, 1, 0.5},
		{[3]float64{0, 0, 0}, 0, 0},
	}

	for _, tt := range tests {
		which, prob := PickGenotype(tt.probs)
		if which != tt.which || prob != tt.prob {
			t.Errorf("PickGenotype(%v) = (%d, %v), want (%d, %v)", tt.probs, which, prob, tt.which, tt.prob)
		}
	}
}

func TestLoadDirect(t *testing.T) {
	data := `# rsid	chromosome	position	genotype
rs1	1	100	AG

rs2	6	200	--
rs3	X	300	A
`

	out, err := LoadDirect(strings.NewReader(data), "test")
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(out))
	}

	v := out["rs1"]
	if v.Genotype != "AG" || v.Chromosome != "1" || v.Position != 100 || v.Confidence != 1 || v.Imputed() {
		t.Errorf("Unexpected rs1: %+v", v)
	}

	if out["rs2"].Genotype != "--" {
		t.Errorf("Expected no-call to be kept, got %q", out["rs2"].Genotype)
	}
}

func TestLoadDirectShortLine(t *testing.T) {
	data := "rs1\t1\t100\tAG\nrs2\t1\t200\n"

	_, err := LoadDirect(strings.NewReader(data), "test")

	var pe *grs.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected a ParseError, got %v", err)
	}
	if pe.Line != 2 || pe.Fields != 3 {
		t.Errorf("Expected line 2 with 3 fields, got line %d with %d fields", pe.Line, pe.Fields)
	}
}

func TestLoadDirectFileMissing(t *testing.T) {
	_, err := LoadDirectFile(filepath.Join(t.TempDir(), "nope.txt"), nil)
	if !errors.Is(err, grs.ErrMissingRequiredFile) {
		t.Errorf("Expected ErrMissingRequiredFile, got %v", err)
	}
}

func TestLoadImputed(t *testing.T) {
	data := `--- rs1 100 A G 0.1 0.1 0.8
--- rs2 200 C T 0.5 0.5 0
--- rs3 300 A C 0.05 0.9 0.05
`

	out, err := LoadImputed(strings.NewReader(data), "test")
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"rs1": "GG", "rs2": "CC", "rs3": "AC"}
	for id, g := range want {
		v, ok := out[id]
		if !ok {
			t.Errorf("%s missing", id)
			continue
		}
		if v.Genotype != g {
			t.Errorf("%s: got %s, want %s", id, v.Genotype, g)
		}
		if !v.Imputed() {
			t.Errorf("%s should be imputed", id)
		}
	}

	if out["rs1"].Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %v", out["rs1"].Confidence)
	}
}

func TestLoadImputedBadRow(t *testing.T) {
	tests := []string{
		"--- rs1 100 A G 0.1 0.1\n",
		"--- rs1 100 A G 0.1 x 0.8\n",
	}

	for _, data := range tests {
		_, err := LoadImputed(strings.NewReader(data), "test")
		var pe *grs.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected a ParseError, got %v", data, err)
		}
	}
}

func TestLoadImputedFileMissing(t *testing.T) {
	out, err := LoadImputedFile(filepath.Join(t.TempDir(), "nope.gen"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no variants, got %d", len(out))
	}
}

func TestLoadImputedBGENMissing(t *testing.T) {
	out, err := LoadImputedBGEN(filepath.Join(t.TempDir(), "nope.bgen"), "", 0, []string{"rs1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no variants, got %d", len(out))
	}
}

func TestLoadImputedVCF(t *testing.T) {
	lines := []string{
		"##fileformat=VCFv4.2",
		`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`,
		`##FORMAT=<ID=GP,Number=3,Type=Float,Description="Genotype probabilities">`,
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1",
		"6\t100\trs1\tA\tG\t50\tPASS\t.\tGT:GP\t0/1:0.1,0.7,0.2",
		"6\t200\trs2\tC\tT\t50\tPASS\t.\tGT\t1/1",
		"6\t300\trs3\tC\tT,G\t50\tPASS\t.\tGT\t1/2",
	}

	out, err := LoadImputedVCF(strings.NewReader(strings.Join(lines, "\n")+"\n"), "test", 0)
	if err != nil {
		t.Fatal(err)
	}

	if v := out["rs1"]; v.Genotype != "AG" || v.Confidence != 0.7 || v.Source != SourceVCF {
		t.Errorf("Unexpected rs1: %+v", v)
	}
	if v := out["rs2"]; v.Genotype != "TT" || v.Confidence != 1 {
		t.Errorf("Unexpected rs2: %+v", v)
	}
	if _, ok := out["rs3"]; ok {
		t.Errorf("Multiallelic rs3 should have been skipped")
	}
}

func TestMerge(t *testing.T) {
	imputed := map[string]Variant{
		"rs1": {ID: "rs1", Genotype: "AA", Confidence: 0.9, Source: SourceGen},
		"rs2": {ID: "rs2", Genotype: "CT", Confidence: 0.6, Source: SourceGen},
	}
	direct := map[string]Variant{
		"rs1": {ID: "rs1", Genotype: "AG", Confidence: 1, Source: SourceDirect},
		"rs3": {ID: "rs3", Genotype: "TT", Confidence: 1, Source: SourceDirect},
	}

	s := Merge(imputed, direct)

	if s.Len() != 3 {
		t.Errorf("Expected 3 variants, got %d", s.Len())
	}

	if v, _ := s.Get("rs1"); v.Genotype != "AG" || v.Imputed() {
		t.Errorf("Direct call should win for rs1, got %+v", v)
	}
	if v, ok := s.Get("rs2"); !ok || v.Genotype != "CT" {
		t.Errorf("Imputed rs2 should be kept, got %+v", v)
	}
	if _, ok := s.Get("rs4"); ok {
		t.Errorf("rs4 should not exist")
	}

	counts := s.Counts()
	if counts[SourceDirect] != 2 || counts[SourceGen] != 1 {
		t.Errorf("Unexpected counts %v", counts)
	}

	if imputed["rs1"].Genotype != "AA" {
		t.Errorf("Merge modified its input")
	}
}

func TestLocalCopyLocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bgi")

	got, cleanup, err := LocalCopy(path, nil)
	defer cleanup()
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("Expected %s unchanged, got %s", path, got)
	}
}
