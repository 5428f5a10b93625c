package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carbocation/grs"
	"github.com/carbocation/grs/prsparser"
)

const (
	PanelBiobank   = "biobank"
	PanelFiveTypes = "5types"
)

// FiveTypes lists the subtype panels in the order they are reported.
var FiveTypes = []string{"said", "sidd", "sird", "mod", "mard"}

// Config holds the command line options after defaults have been resolved.
type Config struct {
	Genome string
	Panel  string

	PanelFile string
	PanelDir  string
	Exclude   []string

	Imputed     string
	ImputedBGEN string
	ImputedBGI  string
	ImputedVCF  string
	Sample      int

	Dist string
}

// PanelSource is one panel file to load, with its layout.
type PanelSource struct {
	Path   string
	Layout prsparser.Layout
}

// Resolve fills in the per-panel defaults and expands ~/ in every path.
func (c *Config) Resolve(excludeSet bool) error {
	switch c.Panel {
	case PanelBiobank:
		if c.PanelFile == "" {
			c.PanelFile = filepath.Join("analyses", "grs-biobank.csv")
		}
		if c.Imputed == "" {
			c.Imputed = "imputed-snps-biobank.gen"
		}
		if !excludeSet {
			// Out of Hardy-Weinberg equilibrium in the biobank cohort
			c.Exclude = []string{"rs4948088"}
		}
	case PanelFiveTypes:
		if c.Imputed == "" {
			c.Imputed = "imputed-snps-5-types.gen"
		}
	default:
		return fmt.Errorf("unknown panel %q; choose %s or %s", c.Panel, PanelBiobank, PanelFiveTypes)
	}

	var err error
	for _, p := range []*string{&c.Genome, &c.PanelFile, &c.PanelDir, &c.Imputed, &c.ImputedBGEN, &c.ImputedBGI, &c.ImputedVCF, &c.Dist} {
		if *p, err = grs.ExpandHome(*p); err != nil {
			return err
		}
	}

	return nil
}

// Panels lists the panel files to score, in report order.
func (c *Config) Panels() []PanelSource {
	if c.Panel == PanelBiobank {
		return []PanelSource{{Path: c.PanelFile, Layout: prsparser.Layouts["BIOBANK"]}}
	}

	out := make([]PanelSource, 0, len(FiveTypes))
	for _, subtype := range FiveTypes {
		name := fmt.Sprintf("grs-5types-%s.csv", subtype)
		path := name
		if c.PanelDir != "" {
			path = joinPath(c.PanelDir, name)
		}
		out = append(out, PanelSource{Path: path, Layout: prsparser.Layouts["FIVETYPES"]})
	}

	return out
}

// Paths returns every file the run may read, for deciding whether a storage
// client is needed.
func (c *Config) Paths() []string {
	out := []string{c.Genome, c.Imputed, c.ImputedBGEN, c.ImputedBGI, c.ImputedVCF, c.Dist}
	for _, p := range c.Panels() {
		out = append(out, p.Path)
	}

	return out
}

func joinPath(dir, name string) string {
	if strings.HasPrefix(dir, "gs://") {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}
	return filepath.Join(dir, name)
}

func splitList(s string) []string {
	out := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
