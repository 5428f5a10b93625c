package main

import (
	"reflect"
	"testing"
)

func TestResolveBiobank(t *testing.T) {
	cfg := Config{Genome: "genome.txt", Panel: PanelBiobank}
	if err := cfg.Resolve(false); err != nil {
		t.Fatal(err)
	}

	if cfg.PanelFile != "analyses/grs-biobank.csv" {
		t.Errorf("PanelFile: got %q", cfg.PanelFile)
	}
	if cfg.Imputed != "imputed-snps-biobank.gen" {
		t.Errorf("Imputed: got %q", cfg.Imputed)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"rs4948088"}) {
		t.Errorf("Exclude: got %v", cfg.Exclude)
	}

	panels := cfg.Panels()
	if len(panels) != 1 || panels[0].Layout.ColOddsRatio != -1 {
		t.Errorf("Unexpected panels %+v", panels)
	}
}

func TestResolveExplicitExclude(t *testing.T) {
	cfg := Config{Genome: "genome.txt", Panel: PanelBiobank, Exclude: splitList("")}
	if err := cfg.Resolve(true); err != nil {
		t.Fatal(err)
	}

	if len(cfg.Exclude) != 0 {
		t.Errorf("An explicitly empty -exclude should keep every SNP, got %v", cfg.Exclude)
	}
}

func TestResolveFiveTypes(t *testing.T) {
	cfg := Config{Genome: "genome.txt", Panel: PanelFiveTypes, PanelDir: "gs://bucket/panels/"}
	if err := cfg.Resolve(false); err != nil {
		t.Fatal(err)
	}

	if cfg.Imputed != "imputed-snps-5-types.gen" || len(cfg.Exclude) != 0 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}

	panels := cfg.Panels()
	if len(panels) != 5 {
		t.Fatalf("Expected 5 panels, got %d", len(panels))
	}
	if panels[0].Path != "gs://bucket/panels/grs-5types-said.csv" || panels[4].Path != "gs://bucket/panels/grs-5types-mard.csv" {
		t.Errorf("Unexpected paths %s, %s", panels[0].Path, panels[4].Path)
	}
}

func TestResolveUnknownPanel(t *testing.T) {
	cfg := Config{Genome: "genome.txt", Panel: "t2d"}
	if err := cfg.Resolve(false); err == nil {
		t.Error("Expected an error for an unknown panel")
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(" rs1, ,rs2 "); !reflect.DeepEqual(got, []string{"rs1", "rs2"}) {
		t.Errorf("Got %v", got)
	}
}
