// t1dgrs computes a type 1 diabetes genetic risk score from a 23andMe-style
// raw genotype file, filling gaps with imputed genotypes when available.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/grs"
	"github.com/carbocation/grs/compileinfo"
	"github.com/carbocation/grs/distribution"
	"github.com/carbocation/grs/genotype"
	"github.com/carbocation/grs/hla"
	"github.com/carbocation/grs/prsparser"
	"github.com/carbocation/grs/score"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

var client *storage.Client

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <genotype-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	var (
		cfg     Config
		exclude string
		version bool
	)

	flag.StringVar(&cfg.Panel, "panel", PanelBiobank, fmt.Sprintf("Which score to compute: %s (linear, with HLA) or %s (log-odds for SAID, SIDD, SIRD, MOD and MARD)", PanelBiobank, PanelFiveTypes))
	flag.StringVar(&cfg.PanelFile, "panel-file", "", "Path to the biobank panel. Defaults to analyses/grs-biobank.csv")
	flag.StringVar(&cfg.PanelDir, "panel-dir", "", "Folder holding the grs-5types-*.csv panels. Defaults to the working directory")
	flag.StringVar(&exclude, "exclude", "", "Comma-delimited SNPs to drop from the panel. Defaults to rs4948088 for the biobank panel")
	flag.StringVar(&cfg.Imputed, "imputed", "", "(Optional) Imputed genotypes in .gen format. Defaults to imputed-snps-biobank.gen or imputed-snps-5-types.gen")
	flag.StringVar(&cfg.ImputedBGEN, "imputed-bgen", "", "(Optional) Imputed genotypes in BGEN format. Must be indexed")
	flag.StringVar(&cfg.ImputedBGI, "imputed-bgi", "", "(Optional) BGEN index. Defaults to the -imputed-bgen path with .bgi appended")
	flag.StringVar(&cfg.ImputedVCF, "imputed-vcf", "", "(Optional) Imputed genotypes in VCF format, ideally with a GP field")
	flag.IntVar(&cfg.Sample, "sample", 0, "0-based index of the sample to read from the BGEN or VCF")
	flag.StringVar(&cfg.Dist, "dist", "", "(Optional) Distribution table (value,t2dPixel,t1dPixel) for reporting percentiles of the biobank score")
	flag.BoolVar(&version, "version", false, "Print build information and exit")
	flag.Parse()

	if version {
		compileinfo.Fprint(os.Stdout)
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	cfg.Genome = flag.Arg(0)

	excludeSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "exclude" {
			excludeSet = true
		}
	})
	cfg.Exclude = splitList(exclude)

	if err := cfg.Resolve(excludeSet); err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	err := run(&cfg)
	STDOUT.Flush()

	if err != nil {
		reportError(os.Stdout, err)
		os.Exit(1)
	}
}

// reportError writes err once: incomplete data is a result the user acts on,
// so it goes to w, and anything else goes to the log.
func reportError(w io.Writer, err error) {
	var incomplete *grs.IncompleteDataError
	if errors.As(err, &incomplete) {
		fmt.Fprintln(w, incomplete.Error())
		return
	}

	log.Println(err)
}

func run(cfg *Config) error {
	if grs.NeedsStorageClient(cfg.Paths()...) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			return err
		}
		defer client.Close()
	}

	// Panels first, so that a bad panel fails before any genotypes are read
	panels := make([]*prsparser.Panel, 0, len(cfg.Panels()))
	for _, src := range cfg.Panels() {
		panel, err := prsparser.Load(src.Path, src.Layout, true, cfg.Exclude, client)
		if err != nil {
			return err
		}
		panels = append(panels, panel)
	}

	store, err := loadGenotypes(cfg, panels)
	if err != nil {
		return err
	}

	if cfg.Panel == PanelBiobank {
		return scoreBiobank(cfg, store, panels[0])
	}

	for _, panel := range panels {
		res, err := score.LogOdds(store, panel)
		if err != nil {
			return err
		}
		score.FprintLogOdds(STDOUT, panel.Name, res)
	}

	return nil
}

func loadGenotypes(cfg *Config, panels []*prsparser.Panel) (*genotype.Store, error) {
	gen, err := genotype.LoadImputedFile(cfg.Imputed, client)
	if err != nil {
		return nil, err
	}

	// Only the SNPs that will be scored are read from the BGEN
	ids := append([]string{}, hla.Markers...)
	for _, panel := range panels {
		ids = append(ids, panel.IDs()...)
	}
	bgen, err := genotype.LoadImputedBGEN(cfg.ImputedBGEN, cfg.ImputedBGI, cfg.Sample, ids, client)
	if err != nil {
		return nil, err
	}

	vcf, err := genotype.LoadImputedVCFFile(cfg.ImputedVCF, client, cfg.Sample)
	if err != nil {
		return nil, err
	}

	direct, err := genotype.LoadDirectFile(cfg.Genome, client)
	if err != nil {
		return nil, err
	}

	store := genotype.Merge(genotype.MergeImputed(gen, bgen, vcf), direct)

	counts := store.Counts()
	log.Printf("%d variants in total: %d direct, %d imputed (.gen %d, BGEN %d, VCF %d)\n",
		store.Len(), counts[genotype.SourceDirect], store.Len()-counts[genotype.SourceDirect],
		counts[genotype.SourceGen], counts[genotype.SourceBGEN], counts[genotype.SourceVCF])

	return store, nil
}

func scoreBiobank(cfg *Config, store *genotype.Store, panel *prsparser.Panel) error {
	res, err := score.Linear(store, panel, true)
	if err != nil {
		return err
	}
	score.FprintLinear(STDOUT, res)

	if cfg.Dist == "" {
		return nil
	}

	dist, err := distribution.Load(cfg.Dist, client)
	if err != nil {
		return err
	}
	dist.Fprint(STDOUT, res.GRS)

	return nil
}
