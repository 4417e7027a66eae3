package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/spf13/viper"

	"github.com/ScottSauers/ferromic/internal/popgen"
	"github.com/ScottSauers/ferromic/internal/vcf"
)

func runStats(args []string) int {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	var (
		vcfFolder string
		chrom     string
		region    string
		workers   int
		verbose   bool
	)

	fs.StringVar(&vcfFolder, "vcf-folder", "", "Folder holding per-chromosome VCF files")
	fs.StringVar(&chrom, "chr", "", "Chromosome to process")
	fs.StringVar(&region, "region", "", "Region filter as start-end (default: whole chromosome)")
	fs.IntVar(&workers, "workers", viper.GetInt("workers"), "Parser worker count (0 = all CPUs)")
	fs.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute diversity statistics (segregating sites, Watterson's theta, pi)
for one chromosome or region.

Usage:
  ferromic stats [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ferromic stats --vcf-folder data/ --chr 2
  ferromic stats --vcf-folder data/ --chr 2 --region 100000-200000
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if vcfFolder == "" || chrom == "" {
		fmt.Fprintf(os.Stderr, "Error: --vcf-folder and --chr are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	filter := vcf.WholeChromosome()
	if region != "" {
		filter, err = vcf.ParseRegion(region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	path, err := vcf.FindVCFFile(vcfFolder, chrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Printf("Processing VCF file: %s\n", path)

	proc := vcf.NewProcessor(workers, logger)
	data, err := proc.ProcessVCF(path, chrom, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	n := len(data.SampleNames)
	if n <= 1 {
		fmt.Fprintf(os.Stderr, "Error: need at least 2 samples for diversity statistics, found %d\n", n)
		return ExitError
	}

	seqLength, reliable := data.EstimateSequenceLength(filter)
	if !filter.Bounded() && !reliable {
		fmt.Println("Warning: the sequence length may be underestimated. Consider using --region for accurate results.")
	}

	segSites := popgen.SegregatingSites(data.Variants)
	rawCount := len(data.Variants)

	pairs := popgen.PairwiseDifferences(data.Variants, n)
	totalDiff := popgen.TotalPairwiseDifferences(pairs)

	theta, err := popgen.WattersonTheta(segSites, n, seqLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	pi, err := popgen.Pi(totalDiff, n, seqLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Println("\nResults:")
	printExamplePairs(pairs, data.SampleNames)

	fmt.Printf("\nSequence Length: %d\n", seqLength)
	fmt.Printf("Number of Segregating Sites: %d\n", segSites)
	fmt.Printf("Raw Variant Count: %d\n", rawCount)
	fmt.Printf("Watterson Theta: %.6f\n", theta)
	fmt.Printf("pi: %.6f\n", pi)

	if rawCount == 0 {
		fmt.Println("Warning: no variants found in the specified region.")
	}
	if segSites == 0 {
		fmt.Println("Warning: all sites are monomorphic.")
	}
	if segSites != rawCount {
		fmt.Printf("Note: number of segregating sites (%d) differs from raw variant count (%d).\n", segSites, rawCount)
	}

	fmt.Println("\nMissing Data Information:")
	fmt.Printf("Number of missing data points: %d\n", data.Missing.MissingDataPoints)
	fmt.Printf("Percentage of missing data: %.2f%%\n", data.Missing.Percent())
	fmt.Printf("Positions with missing data: %v\n", sortedPositions(data.Missing.PositionsWithMissing))

	return ExitSuccess
}

// printExamplePairs samples up to 5 pairs and 5 differing positions
// each, to give a feel for where the diversity sits.
func printExamplePairs(pairs []popgen.PairDiff, sampleNames []string) {
	fmt.Println("Example pairwise nucleotide substitutions from this run:")
	perm := rand.Perm(len(pairs))
	shown := 5
	if shown > len(pairs) {
		shown = len(pairs)
	}
	for _, k := range perm[:shown] {
		p := pairs[k]
		limit := 5
		if limit > len(p.Positions) {
			limit = len(p.Positions)
		}
		fmt.Printf("%s\t%s\t%d\t%v\n", sampleNames[p.I], sampleNames[p.J], p.Count, p.Positions[:limit])
	}
}

func sortedPositions(set map[int64]struct{}) []int64 {
	positions := make([]int64, 0, len(set))
	for pos := range set {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	return positions
}
