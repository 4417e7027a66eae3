package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ScottSauers/ferromic/internal/batch"
	"github.com/ScottSauers/ferromic/internal/config"
	"github.com/ScottSauers/ferromic/internal/duckdb"
	"github.com/ScottSauers/ferromic/internal/output"
	"github.com/ScottSauers/ferromic/internal/vcf"
)

func runBatch(args []string) int {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)

	var (
		vcfFolder  string
		configFile string
		outputFile string
		duckdbPath string
		workers    int
		verbose    bool
	)

	fs.StringVar(&vcfFolder, "vcf-folder", "", "Folder holding per-chromosome VCF files")
	fs.StringVar(&configFile, "config-file", "", "Tab-delimited region/haplotype-group table")
	fs.StringVar(&outputFile, "output-file", viper.GetString("batch.output"), "CSV output file")
	fs.StringVar(&duckdbPath, "duckdb", viper.GetString("batch.duckdb"), "Also append results to a DuckDB database at this path")
	fs.IntVar(&workers, "workers", viper.GetInt("workers"), "Parser worker count (0 = all CPUs)")
	fs.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute haplotype-group diversity statistics for every region in a
configuration table. Each row yields paired group-0/group-1 results.

Usage:
  ferromic batch [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ferromic batch --vcf-folder data/ --config-file regions.tsv
  ferromic batch --vcf-folder data/ --config-file regions.tsv --duckdb results.duckdb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if vcfFolder == "" || configFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --vcf-folder and --config-file are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	entries, err := config.Load(configFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no usable entries in %s\n", configFile)
		return ExitError
	}

	out, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		return ExitError
	}
	defer out.Close()

	csvSink := output.NewCSVWriter(out)
	if err := csvSink.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	proc := vcf.NewProcessor(workers, logger)
	orch := batch.New(vcfFolder, proc, logger)

	sinks := []batch.ResultSink{csvSink}
	if duckdbPath != "" {
		store, err := duckdb.Open(duckdbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening DuckDB store: %v\n", err)
			return ExitError
		}
		defer store.Close()
		sinks = append(sinks, duckdb.NewResultSink(store, orch.RunID().String()))
	}

	if err := orch.Run(entries, sinks...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if err := csvSink.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	fmt.Printf("Processing complete. Check the output file: %s\n", outputFile)
	return ExitSuccess
}
