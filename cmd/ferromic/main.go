// Package main provides the ferromic command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("ferromic version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initViper()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "stats":
		return runStats(args[1:])
	case "batch":
		return runBatch(args[1:])
	case "config":
		cmd := newConfigCmd()
		cmd.SetArgs(args[1:])
		if err := cmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initViper wires the optional ~/.ferromic.yaml config file and
// FERROMIC_* environment variables into the defaults the subcommands
// read.
func initViper() {
	viper.SetConfigName(".ferromic")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigFile(filepath.Join(home, ".ferromic.yaml"))
	}
	viper.SetEnvPrefix("ferromic")
	viper.AutomaticEnv()
	viper.SetDefault("workers", 0)
	viper.SetDefault("batch.output", "output.csv")
	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// newLogger builds the console logger the subcommands hand to library
// components.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ferromic - VCF diversity statistics

Usage:
  ferromic [options] <command> [arguments]

Commands:
  stats       Compute diversity statistics for one chromosome/region
  batch       Compute grouped statistics for every region in a config table
  config      Manage ferromic configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Whole-chromosome statistics
  ferromic stats --vcf-folder data/ --chr 2

  # A specific region
  ferromic stats --vcf-folder data/ --chr 2 --region 100000-200000

  # Batch mode with haplotype groups
  ferromic batch --vcf-folder data/ --config-file regions.tsv --output-file out.csv

For more information on a command, use:
  ferromic <command> --help
`)
}
