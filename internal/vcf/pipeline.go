package vcf

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// channelCapacity bounds both pipeline queues so that file I/O can run
// ahead of parsing without unbounded memory growth. The producer
// blocks when parsing falls behind.
const channelCapacity = 1000

// ChromosomeData is the outcome of ingesting one chromosome's VCF
// file: the variant set sorted by position, the sample names from the
// header, the contig length announced in the header metadata (0 when
// absent), and the aggregated missing-data accounting.
type ChromosomeData struct {
	Variants     []Variant
	SampleNames  []string
	ContigLength int64
	Missing      MissingDataInfo
}

// MaxPos returns the largest variant position observed, or 0 for an
// empty set. Variants are sorted by position on ingestion, so this is
// the last entry.
func (c *ChromosomeData) MaxPos() int64 {
	if len(c.Variants) == 0 {
		return 0
	}
	return c.Variants[len(c.Variants)-1].Pos
}

// EstimateSequenceLength returns the sequence length for a region. For
// a bounded region it is the region span. Otherwise it is estimated
// from the larger of the announced contig length and the maximum
// variant position; reliable reports false when no contig length was
// announced, meaning the estimate may be too small.
func (c *ChromosomeData) EstimateSequenceLength(region Region) (length int64, reliable bool) {
	if region.Bounded() {
		return region.Length(), true
	}
	end := c.ContigLength
	if mp := c.MaxPos(); mp > end {
		end = mp
	}
	return end - region.Start + 1, c.ContigLength > 0
}

// WindowVariants returns the variants falling inside the region.
// Relies on the position ordering established by ingestion.
func (c *ChromosomeData) WindowVariants(region Region) []Variant {
	lo := sort.Search(len(c.Variants), func(i int) bool {
		return c.Variants[i].Pos >= region.Start
	})
	hi := sort.Search(len(c.Variants), func(i int) bool {
		return c.Variants[i].Pos > region.End
	})
	return c.Variants[lo:hi]
}

// Processor ingests VCF files with a parallel parsing pipeline.
type Processor struct {
	workers int
	logger  *zap.Logger
}

// NewProcessor creates a Processor. workers <= 0 selects
// runtime.NumCPU().
func NewProcessor(workers int, logger *zap.Logger) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{workers: workers, logger: logger}
}

// rawLine is a data line tagged with its 1-based line number.
type rawLine struct {
	num  int
	text string
}

// parseResult carries one worker's outcome for one line: a variant (or
// nil for filtered lines), the line's missing-data delta, or an error.
type parseResult struct {
	variant *Variant
	missing MissingDataInfo
	err     error
}

// ProcessVCF reads one chromosome's variant file and builds its
// ChromosomeData. The header is read synchronously; data lines then
// flow through a producer goroutine, a pool of parser workers and a
// single collector, joined over two bounded channels. A single
// malformed line aborts the whole ingestion; already-queued lines
// still drain before the error is returned.
func (p *Processor) ProcessVCF(path, chrom string, region Region) (*ChromosomeData, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := &ChromosomeData{}

	// Header phase, single-threaded: meta lines feed the contig
	// length, the #CHROM line yields sample names and hands the
	// stream over to the parallel phase.
	lineNum := 0
	for {
		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, fmt.Errorf("read vcf header: %w", rerr)
		}
		if line == "" && rerr == io.EOF {
			return nil, &FormatError{Message: "no #CHROM header line found"}
		}
		lineNum++
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			if l := parseContigLength(line, chrom); l > 0 {
				data.ContigLength = l
			}
			if rerr == io.EOF {
				return nil, &FormatError{Message: "no #CHROM header line found"}
			}
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			data.SampleNames, err = ValidateHeader(line)
			if err != nil {
				return nil, err
			}
			break
		}
		return nil, &FormatError{Message: fmt.Sprintf("unexpected line %d before #CHROM header", lineNum)}
	}
	if len(data.SampleNames) == 0 {
		return nil, &FormatError{Message: "no sample columns in #CHROM header"}
	}

	lines := make(chan rawLine, channelCapacity)
	results := make(chan parseResult, channelCapacity)

	var g errgroup.Group

	// Producer: reads raw lines and applies backpressure by blocking
	// on the bounded channel.
	g.Go(func() error {
		defer close(lines)
		for {
			line, rerr := r.ReadString('\n')
			if line != "" {
				lineNum++
				if text := strings.TrimRight(line, "\r\n"); text != "" {
					lines <- rawLine{num: lineNum, text: text}
				}
			}
			if rerr == io.EOF {
				return nil
			}
			if rerr != nil {
				return fmt.Errorf("read vcf line: %w", rerr)
			}
		}
	})

	// Worker pool: each worker parses independently, accumulating a
	// local missing-data delta per line so no state is shared until
	// the collector merges.
	workerDone := make(chan struct{})
	sampleCount := len(data.SampleNames)
	for range p.workers {
		g.Go(func() error {
			defer func() { workerDone <- struct{}{} }()
			for item := range lines {
				var delta MissingDataInfo
				variant, multi, perr := ParseVariantLine(item.text, chrom, region, sampleCount, &delta)
				if perr != nil {
					var parseErr *ParseError
					if errors.As(perr, &parseErr) {
						parseErr.Line = item.num
					}
					results <- parseResult{err: perr}
					continue
				}
				if variant == nil {
					continue
				}
				if multi {
					p.logger.Warn("multi-allelic site detected, only the first allele axis is modeled",
						zap.String("chrom", chrom),
						zap.Int64("pos", variant.Pos))
				}
				results <- parseResult{variant: variant, missing: delta}
			}
			return nil
		})
	}

	// Close the result channel once every worker has exited its
	// receive loop.
	go func() {
		for range p.workers {
			<-workerDone
		}
		close(results)
	}()

	// Collector: the only writer of the variant buffer and the
	// aggregate accumulator. The first error wins, but the channel is
	// drained fully so no worker blocks on send.
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		data.Variants = append(data.Variants, *res.variant)
		data.Missing.Merge(&res.missing)
	}

	if err := g.Wait(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// Workers race to append, so restore position order before any
	// order-sensitive consumer sees the buffer.
	sort.Slice(data.Variants, func(i, j int) bool {
		return data.Variants[i].Pos < data.Variants[j].Pos
	})

	p.logger.Debug("vcf ingestion complete",
		zap.String("path", path),
		zap.String("chrom", chrom),
		zap.Int("variants", len(data.Variants)),
		zap.Int("samples", sampleCount),
		zap.Int("missing_points", data.Missing.MissingDataPoints))

	return data, nil
}
