// Package batch drives diversity computation across the entries of a
// configuration table, caching ingested chromosomes between entries.
package batch

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ScottSauers/ferromic/internal/config"
	"github.com/ScottSauers/ferromic/internal/popgen"
	"github.com/ScottSauers/ferromic/internal/vcf"
)

// ResultSink accepts one completed output row at a time: the paired
// group-0 and group-1 statistics for a configuration entry.
type ResultSink interface {
	WriteRow(group0, group1 *popgen.RegionStats) error
}

// Orchestrator processes configuration entries sequentially. Each
// chromosome's VCF file is ingested once over its full range and
// reused for every entry referencing it; the cache is owned by one
// goroutine and needs no synchronization.
type Orchestrator struct {
	folder string
	proc   *vcf.Processor
	logger *zap.Logger
	runID  uuid.UUID
	cache  map[string]*vcf.ChromosomeData
}

// New creates an Orchestrator reading VCF files from folder.
func New(folder string, proc *vcf.Processor, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New()
	return &Orchestrator{
		folder: folder,
		proc:   proc,
		logger: logger.With(zap.String("run_id", runID.String())),
		runID:  runID,
	}
}

// RunID returns the identifier tagged onto this run's output.
func (o *Orchestrator) RunID() uuid.UUID {
	return o.runID
}

// Run processes every entry and writes one row per entry to each sink.
// Failures are local to an entry: a missing file, a failed ingestion
// or a failed group computation skips that entry and the batch
// continues. An entry yields a row only when both groups succeed.
func (o *Orchestrator) Run(entries []config.Entry, sinks ...ResultSink) error {
	for i, entry := range entries {
		o.logger.Info("processing entry",
			zap.Int("index", i+1),
			zap.Int("total", len(entries)),
			zap.String("seqname", entry.Seqname),
			zap.Int64("start", entry.Start),
			zap.Int64("end", entry.End))

		data, err := o.chromosomeData(entry.Seqname)
		if err != nil {
			o.logger.Warn("skipping entry, chromosome unavailable",
				zap.String("seqname", entry.Seqname),
				zap.Error(err))
			continue
		}

		region := vcf.Region{Start: entry.Start, End: entry.End}
		window := data.WindowVariants(region)

		var groupStats [2]*popgen.RegionStats
		ok := true
		for group := uint8(0); group <= 1; group++ {
			stats, err := popgen.FilterHaplotypeGroup(window, data.SampleNames, group, entry.Samples, region, o.logger)
			if err != nil {
				o.logger.Warn("skipping entry, group computation failed",
					zap.String("seqname", entry.Seqname),
					zap.Int64("start", entry.Start),
					zap.Int64("end", entry.End),
					zap.Uint8("group", group),
					zap.Error(err))
				ok = false
				break
			}
			stats.Chrom = entry.Seqname
			groupStats[group] = stats
		}
		if !ok {
			continue
		}

		for _, sink := range sinks {
			if err := sink.WriteRow(groupStats[0], groupStats[1]); err != nil {
				o.logger.Error("writing result row failed",
					zap.String("seqname", entry.Seqname),
					zap.Error(err))
			}
		}
	}
	return nil
}

// chromosomeData returns the cached variant set for a chromosome,
// ingesting its file over the whole chromosome range on first use.
func (o *Orchestrator) chromosomeData(chrom string) (*vcf.ChromosomeData, error) {
	if o.cache == nil {
		o.cache = make(map[string]*vcf.ChromosomeData)
	}
	if data, ok := o.cache[chrom]; ok {
		return data, nil
	}

	path, err := vcf.FindVCFFile(o.folder, chrom)
	if err != nil {
		return nil, err
	}
	data, err := o.proc.ProcessVCF(path, chrom, vcf.WholeChromosome())
	if err != nil {
		return nil, err
	}
	o.cache[chrom] = data
	return data, nil
}
