// Package vcf provides VCF file parsing and the concurrent ingestion
// pipeline that builds per-chromosome variant sets.
package vcf

import "strings"

// Genotype holds the allele codes called for one sample at one site,
// in call order. A nil Genotype means the call is missing.
type Genotype []uint8

// Equal reports whether two genotypes carry the same alleles in the
// same order. [0 1] and [1 0] are different genotypes.
func (g Genotype) Equal(other Genotype) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// Variant represents a single variant site with one genotype slot per
// sample. Genotypes has exactly one entry per sample column of the
// file it was parsed from.
type Variant struct {
	Pos       int64 // 1-based genomic position
	Genotypes []Genotype
}

// MissingDataInfo accumulates missing-genotype accounting. Counters
// only ever grow; a zero value is ready to use.
type MissingDataInfo struct {
	TotalDataPoints      int
	MissingDataPoints    int
	PositionsWithMissing map[int64]struct{}
}

// RecordMissing counts one missing slot at the given position.
func (m *MissingDataInfo) RecordMissing(pos int64) {
	m.MissingDataPoints++
	if m.PositionsWithMissing == nil {
		m.PositionsWithMissing = make(map[int64]struct{})
	}
	m.PositionsWithMissing[pos] = struct{}{}
}

// Merge folds a per-line delta into the aggregate.
func (m *MissingDataInfo) Merge(delta *MissingDataInfo) {
	m.TotalDataPoints += delta.TotalDataPoints
	m.MissingDataPoints += delta.MissingDataPoints
	for pos := range delta.PositionsWithMissing {
		if m.PositionsWithMissing == nil {
			m.PositionsWithMissing = make(map[int64]struct{})
		}
		m.PositionsWithMissing[pos] = struct{}{}
	}
}

// Percent returns the missing fraction as a percentage, or 0 when no
// slots have been examined.
func (m *MissingDataInfo) Percent() float64 {
	if m.TotalDataPoints == 0 {
		return 0
	}
	return float64(m.MissingDataPoints) / float64(m.TotalDataPoints) * 100
}

// NormalizeChrom returns a chromosome name without the "chr" prefix.
// Comparison between config, CLI and VCF chromosome names is done on
// the normalized form.
func NormalizeChrom(name string) string {
	return strings.TrimPrefix(name, "chr")
}
