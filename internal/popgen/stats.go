// Package popgen implements population-genetics diversity statistics
// over variant sets: segregating sites, pairwise differences,
// Watterson's theta and nucleotide diversity pi.
package popgen

import (
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/ScottSauers/ferromic/internal/vcf"
)

// RegionStats is the immutable per-region result record.
type RegionStats struct {
	Chrom            string
	RegionStart      int64
	RegionEnd        int64
	SequenceLength   int64
	SegregatingSites int
	WattersonTheta   float64
	Pi               float64
}

// PairDiff records the differences between one unordered sample pair
// (I < J): how many variants differ and at which positions.
type PairDiff struct {
	I, J      int
	Count     int
	Positions []int64
}

// SegregatingSites counts variants where more than one distinct allele
// code is observed among non-missing genotype slots. Each variant is
// judged independently, so the count is a parallel unordered
// reduction.
func SegregatingSites(variants []vcf.Variant) int {
	return parallel.RangeReduceInt(0, len(variants), 0,
		func(low, high int) int {
			count := 0
			for i := low; i < high; i++ {
				if isSegregating(&variants[i]) {
					count++
				}
			}
			return count
		},
		func(x, y int) int { return x + y })
}

func isSegregating(v *vcf.Variant) bool {
	var first uint8
	seen := false
	for _, g := range v.Genotypes {
		for _, allele := range g {
			if !seen {
				first = allele
				seen = true
			} else if allele != first {
				return true
			}
		}
	}
	return false
}

// PairwiseDifferences scans every unordered sample pair (i, j) with
// i < j and counts the variants where both slots are non-missing and
// the genotypes differ as ordered allele sequences. The pair
// enumeration is flattened so the O(n^2 * m) kernel parallelizes over
// independent pairs.
func PairwiseDifferences(variants []vcf.Variant, n int) []PairDiff {
	pairs := make([]PairDiff, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, PairDiff{I: i, J: j})
		}
	}

	parallel.Range(0, len(pairs), 0, func(low, high int) {
		for k := low; k < high; k++ {
			p := &pairs[k]
			for vi := range variants {
				gi := variants[vi].Genotypes[p.I]
				gj := variants[vi].Genotypes[p.J]
				if gi == nil || gj == nil {
					continue
				}
				if !gi.Equal(gj) {
					p.Count++
					p.Positions = append(p.Positions, variants[vi].Pos)
				}
			}
		}
	})

	return pairs
}

// TotalPairwiseDifferences sums the per-pair difference counts.
func TotalPairwiseDifferences(pairs []PairDiff) int {
	total := 0
	for i := range pairs {
		total += pairs[i].Count
	}
	return total
}

// Harmonic returns H(k), the sum of 1/i for i in 1..k.
func Harmonic(k int) float64 {
	sum := 0.0
	for i := 1; i <= k; i++ {
		sum += 1 / float64(i)
	}
	return sum
}

// WattersonTheta estimates the population mutation rate from the
// segregating-site count: S / H(n-1) / L, with H(n-1) the standard
// Watterson denominator. n is the number of haplotypes or samples in
// scope; n <= 1 leaves the estimator undefined and is rejected.
func WattersonTheta(segSites, n int, seqLength int64) (float64, error) {
	if n <= 1 {
		return 0, fmt.Errorf("watterson theta undefined for %d samples", n)
	}
	if seqLength <= 0 {
		return 0, fmt.Errorf("watterson theta undefined for sequence length %d", seqLength)
	}
	return float64(segSites) / Harmonic(n-1) / float64(seqLength), nil
}

// Pi computes nucleotide diversity: total pairwise differences divided
// by the C(n,2) comparisons and the sequence length.
func Pi(totalPairDiff, n int, seqLength int64) (float64, error) {
	if n <= 1 {
		return 0, fmt.Errorf("pi undefined for %d samples", n)
	}
	if seqLength <= 0 {
		return 0, fmt.Errorf("pi undefined for sequence length %d", seqLength)
	}
	comparisons := n * (n - 1) / 2
	return float64(totalPairDiff) / float64(comparisons) / float64(seqLength), nil
}
