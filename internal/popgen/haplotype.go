package popgen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ScottSauers/ferromic/internal/vcf"
)

// GroupPair assigns a sample's left and right haplotype to one of two
// groups (0 or 1) for a region.
type GroupPair struct {
	Left  uint8
	Right uint8
}

// ExtractSampleID normalizes a VCF sample name to the token after the
// last underscore, the identifier the configuration table joins on.
func ExtractSampleID(name string) string {
	if idx := strings.LastIndexByte(name, '_'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// haplotypeRef addresses one haplotype: a sample's genotype slot and
// the allele index within it (0 = left, 1 = right).
type haplotypeRef struct {
	sample int
	allele int
}

// FilterHaplotypeGroup reduces a variant set to the haplotypes that a
// configuration entry assigns to the requested group, then computes
// the region's diversity statistics over them. Group 0 selects left
// haplotypes assigned 0, group 1 selects right haplotypes assigned 1.
// Configured samples absent from the VCF are skipped with a warning;
// an empty or single-haplotype selection is an error because theta
// and pi are undefined there.
func FilterHaplotypeGroup(
	variants []vcf.Variant,
	sampleNames []string,
	group uint8,
	assignment map[string]GroupPair,
	region vcf.Region,
	logger *zap.Logger,
) (*RegionStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	indexByID := make(map[string]int, len(sampleNames))
	for i, name := range sampleNames {
		id := ExtractSampleID(name)
		if _, dup := indexByID[id]; dup {
			return nil, fmt.Errorf("duplicate sample ID %q in VCF samples", id)
		}
		indexByID[id] = i
	}

	var refs []haplotypeRef
	for sample, pair := range assignment {
		idx, ok := indexByID[sample]
		if !ok {
			logger.Warn("config sample not found in VCF, skipping",
				zap.String("sample", sample))
			continue
		}
		if group == 0 && pair.Left == 0 {
			refs = append(refs, haplotypeRef{sample: idx, allele: 0})
		}
		if group == 1 && pair.Right == 1 {
			refs = append(refs, haplotypeRef{sample: idx, allele: 1})
		}
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("no haplotypes found for group %d", group)
	}
	n := len(refs)
	if n <= 1 {
		return nil, fmt.Errorf("insufficient haplotypes for group %d: need at least 2, have %d", group, n)
	}

	logger.Debug("haplotype group selected",
		zap.Uint8("group", group),
		zap.Int("haplotypes", n))

	// Re-slice each variant down to one single-allele slot per
	// selected haplotype, in haplotype list order. Haploid calls in a
	// diploid column leave the right haplotype missing.
	filtered := make([]vcf.Variant, len(variants))
	for vi := range variants {
		genotypes := make([]vcf.Genotype, n)
		for hi, ref := range refs {
			full := variants[vi].Genotypes[ref.sample]
			if full != nil && ref.allele < len(full) {
				genotypes[hi] = vcf.Genotype{full[ref.allele]}
			}
		}
		filtered[vi] = vcf.Variant{Pos: variants[vi].Pos, Genotypes: genotypes}
	}

	segSites := SegregatingSites(filtered)
	pairs := PairwiseDifferences(filtered, n)
	totalDiff := TotalPairwiseDifferences(pairs)

	seqLength := region.Length()
	theta, err := WattersonTheta(segSites, n, seqLength)
	if err != nil {
		return nil, err
	}
	pi, err := Pi(totalDiff, n, seqLength)
	if err != nil {
		return nil, err
	}

	return &RegionStats{
		RegionStart:      region.Start,
		RegionEnd:        region.End,
		SequenceLength:   seqLength,
		SegregatingSites: segSites,
		WattersonTheta:   theta,
		Pi:               pi,
	}, nil
}
