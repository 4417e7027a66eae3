package vcf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindVCFFile locates the variant file for a chromosome inside a
// folder. A file matches when its name, after an optional "chr"
// prefix, starts with the chromosome token followed by a non-digit
// (so "chr1" does not claim chr10's file) and ends in .vcf or
// .vcf.gz. With several matches an exact name match wins; otherwise
// the ambiguity is an error listing the candidates.
func FindVCFFile(folder, chrom string) (string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", fmt.Errorf("read vcf folder: %w", err)
	}

	target := NormalizeChrom(chrom)

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesChromosome(entry.Name(), target) {
			candidates = append(candidates, filepath.Join(folder, entry.Name()))
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", ErrNoVCFFiles
	case 1:
		return candidates[0], nil
	}

	for _, c := range candidates {
		base := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(c), ".gz"), ".vcf")
		if NormalizeChrom(base) == target {
			return c, nil
		}
	}
	return "", &AmbiguousFileError{Chrom: chrom, Candidates: candidates}
}

func matchesChromosome(name, target string) bool {
	if !strings.HasSuffix(name, ".vcf") && !strings.HasSuffix(name, ".vcf.gz") {
		return false
	}
	stripped := NormalizeChrom(name)
	if !strings.HasPrefix(stripped, target) {
		return false
	}
	rest := stripped[len(target):]
	// The chromosome token must end here, not continue into more
	// digits.
	return len(rest) == 0 || rest[0] < '0' || rest[0] > '9'
}
