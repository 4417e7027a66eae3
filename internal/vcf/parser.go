package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// mandatoryColumns is the exact ordered prefix every #CHROM header
// line must carry; sample names follow it.
var mandatoryColumns = []string{
	"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT",
}

// ValidateHeader checks the #CHROM line against the mandatory column
// layout and returns the sample names that follow it.
func ValidateHeader(line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) < len(mandatoryColumns) {
		return nil, &FormatError{Message: "incomplete #CHROM header line"}
	}
	for i, want := range mandatoryColumns {
		if fields[i] != want {
			return nil, &FormatError{Message: fmt.Sprintf("header column %d is %q, want %q", i+1, fields[i], want)}
		}
	}
	return fields[len(mandatoryColumns):], nil
}

// parseContigLength extracts the contig length from a
// ##contig=<ID=...,length=...> meta line when its ID matches chrom.
// Returns 0 when the line is not a matching contig declaration.
func parseContigLength(line, chrom string) int64 {
	const prefix = "##contig=<"
	if !strings.HasPrefix(line, prefix) {
		return 0
	}
	body := strings.TrimSuffix(strings.TrimPrefix(strings.TrimRight(line, "\r\n"), prefix), ">")

	var id string
	var length int64
	for _, kv := range strings.Split(body, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "ID":
			id = parts[1]
		case "length":
			length, _ = strconv.ParseInt(parts[1], 10, 64)
		}
	}

	if NormalizeChrom(id) != NormalizeChrom(chrom) {
		return 0
	}
	return length
}

// ParseVariantLine parses one VCF data line. It returns a nil Variant
// without error when the line's chromosome or position falls outside
// the chrom/region filter. Per-slot missing-data accounting is added
// to missing for every line that passes the filter. multiAllelic is
// set when the ALT column carries more than one allele; such sites
// are kept but only the first allele axis is modeled, which
// undercounts diversity.
func ParseVariantLine(line, chrom string, region Region, sampleCount int, missing *MissingDataInfo) (v *Variant, multiAllelic bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return nil, false, &ParseError{Message: fmt.Sprintf("expected at least 10 columns, found %d", len(fields))}
	}

	if NormalizeChrom(fields[0]) != NormalizeChrom(chrom) {
		return nil, false, nil
	}

	pos, perr := strconv.ParseInt(fields[1], 10, 64)
	if perr != nil {
		return nil, false, &ParseError{Message: fmt.Sprintf("invalid position %q", fields[1])}
	}
	if !region.Contains(pos) {
		return nil, false, nil
	}

	if len(fields)-9 != sampleCount {
		return nil, false, &ParseError{Message: fmt.Sprintf("expected %d sample columns, found %d", sampleCount, len(fields)-9)}
	}

	multiAllelic = strings.ContainsRune(fields[4], ',')

	genotypes := make([]Genotype, 0, sampleCount)
	for _, cell := range fields[9:] {
		missing.TotalDataPoints++
		genotypes = append(genotypes, parseGenotype(cell, pos, missing))
	}

	return &Variant{Pos: pos, Genotypes: genotypes}, multiAllelic, nil
}

// parseGenotype extracts the allele calls from one sample cell. The
// genotype is the subfield before the first ':'; an explicit missing
// marker or any empty or unparsable allele component makes the whole
// slot missing.
func parseGenotype(cell string, pos int64, missing *MissingDataInfo) Genotype {
	call := cell
	if idx := strings.IndexByte(cell, ':'); idx >= 0 {
		call = cell[:idx]
	}
	if call == "." || call == "./." || call == ".|." {
		missing.RecordMissing(pos)
		return nil
	}

	// Split keeping empty components: a truncated call like "0|" or
	// "|1" is malformed, not a haploid call.
	parts := strings.Split(strings.ReplaceAll(call, "/", "|"), "|")
	alleles := make(Genotype, 0, len(parts))
	for _, p := range parts {
		a, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			missing.RecordMissing(pos)
			return nil
		}
		alleles = append(alleles, uint8(a))
	}
	return alleles
}
