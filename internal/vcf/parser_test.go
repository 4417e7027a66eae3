package vcf

import (
	"errors"
	"testing"
)

const headerLine = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3"

func TestValidateHeader(t *testing.T) {
	names, err := ValidateHeader(headerLine)
	if err != nil {
		t.Fatalf("ValidateHeader failed: %v", err)
	}
	if len(names) != 3 || names[0] != "S1" || names[2] != "S3" {
		t.Errorf("unexpected sample names: %v", names)
	}
}

func TestValidateHeader_BadColumn(t *testing.T) {
	_, err := ValidateHeader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tFORMAT\tINFO\tS1")
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestValidateHeader_Truncated(t *testing.T) {
	_, err := ValidateHeader("#CHROM\tPOS\tID")
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestParseVariantLine_RoundTrip(t *testing.T) {
	var missing MissingDataInfo
	line := "chr2\t1500\t.\tA\tG\t50\tPASS\t.\tGT\t0|0\t0|1\t1/1"

	v, multi, err := ParseVariantLine(line, "2", Region{Start: 1000, End: 2000}, 3, &missing)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if multi {
		t.Error("single ALT flagged as multi-allelic")
	}
	if v.Pos != 1500 {
		t.Errorf("pos = %d, want 1500", v.Pos)
	}

	want := []Genotype{{0, 0}, {0, 1}, {1, 1}}
	for i, g := range v.Genotypes {
		if !g.Equal(want[i]) {
			t.Errorf("genotype %d = %v, want %v", i, g, want[i])
		}
	}
	if missing.TotalDataPoints != 3 || missing.MissingDataPoints != 0 {
		t.Errorf("missing accounting = %d/%d, want 0/3",
			missing.MissingDataPoints, missing.TotalDataPoints)
	}
}

func TestParseVariantLine_MissingMarkers(t *testing.T) {
	for _, marker := range []string{".", "./.", ".|."} {
		var missing MissingDataInfo
		line := "1\t100\t.\tA\tT\t.\tPASS\t.\tGT\t" + marker + "\t0|1\t0|0"

		v, _, err := ParseVariantLine(line, "1", WholeChromosome(), 3, &missing)
		if err != nil {
			t.Fatalf("marker %q: parse failed: %v", marker, err)
		}
		if v.Genotypes[0] != nil {
			t.Errorf("marker %q: slot not missing", marker)
		}
		if missing.TotalDataPoints != 3 || missing.MissingDataPoints != 1 {
			t.Errorf("marker %q: accounting = %d/%d, want 1/3",
				marker, missing.MissingDataPoints, missing.TotalDataPoints)
		}
		if _, ok := missing.PositionsWithMissing[100]; !ok {
			t.Errorf("marker %q: position 100 not recorded", marker)
		}
	}
}

func TestParseVariantLine_UnparsableAllele(t *testing.T) {
	var missing MissingDataInfo
	line := "1\t100\t.\tA\tT\t.\tPASS\t.\tGT\t0|X\t0|1\t0|0"

	v, _, err := ParseVariantLine(line, "1", WholeChromosome(), 3, &missing)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v.Genotypes[0] != nil {
		t.Error("unparsable allele should mark the whole slot missing")
	}
	if missing.MissingDataPoints != 1 {
		t.Errorf("missing = %d, want 1", missing.MissingDataPoints)
	}
}

func TestParseVariantLine_TruncatedCall(t *testing.T) {
	// An empty allele component means the call is malformed, so the
	// whole slot is missing rather than a haploid or empty genotype.
	for _, call := range []string{"0|", "|1", "|", "0/", "/1"} {
		var missing MissingDataInfo
		line := "1\t100\t.\tA\tT\t.\tPASS\t.\tGT\t" + call + "\t0|1\t0|0"

		v, _, err := ParseVariantLine(line, "1", WholeChromosome(), 3, &missing)
		if err != nil {
			t.Fatalf("call %q: parse failed: %v", call, err)
		}
		if v.Genotypes[0] != nil {
			t.Errorf("call %q: slot = %v, want missing", call, v.Genotypes[0])
		}
		if missing.MissingDataPoints != 1 {
			t.Errorf("call %q: missing = %d, want 1", call, missing.MissingDataPoints)
		}
		if _, ok := missing.PositionsWithMissing[100]; !ok {
			t.Errorf("call %q: position 100 not recorded", call)
		}
	}
}

func TestParseVariantLine_GenotypeSubfield(t *testing.T) {
	var missing MissingDataInfo
	line := "1\t100\t.\tA\tT\t.\tPASS\t.\tGT:DP\t0|1:35\t1/0:12\t0|0:7"

	v, _, err := ParseVariantLine(line, "1", WholeChromosome(), 3, &missing)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !v.Genotypes[0].Equal(Genotype{0, 1}) || !v.Genotypes[1].Equal(Genotype{1, 0}) {
		t.Errorf("genotype subfield not isolated: %v", v.Genotypes)
	}
}

func TestParseVariantLine_ChromFilter(t *testing.T) {
	var missing MissingDataInfo

	// Mismatched chromosome is filtered, not an error.
	v, _, err := ParseVariantLine("chr3\t100\t.\tA\tT\t.\tPASS\t.\tGT\t0|0\t0|1", "2", WholeChromosome(), 2, &missing)
	if err != nil || v != nil {
		t.Errorf("other chromosome: v=%v err=%v, want nil/nil", v, err)
	}

	// chr prefix is tolerated on either side.
	v, _, err = ParseVariantLine("chr2\t100\t.\tA\tT\t.\tPASS\t.\tGT\t0|0\t0|1", "2", WholeChromosome(), 2, &missing)
	if err != nil || v == nil {
		t.Fatalf("chr-prefixed line not matched: v=%v err=%v", v, err)
	}
	v, _, err = ParseVariantLine("2\t100\t.\tA\tT\t.\tPASS\t.\tGT\t0|0\t0|1", "chr2", WholeChromosome(), 2, &missing)
	if err != nil || v == nil {
		t.Fatalf("chr-prefixed target not matched: v=%v err=%v", v, err)
	}
}

func TestParseVariantLine_RegionFilter(t *testing.T) {
	var missing MissingDataInfo
	v, _, err := ParseVariantLine("1\t99\t.\tA\tT\t.\tPASS\t.\tGT\t0|0\t0|1", "1", Region{Start: 100, End: 200}, 2, &missing)
	if err != nil || v != nil {
		t.Errorf("out-of-region: v=%v err=%v, want nil/nil", v, err)
	}
	if missing.TotalDataPoints != 0 {
		t.Error("filtered lines must not contribute data points")
	}
}

func TestParseVariantLine_TooFewFields(t *testing.T) {
	var missing MissingDataInfo
	_, _, err := ParseVariantLine("1\t100\t.\tA\tT\t.\tPASS\t.\tGT", "1", WholeChromosome(), 1, &missing)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for 9 fields, got %v", err)
	}
}

func TestParseVariantLine_BadPosition(t *testing.T) {
	var missing MissingDataInfo
	_, _, err := ParseVariantLine("1\tabc\t.\tA\tT\t.\tPASS\t.\tGT\t0|0", "1", WholeChromosome(), 1, &missing)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for bad position, got %v", err)
	}
}

func TestParseVariantLine_MultiAllelic(t *testing.T) {
	var missing MissingDataInfo
	_, multi, err := ParseVariantLine("1\t100\t.\tA\tT,G\t.\tPASS\t.\tGT\t0|2\t0|1", "1", WholeChromosome(), 2, &missing)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !multi {
		t.Error("multi-allelic ALT not flagged")
	}
}

func TestParseVariantLine_SampleCountMismatch(t *testing.T) {
	var missing MissingDataInfo
	_, _, err := ParseVariantLine("1\t100\t.\tA\tT\t.\tPASS\t.\tGT\t0|0\t0|1", "1", WholeChromosome(), 3, &missing)
	if err == nil {
		t.Fatal("expected error for sample count mismatch")
	}
}

func TestParseContigLength(t *testing.T) {
	if l := parseContigLength("##contig=<ID=chr2,length=242193529>", "2"); l != 242193529 {
		t.Errorf("length = %d, want 242193529", l)
	}
	if l := parseContigLength("##contig=<ID=chr3,length=1000>", "2"); l != 0 {
		t.Errorf("other contig matched: %d", l)
	}
	if l := parseContigLength("##fileformat=VCFv4.2", "2"); l != 0 {
		t.Errorf("non-contig line matched: %d", l)
	}
}
