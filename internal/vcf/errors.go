package vcf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoVCFFiles is returned when a folder holds no VCF file for the
// requested chromosome.
var ErrNoVCFFiles = errors.New("no VCF files found")

// ParseError represents a malformed VCF data line or field.
type ParseError struct {
	Line    int // 1-based line number when known, 0 otherwise
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("vcf parse error: %s", e.Message)
}

// FormatError represents a VCF file whose header does not match the
// mandatory column layout.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid vcf format: %s", e.Message)
}

// RegionError represents a malformed or empty region specification.
type RegionError struct {
	Message string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("invalid region: %s", e.Message)
}

// AmbiguousFileError is returned when several VCF files match one
// chromosome and none is an exact match.
type AmbiguousFileError struct {
	Chrom      string
	Candidates []string
}

func (e *AmbiguousFileError) Error() string {
	return fmt.Sprintf("multiple VCF files match chromosome %s: %s",
		e.Chrom, strings.Join(e.Candidates, ", "))
}
