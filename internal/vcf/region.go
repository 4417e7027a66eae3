package vcf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Region is a 1-based inclusive genomic interval.
type Region struct {
	Start int64
	End   int64
}

// WholeChromosome returns the region covering every position of a
// chromosome, used when no explicit region filter is given.
func WholeChromosome() Region {
	return Region{Start: 1, End: math.MaxInt64}
}

// ParseRegion parses a "start-end" string into a Region.
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Region{}, &RegionError{Message: fmt.Sprintf("invalid region %q, expected start-end", s)}
	}
	start, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Region{}, &RegionError{Message: fmt.Sprintf("invalid start position %q", parts[0])}
	}
	end, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Region{}, &RegionError{Message: fmt.Sprintf("invalid end position %q", parts[1])}
	}
	if start >= end {
		return Region{}, &RegionError{Message: fmt.Sprintf("start %d must be less than end %d", start, end)}
	}
	return Region{Start: start, End: end}, nil
}

// Contains reports whether pos falls inside the region.
func (r Region) Contains(pos int64) bool {
	return pos >= r.Start && pos <= r.End
}

// Bounded reports whether the region has an explicit end.
func (r Region) Bounded() bool {
	return r.End != math.MaxInt64
}

// Length returns the inclusive span of a bounded region.
func (r Region) Length() int64 {
	return r.End - r.Start + 1
}

func (r Region) String() string {
	if !r.Bounded() {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
