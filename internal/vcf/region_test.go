package vcf

import (
	"errors"
	"testing"
)

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("100-200")
	if err != nil {
		t.Fatalf("ParseRegion failed: %v", err)
	}
	if r.Start != 100 || r.End != 200 {
		t.Errorf("region = %v, want 100-200", r)
	}
	if r.Length() != 101 {
		t.Errorf("length = %d, want 101", r.Length())
	}
	if !r.Contains(100) || !r.Contains(200) || r.Contains(99) || r.Contains(201) {
		t.Error("inclusive bounds violated")
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	for _, s := range []string{"100", "a-200", "100-b", "200-100", "100-100", "1-2-3"} {
		_, err := ParseRegion(s)
		var rerr *RegionError
		if !errors.As(err, &rerr) {
			t.Errorf("ParseRegion(%q): expected RegionError, got %v", s, err)
		}
	}
}

func TestWholeChromosome(t *testing.T) {
	r := WholeChromosome()
	if r.Bounded() {
		t.Error("whole chromosome should be unbounded")
	}
	if !r.Contains(1) || !r.Contains(1<<40) {
		t.Error("whole chromosome should contain every position")
	}
}
