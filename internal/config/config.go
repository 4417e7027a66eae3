// Package config loads the batch configuration table: one region per
// row plus a haplotype-group assignment per sample.
package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ScottSauers/ferromic/internal/popgen"
)

// fixedColumns is the number of leading non-sample columns in the
// table: seqname, start, end and four unused annotation columns.
const fixedColumns = 7

// Entry is one configuration row: a region and the per-sample
// haplotype-group assignment for it.
type Entry struct {
	Seqname string
	Start   int64
	End     int64
	Samples map[string]popgen.GroupPair
}

// Load reads a tab-delimited configuration table. Sample columns start
// after the fixed columns; cells are "left|right" with digits 0/1.
// Invalid cells are counted and reported; rows with no valid sample
// cell are dropped with a warning.
func Load(path string, logger *zap.Logger) ([]Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read config header: %w", err)
	}
	if len(header) <= fixedColumns {
		return nil, fmt.Errorf("no sample names in config header after the first %d columns", fixedColumns)
	}
	sampleNames := header[fixedColumns:]

	var entries []Entry
	invalidCells := 0
	totalCells := 0

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read config line %d: %w", line, err)
		}
		// encoding/csv enforces the header's field count, so the
		// record is at least fixedColumns+1 wide here.

		start, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config line %d: invalid start %q", line, record[1])
		}
		end, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config line %d: invalid end %q", line, record[2])
		}

		entry := Entry{
			Seqname: record[0],
			Start:   start,
			End:     end,
			Samples: make(map[string]popgen.GroupPair),
		}

		for i, cell := range record[fixedColumns:] {
			totalCells++
			pair, ok := parseGroupCell(cell)
			if !ok {
				invalidCells++
				continue
			}
			entry.Samples[sampleNames[i]] = pair
		}

		if len(entry.Samples) == 0 {
			logger.Warn("no valid genotypes for region, dropping entry",
				zap.String("seqname", entry.Seqname),
				zap.Int64("start", start),
				zap.Int64("end", end))
			continue
		}
		entries = append(entries, entry)
	}

	if totalCells > 0 {
		logger.Info("config file loaded",
			zap.Int("entries", len(entries)),
			zap.Int("invalid_genotypes", invalidCells),
			zap.Float64("invalid_percent", float64(invalidCells)/float64(totalCells)*100))
	}

	return entries, nil
}

// parseGroupCell parses a "left|right" group assignment. Trailing
// non-digit noise after each digit is tolerated; values above 1 are
// invalid.
func parseGroupCell(cell string) (popgen.GroupPair, bool) {
	left, right, ok := strings.Cut(cell, "|")
	if !ok {
		return popgen.GroupPair{}, false
	}
	l, lok := parseGroupDigit(left)
	r, rok := parseGroupDigit(right)
	if !lok || !rok {
		return popgen.GroupPair{}, false
	}
	return popgen.GroupPair{Left: l, Right: r}, true
}

func parseGroupDigit(s string) (uint8, bool) {
	digits := s
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			digits = s[:i]
			break
		}
	}
	v, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || v > 1 {
		return 0, false
	}
	return uint8(v), true
}
