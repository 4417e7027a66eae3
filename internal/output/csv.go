// Package output provides result sinks for batch diversity runs.
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ScottSauers/ferromic/internal/popgen"
)

// csvColumns pairs every statistic once per haplotype group.
var csvColumns = []string{
	"chr", "region_start", "region_end",
	"0_sequence_length", "1_sequence_length",
	"0_segregating_sites", "1_segregating_sites",
	"0_w_theta", "1_w_theta",
	"0_pi", "1_pi",
}

// CSVWriter writes one row per configuration entry, pairing the
// group-0 and group-1 statistics.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter on top of w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header line.
func (cw *CSVWriter) WriteHeader() error {
	if err := cw.w.Write(csvColumns); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}

// WriteRow writes one entry's paired group statistics and flushes, so
// a later failure cannot lose completed rows.
func (cw *CSVWriter) WriteRow(group0, group1 *popgen.RegionStats) error {
	row := []string{
		group0.Chrom,
		strconv.FormatInt(group0.RegionStart, 10),
		strconv.FormatInt(group0.RegionEnd, 10),
		strconv.FormatInt(group0.SequenceLength, 10),
		strconv.FormatInt(group1.SequenceLength, 10),
		strconv.Itoa(group0.SegregatingSites),
		strconv.Itoa(group1.SegregatingSites),
		strconv.FormatFloat(group0.WattersonTheta, 'g', -1, 64),
		strconv.FormatFloat(group1.WattersonTheta, 'g', -1, 64),
		strconv.FormatFloat(group0.Pi, 'g', -1, 64),
		strconv.FormatFloat(group1.Pi, 'g', -1, 64),
	}
	if err := cw.w.Write(row); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}

// Flush flushes any buffered rows to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
