package output

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSauers/ferromic/internal/popgen"
)

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())

	group0 := &popgen.RegionStats{
		Chrom: "chr2", RegionStart: 1000, RegionEnd: 2000,
		SequenceLength: 1001, SegregatingSites: 3,
		WattersonTheta: 0.001, Pi: 0.002,
	}
	group1 := &popgen.RegionStats{
		Chrom: "chr2", RegionStart: 1000, RegionEnd: 2000,
		SequenceLength: 1001, SegregatingSites: 5,
		WattersonTheta: 0.003, Pi: 0.004,
	}
	require.NoError(t, w.WriteRow(group0, group1))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, csvColumns, records[0])
	assert.Equal(t, []string{
		"chr2", "1000", "2000",
		"1001", "1001",
		"3", "5",
		"0.001", "0.003",
		"0.002", "0.004",
	}, records[1])
}
