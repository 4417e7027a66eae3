// Package duckdb provides an optional queryable store for batch
// diversity results (append-only, one row per region and haplotype
// group).
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/ScottSauers/ferromic/internal/popgen"
)

// Store manages a DuckDB connection for region statistics.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS region_stats (
		run_id VARCHAR,
		chrom VARCHAR,
		region_start BIGINT,
		region_end BIGINT,
		haplotype_group TINYINT,
		sequence_length BIGINT,
		segregating_sites BIGINT,
		w_theta DOUBLE,
		pi DOUBLE
	)`)
	return err
}

// InsertRegionStats appends one haplotype group's statistics for a
// region under the given run.
func (s *Store) InsertRegionStats(runID string, group uint8, stats *popgen.RegionStats) error {
	_, err := s.db.Exec(`INSERT INTO region_stats VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		stats.Chrom,
		stats.RegionStart,
		stats.RegionEnd,
		group,
		stats.SequenceLength,
		stats.SegregatingSites,
		stats.WattersonTheta,
		stats.Pi,
	)
	if err != nil {
		return fmt.Errorf("insert region stats: %w", err)
	}
	return nil
}

// ResultSink adapts a Store to the batch orchestrator's sink
// interface, tagging every row with the run id.
type ResultSink struct {
	store *Store
	runID string
}

// NewResultSink creates a sink writing into store under runID.
func NewResultSink(store *Store, runID string) *ResultSink {
	return &ResultSink{store: store, runID: runID}
}

// WriteRow stores both haplotype groups' statistics for one entry.
func (rs *ResultSink) WriteRow(group0, group1 *popgen.RegionStats) error {
	if err := rs.store.InsertRegionStats(rs.runID, 0, group0); err != nil {
		return err
	}
	return rs.store.InsertRegionStats(rs.runID, 1, group1)
}
