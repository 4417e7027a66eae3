package vcf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindVCFFile(t *testing.T) {
	dir := writeFiles(t, "chr1.phased.vcf.gz", "chr10.phased.vcf.gz", "chr2.vcf", "notes.txt")

	path, err := FindVCFFile(dir, "1")
	if err != nil {
		t.Fatalf("FindVCFFile failed: %v", err)
	}
	if filepath.Base(path) != "chr1.phased.vcf.gz" {
		t.Errorf("chr1 resolved to %s", path)
	}

	path, err = FindVCFFile(dir, "10")
	if err != nil {
		t.Fatalf("FindVCFFile failed: %v", err)
	}
	if filepath.Base(path) != "chr10.phased.vcf.gz" {
		t.Errorf("chr10 resolved to %s", path)
	}

	path, err = FindVCFFile(dir, "chr2")
	if err != nil {
		t.Fatalf("FindVCFFile with chr prefix failed: %v", err)
	}
	if filepath.Base(path) != "chr2.vcf" {
		t.Errorf("chr2 resolved to %s", path)
	}
}

func TestFindVCFFile_NoMatch(t *testing.T) {
	dir := writeFiles(t, "chr1.vcf")
	_, err := FindVCFFile(dir, "7")
	if !errors.Is(err, ErrNoVCFFiles) {
		t.Fatalf("expected ErrNoVCFFiles, got %v", err)
	}
}

func TestFindVCFFile_ExactMatchWins(t *testing.T) {
	dir := writeFiles(t, "chr4.vcf", "chr4.filtered.vcf")
	path, err := FindVCFFile(dir, "4")
	if err != nil {
		t.Fatalf("FindVCFFile failed: %v", err)
	}
	if filepath.Base(path) != "chr4.vcf" {
		t.Errorf("exact match not preferred: %s", path)
	}
}

func TestFindVCFFile_Ambiguous(t *testing.T) {
	dir := writeFiles(t, "chr4.filtered.vcf", "chr4.phased.vcf")
	_, err := FindVCFFile(dir, "4")
	var aerr *AmbiguousFileError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AmbiguousFileError, got %v", err)
	}
	if len(aerr.Candidates) != 2 {
		t.Errorf("candidates = %v", aerr.Candidates)
	}
}
