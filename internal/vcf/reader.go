package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// reader wraps a plain or gzip-compressed VCF file behind a buffered
// line reader.
type reader struct {
	*bufio.Reader
	file *os.File
	gz   *gzip.Reader
}

// openReader opens a VCF file for reading, sniffing the gzip magic
// bytes rather than trusting the file extension.
func openReader(path string) (*reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	magic := make([]byte, 2)
	if _, err := io.ReadFull(file, magic); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read vcf file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	r := &reader{file: file}
	if magic[0] == 0x1f && magic[1] == 0x8b {
		r.gz, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		// Keep reading across concatenated gzip members, as produced
		// by bgzip and by appending compressors.
		r.gz.Multistream(true)
		r.Reader = bufio.NewReaderSize(r.gz, 1<<20)
	} else {
		r.Reader = bufio.NewReaderSize(file, 1<<20)
	}

	return r, nil
}

func (r *reader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
