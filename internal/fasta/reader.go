// Package fasta reads and writes FASTA sequence files.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Record is a single FASTA entry.
type Record struct {
	ID          string // first whitespace-delimited token of the header
	Description string // header line without '>' and trailing whitespace
	Seq         string
}

// Reader reads FASTA records in file order.
type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer

	header  string
	started bool
	done    bool
}

// Open opens a FASTA file for reading. Use "-" for stdin.
// Files ending in .gz are decompressed transparently.
func Open(path string) (*Reader, error) {
	var closers []io.Closer
	var reader io.Reader

	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open FASTA file: %w", err)
		}
		closers = append(closers, f)
		reader = f
	}

	// Handle gzipped files
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		closers = append([]io.Closer{gz}, closers...)
		reader = gz
	}

	r := NewReader(reader)
	r.closers = closers
	return r, nil
}

// NewReader creates a Reader over r. The caller owns r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequences
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	return &Reader{scanner: scanner}
}

// Next returns the next record, or nil, nil at end of input.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, nil
	}

	var seq strings.Builder
	for r.scanner.Scan() {
		line := r.scanner.Text()

		if strings.HasPrefix(line, ">") {
			header := strings.TrimRightFunc(line[1:], unicode.IsSpace)
			if !r.started {
				// Lines before the first header are ignored
				r.started = true
				r.header = header
				seq.Reset()
				continue
			}
			rec := newRecord(r.header, seq.String())
			r.header = header
			return rec, nil
		}

		if r.started {
			seq.WriteString(strings.Join(strings.Fields(line), ""))
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	r.done = true
	if !r.started {
		return nil, nil
	}
	return newRecord(r.header, seq.String()), nil
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, *rec)
	}
}

// Close releases any files opened by Open.
func (r *Reader) Close() error {
	return closeAll(r.closers)
}

func newRecord(header, seq string) *Record {
	id := header
	if fields := strings.Fields(header); len(fields) > 0 {
		id = fields[0]
	}
	return &Record{ID: id, Description: header, Seq: seq}
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
