// Package output provides ORF result output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-orf/internal/orf"
)

// ResultWriter defines the interface for writing ORF results.
type ResultWriter interface {
	WriteHeader() error
	Write(r orf.Result) error
	Flush() error
}

// TabWriter writes a tab-delimited summary of ORF results.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#ID",
			"Frame",
			"ORF_length",
			"Source_length",
			"Type",
			"Description",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result.
func (tw *TabWriter) Write(r orf.Result) error {
	description := r.Description
	if description == "" {
		description = "-"
	}

	values := []string{
		r.ID,
		strconv.Itoa(r.Frame),
		strconv.Itoa(len(r.ORF)),
		strconv.Itoa(r.SourceLength),
		r.Type,
		description,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
