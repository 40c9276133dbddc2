package output

import (
	"fmt"
	"io"

	"github.com/inodb/vibe-orf/internal/fasta"
	"github.com/inodb/vibe-orf/internal/orf"
)

// FASTAWriter writes each longest ORF as a protein FASTA record under the
// source record's ID and description.
type FASTAWriter struct {
	w *fasta.Writer
}

// NewFASTAWriter creates a FASTA writer wrapping sequences at width.
func NewFASTAWriter(w io.Writer, width int) *FASTAWriter {
	return &FASTAWriter{w: fasta.NewWriter(w, width)}
}

// WriteHeader is a no-op; FASTA has no file header.
func (fw *FASTAWriter) WriteHeader() error {
	return nil
}

// Write writes a single result.
func (fw *FASTAWriter) Write(r orf.Result) error {
	return fw.w.WriteRecord(fasta.Record{ID: r.ID, Description: r.Description, Seq: r.ORF})
}

// Flush flushes any buffered data to the underlying writer.
func (fw *FASTAWriter) Flush() error {
	return fw.w.Flush()
}

// WriteAll writes the header, every result in order, and flushes.
func WriteAll(w ResultWriter, results []orf.Result) error {
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write result %s: %w", r.ID, err)
		}
	}
	return w.Flush()
}
