package fasta

import (
	"bufio"
	"io"
	"strings"
)

// DefaultLineWidth is the sequence line width used by NewWriter callers
// that have no preference.
const DefaultLineWidth = 60

// Writer writes FASTA records with wrapped sequence lines.
type Writer struct {
	w     *bufio.Writer
	width int
}

// NewWriter creates a FASTA writer. A width of 0 or less disables wrapping.
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: bufio.NewWriter(w), width: width}
}

// Write writes one record. The header is the description when it already
// starts with the ID, otherwise "ID description".
func (fw *Writer) Write(id, description, seq string) error {
	if _, err := fw.w.WriteString(">" + Title(id, description) + "\n"); err != nil {
		return err
	}

	if fw.width <= 0 {
		if seq == "" {
			return nil
		}
		_, err := fw.w.WriteString(seq + "\n")
		return err
	}

	for i := 0; i < len(seq); i += fw.width {
		end := min(i+fw.width, len(seq))
		if _, err := fw.w.WriteString(seq[i:end] + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord writes r.
func (fw *Writer) WriteRecord(r Record) error {
	return fw.Write(r.ID, r.Description, r.Seq)
}

// Flush flushes any buffered data to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}

// Title builds a FASTA header line (without '>') from an ID and description.
func Title(id, description string) string {
	if description == "" {
		return id
	}
	if fields := strings.Fields(description); len(fields) > 0 && fields[0] == id {
		return description
	}
	if id == "" {
		return description
	}
	return id + " " + description
}
