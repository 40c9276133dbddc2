package orf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-orf/internal/fasta"
)

// ResultType is the annotation type attached to every result.
const ResultType = "longest ORF"

// Result is the longest ORF of one input record.
type Result struct {
	Index        int    // 0-based position in the input
	ID           string // source record ID
	Description  string // full source header
	ORF          string // amino acid sequence, may be empty
	Frame        int    // 0, 1 or 2
	SourceLength int    // nucleotide length of the source record
	Type         string
}

// Annotations returns the provenance metadata of the result.
func (r Result) Annotations() map[string]any {
	return map[string]any{
		"type":  r.Type,
		"frame": r.Frame,
	}
}

// Processor turns FASTA records into longest-ORF results.
type Processor struct {
	translator Translator
	logger     *zap.Logger
}

// NewProcessor creates a processor that translates with tr.
func NewProcessor(tr Translator) *Processor {
	return &Processor{
		translator: tr,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for debug and info messages.
func (p *Processor) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Process selects the longest ORF of a single record.
func (p *Processor) Process(index int, rec fasta.Record) (Result, error) {
	best, err := SelectLongest(rec.Seq, p.translator)
	if err != nil {
		return Result{}, fmt.Errorf("translate %s: %w", rec.ID, err)
	}
	return Result{
		Index:        index,
		ID:           rec.ID,
		Description:  rec.Description,
		ORF:          best.Fragment,
		Frame:        best.Frame,
		SourceLength: len(rec.Seq),
		Type:         ResultType,
	}, nil
}

// ProcessAll processes records in input order and returns one result per
// record, in the same order. It stops at the first record that fails to
// translate.
func (p *Processor) ProcessAll(records []fasta.Record) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for i, rec := range records {
		r, err := p.Process(i, rec)
		if err != nil {
			return nil, err
		}
		if r.ORF == "" {
			p.logger.Debug("no ORF found", zap.String("id", rec.ID), zap.Int("length", len(rec.Seq)))
		}
		results = append(results, r)
	}

	if len(records) == 0 {
		p.logger.Info("0 sequences processed")
	}

	return results, nil
}
