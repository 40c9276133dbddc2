package orf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/vibe-orf/internal/fasta"
	"github.com/inodb/vibe-orf/internal/geneticcode"
)

func TestProcessor_ProcessAll(t *testing.T) {
	p := NewProcessor(geneticcode.MustLookup(geneticcode.Default))

	records := []fasta.Record{
		{ID: "seq1", Description: "seq1 Homo sapiens", Seq: "AATGGCTAAAGGG"},
		{ID: "seq2", Description: "seq2", Seq: ""},
		{ID: "seq3", Description: "seq3 tie", Seq: "ATGGCTAAAGGGTAA"},
	}

	results, err := p.ProcessAll(records)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Result{
		Index: 0, ID: "seq1", Description: "seq1 Homo sapiens",
		ORF: "MAKG", Frame: 1, SourceLength: 13, Type: ResultType,
	}, results[0])

	assert.Equal(t, "seq2", results[1].ID)
	assert.Equal(t, "", results[1].ORF)
	assert.Equal(t, 0, results[1].Frame)

	assert.Equal(t, 2, results[2].Index)
	assert.Equal(t, "MAKG", results[2].ORF)
	assert.Equal(t, 0, results[2].Frame)
}

func TestProcessor_Empty(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewProcessor(geneticcode.MustLookup(geneticcode.Default))
	p.SetLogger(zap.New(core))

	results, err := p.ProcessAll(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 1, logs.FilterMessage("0 sequences processed").Len())
}

func TestProcessor_LogsEmptyORF(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewProcessor(geneticcode.MustLookup(geneticcode.Default))
	p.SetLogger(zap.New(core))

	_, err := p.ProcessAll([]fasta.Record{{ID: "stops", Description: "stops", Seq: "TAA"}})
	require.NoError(t, err)

	entries := logs.FilterMessage("no ORF found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "stops", entries[0].ContextMap()["id"])
}

func TestProcessor_InvalidCodon(t *testing.T) {
	records := []fasta.Record{
		{ID: "ok", Description: "ok", Seq: "ATGAAA"},
		{ID: "gapped", Description: "gapped", Seq: "ATG---AAA"},
	}

	p := NewProcessor(geneticcode.MustLookup(geneticcode.Default))
	results, err := p.ProcessAll(records)
	require.Error(t, err)
	assert.ErrorIs(t, err, geneticcode.ErrInvalidCodon)
	assert.Contains(t, err.Error(), "translate gapped")
	assert.Nil(t, results)

	p = NewProcessor(geneticcode.MustLookup(geneticcode.Default).Lenient())
	results, err = p.ProcessAll(records)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "MXK", results[1].ORF)
}

func TestResult_Annotations(t *testing.T) {
	r := Result{Frame: 2, Type: ResultType}
	assert.Equal(t, map[string]any{"type": "longest ORF", "frame": 2}, r.Annotations())
}
