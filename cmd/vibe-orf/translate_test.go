package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inodb/vibe-orf/internal/config"
	"github.com/inodb/vibe-orf/internal/duckdb"
	"github.com/inodb/vibe-orf/internal/geneticcode"
)

const testInput = `>seq1 first
AATGGCTAAAGGG
>seq2
TAA
>seq3 tie
ATGGCTAAAGGGTAA
`

func writeInput(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "all_sequences.fasta")
	require.NoError(t, os.WriteFile(path, []byte(testInput), 0644))
	return dir, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRunTranslate(t *testing.T) {
	dir, input := writeInput(t)
	cfg := config.Config{
		Input:     input,
		Output:    filepath.Join(dir, "translated.fas"),
		Summary:   filepath.Join(dir, "orfs.tsv"),
		Table:     2,
		LineWidth: 60,
	}

	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))

	assert.Equal(t, ">seq1 first\nMAKG\n>seq2\n>seq3 tie\nMAKG\n", readFile(t, cfg.Output))

	want := strings.Join([]string{
		"#ID\tFrame\tORF_length\tSource_length\tType\tDescription",
		"seq1\t1\t4\t13\tlongest ORF\tseq1 first",
		"seq2\t0\t0\t3\tlongest ORF\tseq2",
		"seq3\t0\t4\t15\tlongest ORF\tseq3 tie",
	}, "\n") + "\n"
	assert.Equal(t, want, readFile(t, cfg.Summary))
}

func TestRunTranslate_Stdout(t *testing.T) {
	_, input := writeInput(t)
	cfg := config.Config{Input: input, Output: "-", Table: 2, LineWidth: 2}

	var out bytes.Buffer
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &out))
	assert.Equal(t, ">seq1 first\nMA\nKG\n>seq2\n>seq3 tie\nMA\nKG\n", out.String())
}

func TestRunTranslate_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Input:  filepath.Join(dir, "missing.fasta"),
		Output: filepath.Join(dir, "out.fas"),
		Table:  2,
	}

	err := runTranslate(cfg, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open FASTA file")
}

func TestRunTranslate_UnknownTable(t *testing.T) {
	_, input := writeInput(t)
	cfg := config.Config{Input: input, Output: "-", Table: 99}

	err := runTranslate(cfg, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown genetic code")
}

func TestRunTranslate_InvalidCodon(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "gapped.fasta")
	require.NoError(t, os.WriteFile(input, []byte(">ok\nATGAAA\n>gapped aligned\nATG---AAA\n"), 0644))

	cfg := config.Config{
		Input:     input,
		Output:    filepath.Join(dir, "translated.fas"),
		Table:     2,
		LineWidth: 60,
		DB:        filepath.Join(dir, "results.duckdb"),
	}

	err := runTranslate(cfg, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, geneticcode.ErrInvalidCodon)
	assert.Contains(t, err.Error(), "translate gapped")
	assert.NoFileExists(t, cfg.Output)

	cfg.Lenient = true
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))
	assert.Equal(t, ">ok\nMK\n>gapped aligned\nMXK\n", readFile(t, cfg.Output))

	store, err := duckdb.Open(cfg.DB)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Lenient)
}

func TestRunTranslate_StoreAndReuse(t *testing.T) {
	dir, input := writeInput(t)
	dbFile := filepath.Join(dir, "results.duckdb")
	cfg := config.Config{
		Input:     input,
		Output:    filepath.Join(dir, "translated.fas"),
		Table:     2,
		LineWidth: 60,
		DB:        dbFile,
		Reuse:     true,
	}

	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))
	first := readFile(t, cfg.Output)

	// Unchanged input: stored results are reused and no new run is recorded
	require.NoError(t, os.Remove(cfg.Output))
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))
	assert.Equal(t, first, readFile(t, cfg.Output))

	store, err := duckdb.Open(dbFile)
	require.NoError(t, err)
	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].RecordCount)

	found, err := store.LookupSequence("seq1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "MAKG", found[0].ORF)
	assert.Equal(t, 1, found[0].Frame)
	require.NoError(t, store.Close())

	// A different table is a new run
	cfg.Table = 1
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))

	store, err = duckdb.Open(dbFile)
	require.NoError(t, err)
	defer store.Close()
	runs, err = store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestTablesCmd(t *testing.T) {
	cmd := newTablesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "#ID\tStops\tName", lines[0])
	assert.Equal(t, "1\tTAA,TAG,TGA\tStandard", lines[1])
	assert.Equal(t, "2\tTAA,TAG,AGA,AGG\tVertebrate Mitochondrial (default)", lines[2])
}

func TestResultsCmd(t *testing.T) {
	dir, input := writeInput(t)
	dbFile := filepath.Join(dir, "results.duckdb")
	cfg := config.Config{
		Input:  input,
		Output: filepath.Join(dir, "translated.fas"),
		Table:  2,
		DB:     dbFile,
	}
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))

	cmd := newResultsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbFile, "seq3"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 5)
	assert.Equal(t, []string{"2", "0", "4", "MAKG"}, fields[1:])

	cmd = newResultsCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbFile, "nope"})
	assert.Error(t, cmd.Execute())
}

func TestRunsCmd(t *testing.T) {
	dir, input := writeInput(t)
	dbFile := filepath.Join(dir, "results.duckdb")
	cfg := config.Config{Input: input, Output: filepath.Join(dir, "out.fas"), Table: 2, DB: dbFile}
	require.NoError(t, runTranslate(cfg, zap.NewNop(), &bytes.Buffer{}))

	cmd := newRunsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbFile})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, input, fields[2])
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "false", fields[4])
	assert.Equal(t, "3", fields[5])

	cmd = newRunsCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", dbFile, "--clear"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Cleared 1 runs from "+dbFile+"\n", out.String())

	store, err := duckdb.Open(dbFile)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
