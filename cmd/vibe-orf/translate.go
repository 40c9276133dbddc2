package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-orf/internal/config"
	"github.com/inodb/vibe-orf/internal/duckdb"
	"github.com/inodb/vibe-orf/internal/fasta"
	"github.com/inodb/vibe-orf/internal/geneticcode"
	"github.com/inodb/vibe-orf/internal/orf"
	"github.com/inodb/vibe-orf/internal/output"
)

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [input-file]",
		Short: "Write the longest ORF of every sequence in a FASTA file",
		Long: `Translate every nucleotide sequence in frames 0, 1 and 2 with a fixed genetic
code, split each translation at stop codons and keep the longest fragment.
One protein record is written per input record, in input order.`,
		Example: `  vibe-orf translate                                   # all_sequences.fasta -> translated.fas
  vibe-orf translate seqs.fa.gz -o proteins.fa
  vibe-orf translate seqs.fa --table 1 --summary orfs.tsv
  vibe-orf translate seqs.fa --db ~/.vibe-orf/results.duckdb --reuse
  cat seqs.fa | vibe-orf translate - -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				viper.Set(config.KeyInput, args[0])
			}
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return runTranslate(cfg, logger, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "translated.fas", "Output protein FASTA file ('-' for stdout)")
	f.Int("table", geneticcode.Default, "NCBI genetic code table (see 'vibe-orf tables')")
	f.String("summary", "", "Also write a tab-delimited summary to this file")
	f.String("db", "", "Record runs and results in this DuckDB database")
	f.Int("line-width", fasta.DefaultLineWidth, "Residues per output line (0 for no wrapping)")
	f.Bool("reuse", false, "Reuse stored results when the input file is unchanged (requires --db)")
	f.Bool("lenient", false, "Translate invalid codons (gaps, non-IUPAC symbols) to X instead of failing")

	_ = viper.BindPFlag(config.KeyOutput, f.Lookup("output"))
	_ = viper.BindPFlag(config.KeyTable, f.Lookup("table"))
	_ = viper.BindPFlag(config.KeySummary, f.Lookup("summary"))
	_ = viper.BindPFlag(config.KeyDB, f.Lookup("db"))
	_ = viper.BindPFlag(config.KeyLineWidth, f.Lookup("line-width"))
	_ = viper.BindPFlag(config.KeyReuse, f.Lookup("reuse"))
	_ = viper.BindPFlag(config.KeyLenient, f.Lookup("lenient"))

	return cmd
}

// runTranslate reads all records, selects their longest ORFs and writes the
// outputs. stdout receives the FASTA output when cfg.Output is "-".
func runTranslate(cfg config.Config, logger *zap.Logger, stdout io.Writer) error {
	tbl, err := geneticcode.Lookup(cfg.Table)
	if err != nil {
		return err
	}

	logger.Info("translating longest ORFs",
		zap.String("input", cfg.Input),
		zap.Int("table", tbl.ID),
		zap.String("code", tbl.Name),
		zap.Bool("lenient", cfg.Lenient))

	var store *duckdb.Store
	var fp duckdb.FileFingerprint
	if cfg.DB != "" {
		fp, err = duckdb.StatFile(cfg.Input)
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		store, err = duckdb.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var results []orf.Result
	reused := false
	if cfg.Reuse && store != nil {
		prev, err := store.FindRun(fp, tbl.ID, cfg.Lenient)
		if err != nil {
			return err
		}
		if prev != nil {
			results, err = store.RunResults(prev.ID)
			if err != nil {
				return err
			}
			reused = len(results) == prev.RecordCount
			if reused {
				logger.Info("input unchanged, reusing stored results",
					zap.String("run", prev.ID),
					zap.Time("started", prev.StartedAt))
			}
		}
	}

	if !reused {
		records, err := readRecords(cfg.Input)
		if err != nil {
			return err
		}
		logger.Info("read sequences", zap.Int("count", len(records)))

		var tr orf.Translator = tbl
		if cfg.Lenient {
			tr = tbl.Lenient()
		}
		p := orf.NewProcessor(tr)
		p.SetLogger(logger)
		results, err = p.ProcessAll(records)
		if err != nil {
			return err
		}

		if store != nil {
			run := duckdb.NewRun(fp, tbl.ID, len(results))
			run.Lenient = cfg.Lenient
			if err := store.RecordRun(run); err != nil {
				return err
			}
			if err := store.WriteResults(run.ID, results); err != nil {
				return err
			}
			logger.Info("stored results", zap.String("run", run.ID), zap.String("db", store.Path()))
		}
	}

	newFASTA := func(w io.Writer) output.ResultWriter { return output.NewFASTAWriter(w, cfg.LineWidth) }
	if err := writeResults(cfg.Output, stdout, newFASTA, results); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	if cfg.Summary != "" {
		newTab := func(w io.Writer) output.ResultWriter { return output.NewTabWriter(w) }
		if err := writeResults(cfg.Summary, stdout, newTab, results); err != nil {
			return fmt.Errorf("write %s: %w", cfg.Summary, err)
		}
	}

	logger.Info("wrote longest ORFs",
		zap.Int("records", len(results)),
		zap.String("output", cfg.Output))
	return nil
}

func readRecords(path string) ([]fasta.Record, error) {
	r, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// writeResults writes results to path, or to stdout when path is "-".
func writeResults(path string, stdout io.Writer, newWriter func(io.Writer) output.ResultWriter, results []orf.Result) error {
	if path == "-" {
		return output.WriteAll(newWriter(stdout), results)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteAll(newWriter(f), results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
