// Package config holds the vibe-orf settings unmarshalled from viper
// (config file, environment and command-line flags; see cmd/vibe-orf).
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/inodb/vibe-orf/internal/fasta"
	"github.com/inodb/vibe-orf/internal/geneticcode"
)

// Keys used in the config file and for flag binding.
const (
	KeyInput     = "input"
	KeyOutput    = "output"
	KeyTable     = "table"
	KeySummary   = "summary"
	KeyDB        = "db"
	KeyLineWidth = "line_width"
	KeyReuse     = "reuse"
	KeyLenient   = "lenient"
	KeyVerbose   = "verbose"
)

// EnvPrefix is the prefix of environment variables read by viper.
const EnvPrefix = "VIBE_ORF"

// Config is the root-level settings struct.
type Config struct {
	// FASTA file of nucleotide sequences, "-" for stdin
	Input string `mapstructure:"input"`
	// protein FASTA written with one longest ORF per input record
	Output string `mapstructure:"output"`
	// NCBI genetic code table ID
	Table int `mapstructure:"table"`
	// optional tab-delimited summary path
	Summary string `mapstructure:"summary"`
	// optional DuckDB results database path
	DB string `mapstructure:"db"`
	// residues per output FASTA line, 0 for no wrapping
	LineWidth int `mapstructure:"line_width"`
	// reuse stored results when the input is unchanged (requires DB)
	Reuse bool `mapstructure:"reuse"`
	// translate invalid codons to X instead of failing
	Lenient bool `mapstructure:"lenient"`
	// debug logging
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "all_sequences.fasta")
	v.SetDefault(KeyOutput, "translated.fas")
	v.SetDefault(KeyTable, geneticcode.Default)
	v.SetDefault(KeySummary, "")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyLineWidth, fasta.DefaultLineWidth)
	v.SetDefault(KeyReuse, false)
	v.SetDefault(KeyLenient, false)
	v.SetDefault(KeyVerbose, false)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if _, err := geneticcode.Lookup(c.Table); err != nil {
		return err
	}
	if c.LineWidth < 0 {
		return fmt.Errorf("line width must not be negative, got %d", c.LineWidth)
	}
	if c.Reuse && c.DB == "" {
		return errors.New("reuse requires a results database (--db)")
	}
	return nil
}
