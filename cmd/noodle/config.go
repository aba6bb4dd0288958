package main

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
)

// sessionConfig is an optional on-disk session description, grounded on
// alterx.Config / internal/runner/config.go's yaml.Unmarshal pattern: a
// plain struct with yaml tags, loaded once and used to fill in any flag the
// command line left at its zero value. The command line always wins over
// the file.
type sessionConfig struct {
	Patterns       []string `yaml:"patterns"`
	Wordlist       string   `yaml:"wordlist"`
	MaxTupleLength int      `yaml:"maxWords"`
	FuzzBudget     int      `yaml:"fuzz"`
	OutputLimit    int      `yaml:"limit"`
	Timeout        string   `yaml:"timeout"`
}

func loadSessionConfig(path string) (*sessionConfig, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg sessionConfig
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		gologger.Error().Msgf("noodle session config syntax error.\n%v\n", yaml.FormatError(err, true, true))
		return nil, err
	}
	return &cfg, nil
}

// applyConfig fills any Options field still at its flag default from cfg.
// Slice and path fields are only filled when empty; numeric fields that
// carry a meaningful non-zero default (MaxTupleLength defaults to 1) are
// filled only when the file specifies a positive value.
func applyConfig(opts *Options, cfg *sessionConfig) {
	if len(opts.Patterns) == 0 && len(cfg.Patterns) > 0 {
		opts.Patterns = cfg.Patterns
	}
	if opts.Wordlist == "" && cfg.Wordlist != "" {
		opts.Wordlist = cfg.Wordlist
	}
	if opts.MaxTupleLength <= 1 && cfg.MaxTupleLength > 0 {
		opts.MaxTupleLength = cfg.MaxTupleLength
	}
	if opts.FuzzBudget == 0 && cfg.FuzzBudget > 0 {
		opts.FuzzBudget = cfg.FuzzBudget
	}
	if opts.OutputLimit == 0 && cfg.OutputLimit > 0 {
		opts.OutputLimit = cfg.OutputLimit
	}
	if opts.timeoutRaw == "" && cfg.Timeout != "" {
		opts.timeoutRaw = cfg.Timeout
	}
}
