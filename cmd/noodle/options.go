package main

import (
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Options holds the flag-parsed configuration for a single noodle run,
// grounded on alterx's internal/runner.Options: a flat struct of exported
// fields populated by goflags, with an optional YAML config file merged in
// underneath whatever the command line sets.
type Options struct {
	Patterns       goflags.StringSlice
	Wordlist       string
	Config         string
	Output         string
	MaxTupleLength int
	FuzzBudget     int
	OutputLimit    int
	timeoutRaw     string
	Timeout        time.Duration
	Unique         bool
	NoColor        bool
	Verbose        bool
	Silent         bool
}

// ParseFlags builds a FlagSet the way alterx's runner.ParseFlags does
// (grouped flags, gologger verbosity wiring, optional config-file merge)
// and returns the parsed Options.
func ParseFlags() (*Options, error) {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Noodle: a word-search engine for crossword and puzzle-hunt constructors.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&opts.Patterns, "pattern", "p", nil, "noodle pattern expression(s) to search for (comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.StringVarP(&opts.Wordlist, "wordlist", "w", "", "path to a wordlist file, one entry per line, optional leading score (plain or .gz)"),
		flagSet.StringVar(&opts.Config, "config", "", "path to a YAML session config merged underneath the command line"),
	)
	flagSet.CreateGroup("search", "Search",
		flagSet.IntVarP(&opts.MaxTupleLength, "max-words", "n", 1, "maximum number of words combined into a single candidate (1..10)"),
		flagSet.IntVarP(&opts.FuzzBudget, "fuzz", "k", 0, "maximum edit distance allowed per pattern"),
		flagSet.BoolVarP(&opts.Unique, "unique", "u", true, "suppress duplicate canonical concatenations"),
		flagSet.IntVarP(&opts.OutputLimit, "limit", "l", 0, "stop after this many results (0 = unbounded)"),
		flagSet.StringVarP(&opts.timeoutRaw, "timeout", "t", "", "stop after this long, e.g. \"30s\" (0 = unbounded)"),
	)
	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "write results to this file instead of stdout"),
		flagSet.BoolVar(&opts.NoColor, "no-color", false, "disable colorized output"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose diagnostic output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "suppress all output except results"),
	)

	if err := flagSet.Parse(); err != nil {
		return nil, errorutil.NewWithTag("noodle", "could not read flags: %v", err)
	}

	if opts.Config != "" {
		cfg, err := loadSessionConfig(opts.Config)
		if err != nil {
			return nil, errorutil.NewWithTag("noodle", "reading -config %q: %v", opts.Config, err)
		}
		applyConfig(opts, cfg)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.timeoutRaw != "" {
		d, err := time.ParseDuration(opts.timeoutRaw)
		if err != nil {
			return nil, errorutil.NewWithTag("noodle", "invalid -timeout %q: %v", opts.timeoutRaw, err)
		}
		opts.Timeout = d
	}

	if opts.Wordlist == "" {
		return nil, errorutil.New("no -wordlist given")
	}
	if len(opts.Patterns) == 0 {
		return nil, errorutil.New("no -pattern given")
	}

	return opts, nil
}
