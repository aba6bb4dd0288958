// Command noodle is the CLI entry point exercising the engine's full call
// surface (§6): compiling patterns, loading a wordlist, running a combo
// search to completion (or to a deadline/output limit), and printing
// results, in the manner of alterx's cmd/alterx/main.go.
package main

import (
	"os"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/zbanks-noodle/noodle/combo"
	"github.com/zbanks-noodle/noodle/nx"
	"github.com/zbanks-noodle/noodle/wordlist"
)

func main() {
	opts, err := ParseFlags()
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}

	diag := nx.NewDiag("noodle", opts.Verbose)

	words, err := wordlist.Load(opts.Wordlist, diag)
	if err != nil {
		gologger.Fatal().Msgf("loading wordlist: %v", err)
	}
	gologger.Info().Msgf("loaded %d words from %s", words.Len(), opts.Wordlist)

	programs := make([]*nx.Program, 0, len(opts.Patterns))
	ks := make([]int, 0, len(opts.Patterns))
	flags := nx.DefaultFlags()
	flags.FuzzCap = opts.FuzzBudget
	for _, expr := range opts.Patterns {
		p, err := nx.Compile(expr, flags)
		if err != nil {
			gologger.Fatal().Msgf("compiling %q: %v", expr, err)
		}
		gologger.Verbose().Msgf("%s", p.Debug())
		programs = append(programs, p)
		ks = append(ks, opts.FuzzBudget)
	}

	maxLen := opts.MaxTupleLength
	if maxLen < 1 {
		maxLen = 1
	}
	eng, err := combo.NewEngine(programs, ks, words, maxLen, diag)
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("opening -output %q: %v", opts.Output, err)
		}
		defer f.Close()
		out = f
	}
	p := newPrinter(out, opts.NoColor, opts.Unique)

	cursor := combo.NewCursor()
	runOnce(eng, cursor, p, opts)

	for !cursor.IsDone() {
		p.noticef("BUDGET_EXCEEDED: suspended after %d results, resuming", cursor.OutputIndex())
		runOnce(eng, cursor, p, opts)
	}

	gologger.Info().Msgf("done: %d results (%s)", p.count, eng.Debug())
}

// runOnce sets the cursor's next stopping point from opts and runs the
// engine once. Run suspends cleanly at the next recursion boundary once
// either bound is hit; IsDone distinguishes that suspension from a fully
// exhausted search (§7: BUDGET_EXCEEDED is not an error).
func runOnce(eng *combo.Engine, cursor *combo.Cursor, sink combo.Sink, opts *Options) {
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	target := 0
	if opts.OutputLimit > 0 {
		target = cursor.OutputIndex() + opts.OutputLimit
	}
	cursor.SetDeadline(deadline, target)
	eng.Run(cursor, sink)
}
