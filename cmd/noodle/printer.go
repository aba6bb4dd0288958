package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zbanks-noodle/noodle/combo"
)

// printer renders combo results to an output stream, colorizing matches
// green and suspension/progress notices yellow in the manner of edirect's
// xplore.go COLOR directive (color.New().Add(color.FgX), then a
// SprintFunc-derived formatter). Colorizing is disabled outright when
// noColor is set; otherwise fatih/color's own global detection decides,
// which looks at stdout rather than at w.
type printer struct {
	w        io.Writer
	matchFn  func(a ...any) string
	noticeFn func(a ...any) string
	seen     map[string]struct{}
	count    int
}

func newPrinter(w io.Writer, noColor, unique bool) *printer {
	if noColor {
		color.NoColor = true
	}
	match := color.New(color.FgGreen)
	notice := color.New(color.FgYellow)
	p := &printer{
		w:        w,
		matchFn:  match.SprintFunc(),
		noticeFn: notice.SprintFunc(),
	}
	if unique {
		p.seen = make(map[string]struct{})
	}
	return p
}

// Add implements combo.Sink, printing one colorized line per new result and
// suppressing duplicates when the printer was built with unique=true.
func (p *printer) Add(canonical string, tuple []int) bool {
	if p.seen != nil {
		if _, ok := p.seen[canonical]; ok {
			return false
		}
		p.seen[canonical] = struct{}{}
	}
	p.count++
	fmt.Fprintln(p.w, p.matchFn(canonical))
	return true
}

func (p *printer) noticef(format string, args ...any) {
	fmt.Fprintln(p.w, p.noticeFn(fmt.Sprintf(format, args...)))
}

var _ combo.Sink = (*printer)(nil)
