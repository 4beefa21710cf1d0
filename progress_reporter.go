package main

import (
	"fmt"
	"io"

	"github.com/grutapig/ytcomments/comments"
)

// ConsoleProgress prints progress whenever the rounded fraction moves,
// and at least every `every` rows when the total is unknown.
type ConsoleProgress struct {
	out          io.Writer
	every        int
	lastFraction float64
	reported     bool
}

func NewConsoleProgress(out io.Writer, every int) *ConsoleProgress {
	if every <= 0 {
		every = 100
	}
	return &ConsoleProgress{
		out:   out,
		every: every,
	}
}

func (p *ConsoleProgress) Report(progress comments.Progress) {
	fraction := progress.Fraction()
	if progress.Total > 0 {
		if p.reported && fraction == p.lastFraction {
			return
		}
		fmt.Fprintf(p.out, "📥 Scraped %d/%d comments (%.0f%%)\n", progress.Scraped, progress.Total, fraction*100)
	} else {
		if progress.Scraped%p.every != 0 {
			return
		}
		fmt.Fprintf(p.out, "📥 Scraped %d comments\n", progress.Scraped)
	}
	p.lastFraction = fraction
	p.reported = true
}
