package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/moffa90/go-efm8/bootloader"
)

// progressReporter renders session progress as a byte progress bar.
type progressReporter struct {
	bar     *progressbar.ProgressBar
	written int
	phase   string
}

func newProgressReporter(out io.Writer, total int) *progressReporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(bootloader.PhaseSetup),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(out, "\n") }),
	)
	return &progressReporter{bar: bar}
}

func (p *progressReporter) update(progress bootloader.Progress) {
	if progress.Phase != p.phase {
		p.phase = progress.Phase
		p.bar.Describe(progress.Phase)
	}

	if progress.BytesWritten > p.written {
		_ = p.bar.Add(progress.BytesWritten - p.written)
		p.written = progress.BytesWritten
	}

	if progress.Phase == bootloader.PhaseComplete {
		_ = p.bar.Finish()
	}
}
