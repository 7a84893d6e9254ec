package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aevon-lab/merchant-pulse/internal/ingestion"
	"github.com/schollz/progressbar/v3"
)

// progressObserver renders written rows as a spinner for `pulse ingest`.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Ingesting activities"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("rows"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowElapsedTimeOnFinish(),
		),
	}
}

func (p *progressObserver) BatchWritten(records int, _ int64, _ time.Duration) {
	_ = p.bar.Add(records)
}

func (p *progressObserver) FileFinished(s ingestion.RunSummary) {
	p.bar.Describe(fmt.Sprintf("Ingesting activities (%s %s)", s.File, s.State))
}

func (p *progressObserver) finish() {
	_ = p.bar.Finish()
}
