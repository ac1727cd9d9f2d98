package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/fenilsonani/project-forge/internal/progress"
	"github.com/fenilsonani/project-forge/internal/ui/utils"
)

// LiveProgress redraws a single status line from progress updates while an
// organize runs in the foreground
type LiveProgress struct {
	mu         sync.Mutex
	w          io.Writer
	reporter   *progress.Reporter
	updates    <-chan progress.Update
	done       chan struct{}
	termWidth  int
	lastUpdate time.Time
	enabled    bool
	drawn      bool
}

// minRedraw throttles redraws to avoid flickering
const minRedraw = 100 * time.Millisecond

// NewLiveProgress creates a live progress line on w. It is only enabled
// when w is a terminal.
func NewLiveProgress(w io.Writer, reporter *progress.Reporter) *LiveProgress {
	lp := &LiveProgress{
		w:         w,
		reporter:  reporter,
		termWidth: utils.DefaultWidth,
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		lp.enabled = true
		lp.termWidth = utils.TerminalWidth(f)
	}
	return lp
}

// Enabled reports whether the line is drawn
func (lp *LiveProgress) Enabled() bool {
	return lp.enabled && lp.reporter != nil
}

// Start subscribes to the reporter and draws until Finish
func (lp *LiveProgress) Start() {
	if !lp.Enabled() {
		return
	}
	lp.updates = lp.reporter.Subscribe()
	lp.done = make(chan struct{})

	go func() {
		defer close(lp.done)
		for u := range lp.updates {
			lp.Update(u)
		}
	}()
}

// Update redraws the line for u. Intermediate updates closer than minRedraw
// are dropped; phase changes always draw.
func (lp *LiveProgress) Update(u progress.Update) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	if u.Phase == progress.PhaseOrganizing && now.Sub(lp.lastUpdate) < minRedraw {
		return
	}
	lp.lastUpdate = now

	line := progress.Format(&u)
	if u.CurrentFile != "" && u.Phase == progress.PhaseOrganizing {
		line += " " + u.CurrentFile
	}
	fmt.Fprintf(lp.w, "\r\033[K%s", utils.Truncate(line, lp.termWidth-1))
	lp.drawn = true
}

// Finish stops listening and clears the line
func (lp *LiveProgress) Finish() {
	if !lp.Enabled() || lp.updates == nil {
		return
	}
	lp.reporter.Unsubscribe(lp.updates)
	<-lp.done

	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.drawn {
		fmt.Fprint(lp.w, "\r\033[K")
	}
}
