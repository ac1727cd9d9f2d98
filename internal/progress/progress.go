package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/project-forge/pkg/utils"
)

// Phase represents the current phase of an organize run
type Phase string

const (
	PhaseDetecting  Phase = "detecting"
	PhasePreserving Phase = "preserving"
	PhaseOrganizing Phase = "organizing"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// Update is one progress snapshot. Listeners receive copies.
type Update struct {
	Phase       Phase
	ProjectType string
	CurrentFile string
	Organized   int
	Skipped     int
	CopiedBytes int64
	StartTime   time.Time
	Error       error
}

// Reporter fans progress out to listeners without ever blocking the sender
type Reporter struct {
	current   *Update
	mu        sync.RWMutex
	listeners []chan Update
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan Update, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Update, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Close unsubscribes every listener
func (r *Reporter) Close() {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, listener := range r.listeners {
		close(listener)
	}
	r.listeners = nil
}

// Publish stores u and notifies listeners. Full listeners miss the update.
// Safe on a nil Reporter.
func (r *Reporter) Publish(u Update) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := u
	r.current = &snapshot

	// sends never block, and holding the lock keeps Unsubscribe from
	// closing a channel mid-send
	for _, listener := range r.listeners {
		select {
		case listener <- u:
		default:
		}
	}
}

// Current returns the latest update, or nil before the first one
func (r *Reporter) Current() *Update {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	u := *r.current
	return &u
}

// Format returns a one-line human-readable progress string
func Format(u *Update) string {
	if u == nil {
		return "Preparing..."
	}

	elapsed := time.Since(u.StartTime)

	switch u.Phase {
	case PhaseDetecting:
		return "Detecting project type..."
	case PhasePreserving:
		return fmt.Sprintf("Preserving %s project structure...", u.ProjectType)
	case PhaseOrganizing:
		return fmt.Sprintf("Organizing... %d files (%s), %d skipped",
			u.Organized,
			utils.FormatBytes(u.CopiedBytes),
			u.Skipped)
	case PhaseComplete:
		return fmt.Sprintf("Organized %d files (%s), %d skipped in %s",
			u.Organized,
			utils.FormatBytes(u.CopiedBytes),
			u.Skipped,
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Organize error: %v", u.Error)
	default:
		return "Preparing..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
