package organizer

import "fmt"

// SkipReason says why a file was not placed
type SkipReason string

const (
	ReasonUnclassified       SkipReason = "unclassified"
	ReasonCopyFailed         SkipReason = "copy_failed"
	ReasonCollisionExhausted SkipReason = "collision_exhausted"
	ReasonMkdirFailed        SkipReason = "mkdir_failed"
	ReasonVerifyFailed       SkipReason = "verify_failed"
	ReasonUnreadable         SkipReason = "unreadable"
)

// Placement is one successfully copied file
type Placement struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Size   int64  `json:"size" yaml:"size"`
}

// SkippedFile is a file that was looked at but not placed
type SkippedFile struct {
	Path    string     `json:"path" yaml:"path"`
	Reason  SkipReason `json:"reason" yaml:"reason"`
	Message string     `json:"error,omitempty" yaml:"error,omitempty"`
	Err     error      `json:"-" yaml:"-"`
}

// Report is the outcome of one Organize call. It is never persisted.
type Report struct {
	Source    string        `json:"source" yaml:"source"`
	Target    string        `json:"target" yaml:"target"`
	Organized []Placement   `json:"organized" yaml:"organized"`
	Skipped   []SkippedFile `json:"skipped" yaml:"skipped"`
}

func newReport(source, target string) *Report {
	return &Report{
		Source:    source,
		Target:    target,
		Organized: []Placement{},
		Skipped:   []SkippedFile{},
	}
}

func (r *Report) place(src, dst string, size int64) {
	r.Organized = append(r.Organized, Placement{Source: src, Target: dst, Size: size})
}

func (r *Report) skip(path string, reason SkipReason, err error) {
	s := SkippedFile{Path: path, Reason: reason, Err: err}
	if err != nil {
		s.Message = err.Error()
	}
	r.Skipped = append(r.Skipped, s)
}

// TotalBytes is the size of everything organized
func (r *Report) TotalBytes() int64 {
	var total int64
	for _, p := range r.Organized {
		total += p.Size
	}
	return total
}

// SkippedBy returns the skipped files with the given reason
func (r *Report) SkippedBy(reason SkipReason) []SkippedFile {
	var out []SkippedFile
	for _, s := range r.Skipped {
		if s.Reason == reason {
			out = append(out, s)
		}
	}
	return out
}

// Failures returns categorized errors for every skip caused by an I/O error.
// Unclassified files are not failures.
func (r *Report) Failures() []*CopyError {
	var out []*CopyError
	for _, s := range r.Skipped {
		if s.Err == nil {
			continue
		}
		out = append(out, CategorizeError(s.Path, s.Err))
	}
	return out
}

// Summary is a one-line count of the outcome
func (r *Report) Summary() string {
	return fmt.Sprintf("%d organized, %d skipped (%d unclassified)",
		len(r.Organized), len(r.Skipped), len(r.SkippedBy(ReasonUnclassified)))
}
