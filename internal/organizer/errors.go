package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"syscall"

	"github.com/fenilsonani/project-forge/pkg/utils"
)

// Errors that abort Organize before any file is touched
var (
	ErrSourceNotFound = errors.New("source path does not exist")
	ErrSourceNotDir   = errors.New("source path is not a directory")
)

// ErrorReason categorizes why a file could not be placed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileNotFound
	ErrorNoSpace
	ErrorIsDirectory
	ErrorReadOnly
	ErrorCollision
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorNoSpace:
		return "No space left on device"
	case ErrorIsDirectory:
		return "Is a directory"
	case ErrorReadOnly:
		return "Read-only file system"
	case ErrorCollision:
		return "Too many name collisions"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// CopyError is a categorized per-file failure
type CopyError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *CopyError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap returns the original error
func (e *CopyError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *CopyError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("Permission denied: %s", e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("Vanished before it could be copied: %s", e.Path)
	case ErrorNoSpace:
		return fmt.Sprintf("Disk full while copying: %s", e.Path)
	case ErrorIsDirectory:
		return fmt.Sprintf("Destination is a directory: %s", e.Path)
	case ErrorReadOnly:
		return fmt.Sprintf("Target is read-only: %s", e.Path)
	case ErrorCollision:
		return fmt.Sprintf("No free name for %s", e.Path)
	default:
		return fmt.Sprintf("Error copying %s: %v", e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized CopyError
func CategorizeError(path string, err error) *CopyError {
	if err == nil {
		return nil
	}

	copyErr := &CopyError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	switch {
	case errors.Is(err, utils.ErrCollisionExhausted):
		copyErr.Reason = ErrorCollision
		return copyErr
	case errors.Is(err, fs.ErrNotExist):
		copyErr.Reason = ErrorFileNotFound
		return copyErr
	case errors.Is(err, fs.ErrPermission):
		copyErr.Reason = ErrorPermissionDenied
		return copyErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			copyErr.Reason = ErrorPermissionDenied
		case syscall.ENOENT:
			copyErr.Reason = ErrorFileNotFound
		case syscall.ENOSPC:
			copyErr.Reason = ErrorNoSpace
		case syscall.EISDIR:
			copyErr.Reason = ErrorIsDirectory
		case syscall.EROFS:
			copyErr.Reason = ErrorReadOnly
		}
	}

	return copyErr
}

// GroupErrors groups copy errors by reason
func GroupErrors(errs []*CopyError) map[ErrorReason][]*CopyError {
	grouped := make(map[ErrorReason][]*CopyError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*CopyError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)

	reasons := make([]ErrorReason, 0, len(grouped))
	for reason := range grouped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })

	var b strings.Builder
	b.WriteString("\nIssues encountered:\n")
	for i, reason := range reasons {
		branch := "├─"
		if i == len(reasons)-1 {
			branch = "└─"
		}
		fmt.Fprintf(&b, "   %s %s: %d files\n", branch, reason, len(grouped[reason]))

		if tip := reasonTip(reason); tip != "" {
			stem := "│"
			if i == len(reasons)-1 {
				stem = " "
			}
			fmt.Fprintf(&b, "   %s  └─ Tip: %s\n", stem, tip)
		}
	}

	return b.String()
}

func reasonTip(reason ErrorReason) string {
	switch reason {
	case ErrorPermissionDenied:
		return "Check read access on the source and write access on the project"
	case ErrorNoSpace:
		return "Free up space on the target volume and run organize again"
	case ErrorReadOnly:
		return "Pick a writable base path"
	case ErrorCollision:
		return "Clean up duplicate files in the target folder"
	default:
		return ""
	}
}
