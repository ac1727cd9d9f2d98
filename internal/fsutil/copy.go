// Package fsutil holds the copy primitives shared by the organizer and the
// software copier.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFile copies a regular file, keeping its permission bits and mtime.
// Data goes to a temp file next to dst first and is renamed into place,
// so an interrupted copy never leaves a truncated dst. An existing dst is
// replaced.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: errors.New("is a directory")}
	}

	// fixed-length temp name so any dst name that fits also fits here
	part, err := os.CreateTemp(filepath.Dir(dst), ".forge-*.part")
	if err != nil {
		return err
	}
	partPath := part.Name()

	_, err = io.Copy(part, srcFile)
	if closeErr := part.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(partPath, info.Mode().Perm())
	}
	if err == nil {
		err = os.Chtimes(partPath, info.ModTime(), info.ModTime())
	}
	if err == nil {
		err = os.Rename(partPath, dst)
	}
	if err != nil {
		os.Remove(partPath)
		return err
	}

	return nil
}

// CopySymlink recreates the link at src as dst with the same target
func CopySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, dst)
}

// MergeTree copies the contents of src into dst. Existing files in dst are
// overwritten, other entries of dst are left alone. Symlinks are copied as
// links, except src itself, which is followed. Every entry is attempted;
// the failures are returned joined.
func MergeTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", src)
	}
	if src, err = filepath.EvalSymlinks(src); err != nil {
		return err
	}

	var errs []error
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		out := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			if err := CopySymlink(path, out); err != nil {
				errs = append(errs, fmt.Errorf("link %s: %w", rel, err))
			}
		case d.IsDir():
			if err := ensureDir(path, out); err != nil {
				errs = append(errs, fmt.Errorf("mkdir %s: %w", rel, err))
				return filepath.SkipDir
			}
		case d.Type().IsRegular():
			if err := CopyFile(path, out); err != nil {
				errs = append(errs, fmt.Errorf("copy %s: %w", rel, err))
			}
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	return errors.Join(errs...)
}

// ReplaceTree removes dst and copies src in its place
func ReplaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dst, err)
	}
	return MergeTree(src, dst)
}

// CopyEntry copies a file, symlink or directory. Directories replace dst.
func CopyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return CopySymlink(src, dst)
	case info.IsDir():
		return ReplaceTree(src, dst)
	default:
		return CopyFile(src, dst)
	}
}

// ensureDir creates out with the mode of the source directory. An
// existing non-directory at out is replaced.
func ensureDir(src, out string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if existing, err := os.Lstat(out); err == nil && !existing.IsDir() {
		if err := os.Remove(out); err != nil {
			return err
		}
	}

	return os.MkdirAll(out, info.Mode().Perm()|0700)
}
