package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxUniqueAttempts bounds the numeric suffix search in UniqueDirPath and UniqueFilePath
const MaxUniqueAttempts = 10000

// ErrCollisionExhausted is returned when no free suffix was found within MaxUniqueAttempts
var ErrCollisionExhausted = errors.New("no free name found")

var (
	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// CleanName turns an arbitrary name into a safe folder/file token.
// Anything outside [A-Za-z0-9_] becomes an underscore, runs of underscores
// collapse to one and leading/trailing underscores are trimmed.
func CleanName(name string) string {
	clean := unsafeNameChars.ReplaceAllString(name, "_")
	clean = underscoreRuns.ReplaceAllString(clean, "_")
	return strings.Trim(clean, "_")
}

// UniqueDirPath returns path if nothing exists there, otherwise path_1, path_2, ...
func UniqueDirPath(path string) (string, error) {
	return uniquePath(path, func(i int) string {
		return fmt.Sprintf("%s_%d", path, i)
	})
}

// UniqueFilePath returns path if nothing exists there, otherwise inserts
// _1, _2, ... between the base name and the extension.
func UniqueFilePath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return uniquePath(path, func(i int) string {
		return fmt.Sprintf("%s_%d%s", base, i, ext)
	})
}

func uniquePath(path string, candidate func(int) string) (string, error) {
	if !Exists(path) {
		return path, nil
	}

	for i := 1; i <= MaxUniqueAttempts; i++ {
		next := candidate(i)
		if !Exists(next) {
			return next, nil
		}
	}

	return "", fmt.Errorf("%w for %s after %d attempts", ErrCollisionExhausted, path, MaxUniqueAttempts)
}

// Exists reports whether anything (file, directory or dangling symlink) lives at path
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
