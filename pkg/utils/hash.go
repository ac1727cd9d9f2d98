package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashFile computes SHA256 hash of a file
func HashFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// VerifyCopy checks that dst has the same content as src
func VerifyCopy(src, dst string) error {
	srcHash, err := HashFile(src)
	if err != nil {
		return fmt.Errorf("hash source: %w", err)
	}

	dstHash, err := HashFile(dst)
	if err != nil {
		return fmt.Errorf("hash copy: %w", err)
	}

	if srcHash != dstHash {
		return fmt.Errorf("checksum mismatch: %s != %s", srcHash[:12], dstHash[:12])
	}

	return nil
}
