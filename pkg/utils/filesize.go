package utils

import "fmt"

// FormatBytes renders a byte count as B, KB, MB, GB or TB
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < 0 {
		return "0 B"
	}
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}
