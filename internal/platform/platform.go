package platform

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	WSL     Platform = "wsl"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths
type Info struct {
	OS             Platform
	HomeDir        string
	Username       string
	ProtectedPaths []string
}

// procVersion is read to tell WSL apart from plain Linux
var procVersion = "/proc/version"

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		if isWSL() {
			return WSL
		}
		return Linux
	default:
		return Unknown
	}
}

func isWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	data, err := os.ReadFile(procVersion)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	platform := Detect()

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	homeDir := currentUser.HomeDir
	username := currentUser.Username

	var info *Info

	switch platform {
	case MacOS:
		info = getMacOSInfo(homeDir, username)
	case Linux, WSL:
		info = getLinuxInfo(homeDir, username)
		info.OS = platform
	default:
		return nil, ErrUnsupportedPlatform
	}

	return info, nil
}

// HomeDir returns the current user's home directory
func HomeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", err
	}
	return currentUser.HomeDir, nil
}

// GetUserConfigDir returns the directory project-forge keeps its config in
func GetUserConfigDir() (string, error) {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return configDir, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// DefaultBasePath is used when no base path is configured
func DefaultBasePath() string {
	home, err := HomeDir()
	if err != nil {
		return "Projects"
	}
	return filepath.Join(home, "Projects")
}

// NormalizePath turns user input into a usable local path.
//
// A Windows drive path such as `C:\Users\me` becomes /mnt/c/Users/me, the
// way WSL mounts drives. A leading ~ is expanded to the home directory.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}

	if isDrivePath(path) {
		drive := strings.ToLower(path[:1])
		rest := strings.TrimLeft(strings.ReplaceAll(path[2:], `\`, "/"), "/")
		if rest == "" {
			return "/mnt/" + drive
		}
		return "/mnt/" + drive + "/" + rest
	}

	return ExpandHome(path)
}

func isDrivePath(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ExpandHome replaces a leading "~" or "~/" with the home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := HomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Errors
var (
	ErrUnsupportedPlatform = &PlatformError{"unsupported platform"}
)

// PlatformError represents a platform-related error
type PlatformError struct {
	Message string
}

func (e *PlatformError) Error() string {
	return e.Message
}
