package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir, username string) *Info {
	return &Info{
		OS:       MacOS,
		HomeDir:  homeDir,
		Username: username,
		ProtectedPaths: []string{
			"/",
			"/System",
			"/Library",
			"/Applications",
			"/bin",
			"/sbin",
			"/usr",
			"/private",
			"/private/etc",
			"/private/var",
			"/Volumes",
			"/Users",
			filepath.Join(homeDir, "Library"),
			filepath.Join(homeDir, ".config"),
		},
	}
}
