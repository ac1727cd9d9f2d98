package platform

import "path/filepath"

// getLinuxInfo returns platform-specific information for Linux and WSL.
// Projects are never created in or directly under these paths.
func getLinuxInfo(homeDir, username string) *Info {
	return &Info{
		OS:       Linux,
		HomeDir:  homeDir,
		Username: username,
		ProtectedPaths: []string{
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/home",
			"/lib",
			"/lib64",
			"/opt",
			"/proc",
			"/root",
			"/run",
			"/sbin",
			"/srv",
			"/sys",
			"/usr",
			"/var",
			"/mnt",
			filepath.Join(homeDir, ".config"),
			filepath.Join(homeDir, ".local"),
			filepath.Join(homeDir, ".cache"),
		},
	}
}
