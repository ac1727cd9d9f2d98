package software

import "github.com/fenilsonani/project-forge/internal/detector"

// Layout is the fixed set of top-level entries copied verbatim for a type
type Layout struct {
	Directories []string
	Files       []string
}

// LibrariesDir is the Arduino library folder, looked up next to the source too
const LibrariesDir = "libraries"

var layouts = map[detector.ProjectType]Layout{
	detector.TypePlatformIO: {
		Directories: []string{".pio", ".vscode", "include", "lib", "src", "test", "boards", "scripts", "data"},
		Files:       []string{"platformio.ini", ".gitignore", "README.md", "library.json", "library.properties"},
	},
	detector.TypeArduino: {
		Directories: []string{LibrariesDir, ".vscode", "build", "data"},
		Files:       []string{"arduino.json", "c_cpp_properties.json", ".gitignore", "README.md"},
	},
	detector.TypeGeneral: {
		Directories: []string{"src", "include", "lib", "test", "docs", "build", ".vscode"},
		Files:       []string{"CMakeLists.txt", "Makefile", "README.md", ".gitignore"},
	},
}

// LayoutFor returns the preserve table for t. None has no layout.
func LayoutFor(t detector.ProjectType) (Layout, bool) {
	l, ok := layouts[t]
	if !ok {
		return Layout{}, false
	}
	return Layout{
		Directories: append([]string(nil), l.Directories...),
		Files:       append([]string(nil), l.Files...),
	}, true
}

// Names returns every directory and file name of the layout
func (l Layout) Names() []string {
	names := make([]string, 0, len(l.Directories)+len(l.Files))
	names = append(names, l.Directories...)
	return append(names, l.Files...)
}
