package detector

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/project-forge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultMarkers = Markers{
	Files:       []string{"platformio.ini", "CMakeLists.txt", "Makefile", "package.json", "requirements.txt", "setup.py", "pyproject.toml"},
	Directories: []string{"src", "include", "lib", "test"},
}

func TestDetectPlatformIO(t *testing.T) {
	f := testutil.NewFixture(t)
	f.PopulatePlatformIO()

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypePlatformIO, got.Type)
	assert.Empty(t, got.SketchDir)
	assert.True(t, got.IsSoftware())
}

func TestDetectPlatformIOWinsOverArduino(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("platformio.ini", "[env]")
	f.SourceFile("examples/blink/blink.ino", "void setup() {}")

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypePlatformIO, got.Type)
}

func TestDetectNestedPlatformIOIsNotRoot(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("firmware/platformio.ini", "[env]")

	got, err := New(Markers{}).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got.Type, "only a root platformio.ini marks PlatformIO")
}

func TestDetectArduino(t *testing.T) {
	f := testutil.NewFixture(t)
	f.PopulateArduinoSketch("arduino", "sketch")

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeArduino, got.Type)
	assert.Equal(t, f.SourceDir, got.SketchDir)
	assert.Equal(t, "sketch", filepath.Base(got.SketchDir))
}

func TestDetectArduinoTieBreakIsLexicographic(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("zeta/zeta.ino", "")
	f.SourceFile("alpha/beta/beta.ino", "")
	f.SourceFile("alpha.ino", "")

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	require.Equal(t, TypeArduino, got.Type)

	// "alpha.ino" sorts before "alpha/beta/beta.ino" ('.' < '/')
	assert.Equal(t, f.SourceDir, got.SketchDir)
}

func TestDetectArduinoUppercaseExtension(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("Blink/Blink.INO", "")

	got, err := New(Markers{}).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeArduino, got.Type)
	assert.Equal(t, filepath.Join(f.SourceDir, "Blink"), got.SketchDir)
}

func TestDetectGeneral(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		markers Markers
	}{
		{"makefile at root", []string{"Makefile"}, defaultMarkers},
		{"nested package.json", []string{"web/client/package.json"}, defaultMarkers},
		{"marker directory", []string{"src/notes.txt"}, Markers{Directories: []string{"src"}}},
		{"glob marker", []string{"App/App.csproj"}, Markers{Files: []string{"*.csproj"}}},
		{"path marker", []string{"tools/ci/config.yml"}, Markers{Files: []string{"ci/config.yml"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.NewFixture(t)
			for _, p := range tt.files {
				f.SourceFile(p, "x")
			}

			got, err := New(tt.markers).Detect(f.SourceDir)
			require.NoError(t, err)
			assert.Equal(t, TypeGeneral, got.Type)
		})
	}
}

func TestDetectMarkerDirectoryMustBeDirectory(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("notes/src", "a file named src")

	got, err := New(Markers{Directories: []string{"src"}}).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got.Type)
}

func TestDetectNone(t *testing.T) {
	f := testutil.NewFixture(t)
	f.SourceFile("a.txt", "hello")
	f.SourceFile("img/photo.png", "png")

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got.Type)
	assert.False(t, got.IsSoftware())
	assert.Equal(t, "none", got.String())
}

func TestDetectEmptyDirectory(t *testing.T) {
	f := testutil.NewFixture(t)

	got, err := New(defaultMarkers).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got.Type)
}

func TestDetectSkipsUnreadableSubdirectory(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.CreateUnreadableDir("source/locked")
	f.SourceFile("readme.txt", "x")

	got, err := New(Markers{}).Detect(f.SourceDir)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, got.Type, "sketch inside an unreadable directory is not seen")
}

func TestDetectInaccessibleSource(t *testing.T) {
	f := testutil.NewFixture(t)

	_, err := New(defaultMarkers).Detect(f.Path("does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceInaccessible))

	file := f.SourceFile("plain.txt", "x")
	_, err = New(defaultMarkers).Detect(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceInaccessible))
}

func TestDetectionString(t *testing.T) {
	d := Detection{Type: TypeArduino, SketchDir: "/p/sketch"}
	assert.Equal(t, "arduino (sketch: /p/sketch)", d.String())
	assert.Equal(t, "platformio", Detection{Type: TypePlatformIO}.String())
}
