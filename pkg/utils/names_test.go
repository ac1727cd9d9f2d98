package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"motor mount", "motor_mount"},
		{"motor--mount  v2", "motor_mount_v2"},
		{"__leading and trailing__", "leading_and_trailing"},
		{"a/b\\c:d", "a_b_c_d"},
		{"Ünïcödé name", "n_c_d_name"},
		{"___", ""},
		{"", ""},
		{"already_clean_1", "already_clean_1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.in))
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"", "x", "a  b", "__a__b__", "weird!!name??", "tab\tand\nnewline",
		"emoji 🚀 rocket", "..hidden", "MiXeD-Case_name 01",
	}

	for _, in := range inputs {
		once := CleanName(in)
		assert.Equal(t, once, CleanName(once), "CleanName not idempotent for %q", in)
	}
}

func TestUniqueDirPath(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "sketch")

	got, err := UniqueDirPath(base)
	require.NoError(t, err)
	assert.Equal(t, base, got, "free path should be returned unchanged")

	require.NoError(t, os.Mkdir(base, 0755))
	require.NoError(t, os.Mkdir(base+"_1", 0755))

	got, err = UniqueDirPath(base)
	require.NoError(t, err)
	assert.Equal(t, base+"_2", got)
}

func TestUniqueDirPathIgnoresExtension(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "lib.v2")
	require.NoError(t, os.Mkdir(base, 0755))

	got, err := UniqueDirPath(base)
	require.NoError(t, err)
	assert.Equal(t, base+"_1", got)
}

func TestUniqueFilePath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")

	got, err := UniqueFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))
	got, err = UniqueFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "notes_1.txt"), got)

	require.NoError(t, os.WriteFile(got, []byte("b"), 0644))
	got, err = UniqueFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "notes_2.txt"), got)
}

func TestUniqueFilePathNoExtension(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Makefile")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	got, err := UniqueFilePath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Makefile_1"), got)
}

func TestExistsDanglingSymlink(t *testing.T) {
	root := t.TempDir()
	link := filepath.Join(root, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), link))

	assert.True(t, Exists(link))
	assert.False(t, Exists(filepath.Join(root, "missing")))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, "0 B"},
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestVerifyCopy(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	c := filepath.Join(root, "c")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0644))

	assert.NoError(t, VerifyCopy(a, b))
	assert.Error(t, VerifyCopy(a, c))
	assert.Error(t, VerifyCopy(a, filepath.Join(root, "missing")))
}
