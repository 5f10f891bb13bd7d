package utils_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"beammp-manager/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.log")

	require.NoError(t, utils.WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, utils.WriteFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteAtomic_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BeamMP-Server.exe")
	require.NoError(t, os.WriteFile(path, []byte("complete binary"), 0o755))

	err := utils.WriteAtomic(path, 0o755, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("connection reset")
	})
	assert.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "complete binary", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file")
	err := utils.WriteFileAtomic(path, []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ServerConfig.toml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, utils.FileExists(file))
	assert.False(t, utils.FileExists(filepath.Join(dir, "nope")))
	assert.False(t, utils.FileExists(dir), "directories are not files")
}
