package iofs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls keep the layout
	for range 3 {
		require.NoError(t, EnsureDirs(home))
	}

	dirs := []string{
		filepath.Join(home, ".config", "gnmarine"),
		filepath.Join(home, ".cache", "gnmarine"),
		filepath.Join(home, ".local", "share", "gnmarine", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "obis", "snapshots")

	require.NoError(t, touchDir(dir))
	orig, err := os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, touchDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, orig.Mode(), info.Mode())
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	path := filepath.Join(home, ".config", "gnmarine", "config.yaml")

	require.NoError(t, EnsureConfigFile(home))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// an edited config survives
	custom := "database:\n  driver: sqlite\n  path: obis.sqlite\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestConfigYAML(t *testing.T) {
	for _, v := range []string{"database", "server", "assistant", "log"} {
		assert.Contains(t, ConfigYAML, v+":")
	}
}

func TestSnapshotPath(t *testing.T) {
	home := t.TempDir()
	assert.Equal(t,
		filepath.Join(home, ".cache", "gnmarine", "occurrences.sqlite"),
		SnapshotPath(home, "occurrences.sqlite"))
	assert.Equal(t, "/data/obis.sqlite", SnapshotPath(home, "/data/obis.sqlite"))
}

func TestCheckSnapshot(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, writeFile(tmp, "obis.sqlite", "x"))
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "dir.sqlite"), 0755))

	tests := []struct {
		msg, name string
		ok        bool
		cause     error
	}{
		{"regular file", "obis.sqlite", true, nil},
		{"missing", "missing.sqlite", false, fs.ErrNotExist},
		{"directory", "dir.sqlite", false, nil},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := filepath.Join(tmp, v.name)
			err := CheckSnapshot(path)
			if v.ok {
				assert.NoError(t, err)
				return
			}
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, errcode.ReadFileError, gnErr.Code)
			assert.Equal(t, []any{path}, gnErr.Vars)
			assert.Contains(t, gnErr.Msg, "SQLite snapshot")
			if v.cause != nil {
				assert.ErrorIs(t, gnErr.Err, v.cause)
			}
		})
	}
}
