package filex

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// smallest valid PNG header is enough for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "nested", "stories.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("stories.db"))
}

func TestReadPhoto_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	p, err := ReadPhoto(path)
	require.NoError(t, err)
	require.Equal(t, "cat.png", p.Name)
	require.Equal(t, "image/png", p.ContentType)
	require.Equal(t, pngHeader, p.Data)
}

func TestReadPhoto_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	data := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxPhotoSize)...)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err := ReadPhoto(path)
	require.ErrorIs(t, err, ErrPhotoTooLarge)
}

func TestReadPhoto_NotImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	_, err := ReadPhoto(path)
	require.ErrorIs(t, err, ErrNotAnImage)
}

func TestReadPhoto_Missing(t *testing.T) {
	_, err := ReadPhoto(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
