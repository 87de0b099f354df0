package filestore

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	t.Run("save and open", func(t *testing.T) {
		name, err := store.Save("report card.pdf", bytes.NewReader([]byte("pdf-bytes")))
		require.NoError(t, err)
		assert.Equal(t, "report_card.pdf", name)

		f, err := store.Open(name)
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("pdf-bytes"), data)
	})

	t.Run("save overwrites", func(t *testing.T) {
		_, err := store.Save("notes.txt", bytes.NewReader([]byte("v1")))
		require.NoError(t, err)
		_, err = store.Save("notes.txt", bytes.NewReader([]byte("v2")))
		require.NoError(t, err)

		f, err := store.Open("notes.txt")
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("open missing", func(t *testing.T) {
		_, err := store.Open("nope.png")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("path traversal is flattened", func(t *testing.T) {
		name, err := store.Save("../../etc/passwd", bytes.NewReader([]byte("nope")))
		require.NoError(t, err)
		assert.Equal(t, "passwd", name)

		// the blob lands inside the store directory
		_, err = os.Stat(store.Path(name))
		require.NoError(t, err)
		assert.Equal(t, filepath.Dir(store.Path(name)), store.dir)
	})

	t.Run("empty name after sanitizing", func(t *testing.T) {
		_, err := store.Save("...", bytes.NewReader(nil))
		assert.Error(t, err)
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "avatar.png", "avatar.png"},
		{"spaces", "my avatar.png", "my_avatar.png"},
		{"unix path", "/tmp/x/avatar.png", "avatar.png"},
		{"windows path", `C:\Users\x\avatar.png`, "avatar.png"},
		{"traversal", "../../etc/passwd", "passwd"},
		{"odd chars", "rapport (final)!.pdf", "rapport__final__.pdf"},
		{"dots only", "...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}
