package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inkwell/internal/errors"
)

// makeFileHeader builds a real multipart.FileHeader the way a form upload
// would arrive.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "pic.png", "pic.png"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\me\pic.png`, "pic.png"},
		{"spaces and specials", "my photo (1).png", "my_photo__1_.png"},
		{"leading dots", "...hidden.png", "hidden.png"},
		{"only dots", "...", ""},
		{"unicode", "fotoğraf.png", "foto_raf.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSaverStore(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir)

	name, err := saver.Store(makeFileHeader(t, "pic.png", []byte("png bytes")))
	assert.NoError(t, err)
	assert.Equal(t, "pic.png", name)

	written, err := os.ReadFile(filepath.Join(dir, "pic.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), written)
}

func TestSaverStoreNoFile(t *testing.T) {
	saver := NewSaver(t.TempDir())

	name, err := saver.Store(nil)
	assert.NoError(t, err)
	assert.Empty(t, name)
}

func TestSaverStoreOverwritesCollision(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir)

	_, err := saver.Store(makeFileHeader(t, "pic.png", []byte("first")))
	require.NoError(t, err)
	_, err = saver.Store(makeFileHeader(t, "pic.png", []byte("second")))
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "pic.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), written)
}

func TestSaverStoreUnwritableDir(t *testing.T) {
	saver := NewSaver(filepath.Join(t.TempDir(), "does", "not", "exist"))

	name, err := saver.Store(makeFileHeader(t, "pic.png", []byte("png bytes")))
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
	assert.Empty(t, name)
}

func TestSaverStoreTraversalStaysInDir(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir)

	name, err := saver.Store(makeFileHeader(t, "../escape.png", []byte("x")))
	assert.NoError(t, err)
	assert.Equal(t, "escape.png", name)

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
}
