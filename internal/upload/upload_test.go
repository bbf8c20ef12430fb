package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/apperrors"
)

// fileHeader arma un *multipart.FileHeader real pasando el contenido
// por un formulario multipart de verdad
func fileHeader(t *testing.T, name string, size int) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile(FieldName, name)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File[FieldName]
	require.Len(t, files, 1)
	return files[0]
}

func newSaver(t *testing.T) *Saver {
	t.Helper()
	s, err := NewSaver(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSave(t *testing.T) {
	s := newSaver(t)

	path, err := s.Save(fileHeader(t, "widget.png", 64))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, PathPrefix+"/"), "path %q must be under %s", path, PathPrefix)
	assert.True(t, strings.HasSuffix(path, "-widget.png"))

	stored := filepath.Join(s.Dir(), strings.TrimPrefix(path, PathPrefix+"/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Len(t, data, 64)
}

func TestSave_AtTheLimit(t *testing.T) {
	s := newSaver(t)

	_, err := s.Save(fileHeader(t, "limit.png", MaxImageBytes))
	assert.NoError(t, err, "a file exactly at the ceiling is accepted")
}

func TestSave_Oversized(t *testing.T) {
	s := newSaver(t)

	_, err := s.Save(fileHeader(t, "big.png", MaxImageBytes+1))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePayloadTooLarge, apperrors.CodeOf(err))

	// El rechazo ocurre antes de escribir nada
	entries, readErr := os.ReadDir(s.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSave_UniqueNames(t *testing.T) {
	s := newSaver(t)

	// Mismo nombre original, rutas distintas: subidas concurrentes
	// no pueden pisarse
	first, err := s.Save(fileHeader(t, "widget.png", 8))
	require.NoError(t, err)
	second, err := s.Save(fileHeader(t, "widget.png", 8))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "my_widget.png", sanitize("my widget.png"))
	assert.Equal(t, "evil.png", sanitize("../../evil.png"))
	assert.Equal(t, "image", sanitize(""))
}
