package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"product-catalog/internal/apperrors"
)

const (
	// FieldName es el campo multipart donde viaja la imagen
	FieldName = "imageFile"

	// PathPrefix es la ruta pública bajo la que se sirven los archivos
	PathPrefix = "/uploads"

	// MaxImageBytes es el tope de 1.3 MiB por imagen
	MaxImageBytes = 13 * 1024 * 1024 / 10
)

// Saver guarda imágenes subidas en un directorio local y devuelve
// la ruta relativa al servidor con la que se recuperan después.
type Saver struct {
	dir string
}

func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Saver{dir: dir}, nil
}

// Save valida el tamaño contra el tope ANTES de escribir nada y copia
// el archivo bajo un nombre único. El sufijo uuid evita colisiones
// entre subidas concurrentes con el mismo nombre en el mismo milisegundo.
func (s *Saver) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageBytes {
		return "", apperrors.PayloadTooLarge("Image size should be less than 1.3 MB")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		sanitize(file.Filename),
	)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return PathPrefix + "/" + name, nil
}

// Dir es el directorio local donde quedan los archivos
func (s *Saver) Dir() string {
	return s.dir
}

// sanitize limpia el nombre original: sin rutas ni espacios
func sanitize(original string) string {
	base := filepath.Base(filepath.ToSlash(original))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		return "image"
	}
	return base
}
