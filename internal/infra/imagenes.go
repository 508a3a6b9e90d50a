package infra

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImagenStore guarda las fotos de equipos en disco local. Los archivos se
// sirven luego por la ruta estática /imagenes.
type ImagenStore struct {
	dir string
}

func NewImagenStore(dir string) (*ImagenStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("imagenes: crear directorio: %w", err)
	}
	return &ImagenStore{dir: dir}, nil
}

// Dir devuelve el directorio raíz del almacén (para montar la ruta estática).
func (s *ImagenStore) Dir() string { return s.dir }

// Guardar persiste el archivo subido con un nombre único y devuelve la ruta
// relativa que se almacena en la fila del equipo.
func (s *ImagenStore) Guardar(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("imagenes: extensión no permitida %q", ext)
	}

	nombre := uuid.New().String() + ext
	destino := filepath.Join(s.dir, nombre)
	if err := c.SaveUploadedFile(file, destino); err != nil {
		return "", fmt.Errorf("imagenes: guardar archivo: %w", err)
	}
	return "/imagenes/" + nombre, nil
}

// Eliminar borra una imagen previamente guardada; ignora rutas vacías.
func (s *ImagenStore) Eliminar(ruta string) error {
	if ruta == "" {
		return nil
	}
	nombre := filepath.Base(ruta)
	return os.Remove(filepath.Join(s.dir, nombre))
}
