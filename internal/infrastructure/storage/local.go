// Package storage guarda los manuales subidos en disco local.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pecuadex/pecuadex-api/internal/application/ports"
)

var _ ports.DocumentStore = (*Local)(nil)

// Local DocumentStore sobre un directorio. Los archivos se sirven bajo publicURL.
type Local struct {
	dir       string
	publicURL string
}

// NewLocal crea el directorio si no existe.
func NewLocal(dir, publicURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &Local{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Save guarda el contenido con un nombre uuid que conserva la extensión original.
func (s *Local) Save(ctx context.Context, fileName string, r io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	key := uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	f, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("storage: cerrar archivo: %w", err)
	}
	return key, path.Join(s.publicURL, key), nil
}

// Delete elimina el archivo. Una clave inexistente no es error.
func (s *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("storage: clave inválida %q", key)
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: eliminar: %w", err)
	}
	return nil
}

// Dir directorio raíz (se expone como estático en el router).
func (s *Local) Dir() string { return s.dir }
