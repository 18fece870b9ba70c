// Package storage guarda las fotos de clientes en un sistema de archivos afero
// (disco en producción, memoria en tests).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
)

var _ ports.PhotoStorage = (*PhotoStore)(nil)

// ErrInvalidPath ruta vacía, absoluta o que intenta salir de la raíz.
var ErrInvalidPath = errors.New("ruta de archivo inválida")

// PhotoStore implementa ports.PhotoStorage sobre afero.Fs.
type PhotoStore struct {
	fs afero.Fs
}

// NewLocal crea el almacenamiento en disco bajo root (se crea si no existe).
func NewLocal(root string) (*PhotoStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de fotos: %w", err)
	}
	return &PhotoStore{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}, nil
}

// New crea el almacenamiento sobre un afero.Fs arbitrario.
func New(fs afero.Fs) *PhotoStore {
	return &PhotoStore{fs: fs}
}

// Save escribe r en filename y devuelve la ruta relativa normalizada.
func (s *PhotoStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	p, err := cleanPath(filename)
	if err != nil {
		return "", err
	}
	if err := afero.WriteReader(s.fs, p, r); err != nil {
		return "", fmt.Errorf("escribir %s: %w", p, err)
	}
	return p, nil
}

// Open abre la foto para lectura.
func (s *PhotoStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	p, err := cleanPath(filename)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", p, err)
	}
	return f, nil
}

// Exists indica si la foto existe y es un archivo regular.
func (s *PhotoStore) Exists(_ context.Context, filename string) (bool, error) {
	p, err := cleanPath(filename)
	if err != nil {
		return false, nil
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// Delete elimina la foto; no falla si ya no existe.
func (s *PhotoStore) Delete(_ context.Context, filename string) error {
	p, err := cleanPath(filename)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("eliminar %s: %w", p, err)
	}
	return nil
}

func cleanPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return path.Clean(p), nil
}
