package ports

import (
	"context"
	"io"
)

// PhotoStorage puerto de almacenamiento de fotos de clientes.
// Las rutas devueltas son relativas a la raíz del almacenamiento (ej. "customers_photos/<uuid>.jpg").
type PhotoStorage interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}
