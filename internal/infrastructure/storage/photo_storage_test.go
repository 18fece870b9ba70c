package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/storage"
)

func TestPhotoStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := storage.New(afero.NewMemMapFs())

	p, err := s.Save(ctx, "customers_photos/a.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "customers_photos/a.jpg", p)

	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, p)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(b))

	require.NoError(t, s.Delete(ctx, p))
	ok, err = s.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	// borrar dos veces no es error
	assert.NoError(t, s.Delete(ctx, p))
}

func TestPhotoStore_RutasInvalidas(t *testing.T) {
	ctx := context.Background()
	s := storage.New(afero.NewMemMapFs())

	for _, p := range []string{"", "/etc/passwd", "../x.jpg", "customers_photos/../../x.jpg"} {
		_, err := s.Save(ctx, p, strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidPath, p)

		ok, err := s.Exists(ctx, p)
		assert.NoError(t, err)
		assert.False(t, ok, p)
	}
}

func TestPhotoStore_DirectorioNoEsFoto(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("customers_photos", 0o755))
	s := storage.New(fs)

	ok, err := s.Exists(ctx, "customers_photos")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewLocal(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	p, err := s.Save(ctx, "customers_photos/b.png", strings.NewReader("png"))
	require.NoError(t, err)
	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)
}
