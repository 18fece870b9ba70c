package cache

import (
	"context"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
)

var _ ports.CatalogCache = Noop{}

// Noop caché que nunca guarda nada; se usa cuando REDIS_ADDR está vacío.
type Noop struct{}

// NewNoop devuelve la caché nula.
func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error { return nil }
