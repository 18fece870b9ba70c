package ports

import (
	"context"
	"time"
)

// Claves de caché de los catálogos.
const (
	CacheKeyClientStatuses   = "catalogs:client_statuses"
	CacheKeySubscriptions    = "catalogs:subscriptions"
	CacheKeyDiscoverySources = "catalogs:discovery_sources"
)

// CatalogCache caché de lectura de los catálogos (read-through con invalidación en escrituras).
// Get devuelve found=false si la clave no existe; los errores de infraestructura no
// deben impedir servir desde la DB.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}
