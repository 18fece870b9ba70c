package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ClientStatusRepository puerto de persistencia del catálogo de estados de cliente.
// Delete devuelve domain.ErrConflict si el estado está referenciado por el historial.
type ClientStatusRepository interface {
	Create(ctx context.Context, s *entity.ClientStatus) error
	GetByID(ctx context.Context, id string) (*entity.ClientStatus, error)
	GetByName(ctx context.Context, name string) (*entity.ClientStatus, error)
	List(ctx context.Context) ([]*entity.ClientStatus, error)
	Update(ctx context.Context, s *entity.ClientStatus) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionRepository puerto de persistencia del catálogo de suscripciones.
// Delete elimina también los vínculos cliente-suscripción.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	GetByCode(ctx context.Context, code string) (*entity.Subscription, error)
	List(ctx context.Context) ([]*entity.Subscription, error)
	Update(ctx context.Context, s *entity.Subscription) error
	Delete(ctx context.Context, id string) error
}

// DiscoverySourceRepository puerto de persistencia del catálogo de medios de descubrimiento.
// Delete deja en NULL la referencia de los clientes que lo usaban.
type DiscoverySourceRepository interface {
	Create(ctx context.Context, s *entity.DiscoverySource) error
	GetByID(ctx context.Context, id string) (*entity.DiscoverySource, error)
	GetByName(ctx context.Context, name string) (*entity.DiscoverySource, error)
	List(ctx context.Context) ([]*entity.DiscoverySource, error)
	Update(ctx context.Context, s *entity.DiscoverySource) error
	Delete(ctx context.Context, id string) error
}
