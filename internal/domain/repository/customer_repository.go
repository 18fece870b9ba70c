package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get devuelven (nil, nil) si no existe el registro.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByClientCode(ctx context.Context, clientCode string) (*entity.Customer, error)
	GetByCURP(ctx context.Context, curp string) (*entity.Customer, error)
	GetByPhoto(ctx context.Context, photo string) (*entity.Customer, error)
	List(ctx context.Context, f entity.CustomerFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
	// LockForUpdate bloquea la fila del cliente hasta el fin de la transacción.
	// Serializa los cambios concurrentes sobre sus contactos.
	LockForUpdate(ctx context.Context, id string) error
}

// CustomerContactRepository puerto de persistencia de contactos (hijos de Customer).
type CustomerContactRepository interface {
	Create(ctx context.Context, c *entity.CustomerContact) error
	GetByID(ctx context.Context, id string) (*entity.CustomerContact, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerContact, error)
	Update(ctx context.Context, c *entity.CustomerContact) error
	Delete(ctx context.Context, id string) error
	DeleteByCustomer(ctx context.Context, customerID string) error
}

// CustomerStatusRepository puerto del historial de estados.
// No hay Update: las filas son inmutables una vez insertadas.
type CustomerStatusRepository interface {
	// Create inserta la entrada y asigna ID y DateChanged.
	Create(ctx context.Context, s *entity.CustomerStatus) error
	GetByID(ctx context.Context, id string) (*entity.CustomerStatus, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerStatus, error)
	// Search recorre el historial de todos los clientes, del cambio más reciente al más antiguo.
	// Devuelve también el total sin paginar.
	Search(ctx context.Context, f entity.StatusChangeFilter) ([]*entity.StatusChange, int, error)
	DeleteByCustomer(ctx context.Context, customerID string) error
}
