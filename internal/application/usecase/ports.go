package usecase

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// MembershipTxRunner ejecuta una función dentro de una transacción con los repositorios
// del agregado Customer (cliente, contactos, historial). Commit si fn devuelve nil.
type MembershipTxRunner interface {
	RunMembership(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		contactRepo repository.CustomerContactRepository,
		statusRepo repository.CustomerStatusRepository,
	) error) error
}
