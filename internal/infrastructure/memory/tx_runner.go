package memory

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// TxRunner emula una transacción: ejecuta fn en exclusión mutua con otras transacciones
// y, si fn falla, deshace las filas de clientes, contactos e historial que fn escribió.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// RunMembership ejecuta fn con los repositorios del agregado Customer.
func (r *TxRunner) RunMembership(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	contactRepo repository.CustomerContactRepository,
	statusRepo repository.CustomerStatusRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	undo := newUndoLog()
	err := fn(
		&CustomerRepo{s: r.store, undo: undo},
		&ContactRepo{s: r.store, undo: undo},
		&StatusRepo{s: r.store, undo: undo},
	)
	if err != nil {
		r.store.rollback(undo)
		return err
	}
	return nil
}
