package memory

import "github.com/jhoicas/Gimnasio-api/internal/domain/entity"

// undoLog guarda la imagen previa de cada fila que toca una transacción.
// Una entrada nil indica que la fila no existía. Solo los repositorios creados por
// TxRunner escriben aquí, así que deshacer no pisa escrituras hechas fuera de ella.
type undoLog struct {
	customers map[string]*entity.Customer
	contacts  map[string]*entity.CustomerContact
	statuses  map[string]*statusRow
}

func newUndoLog() *undoLog {
	return &undoLog{
		customers: make(map[string]*entity.Customer),
		contacts:  make(map[string]*entity.CustomerContact),
		statuses:  make(map[string]*statusRow),
	}
}

// Los métodos de registro se llaman con s.mu tomado y aceptan un log nil.

func (u *undoLog) customer(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.customers[id]; !seen {
		u.customers[id] = cloneCustomer(s.customers[id])
	}
}

func (u *undoLog) contact(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.contacts[id]; seen {
		return
	}
	var before *entity.CustomerContact
	if c, ok := s.contacts[id]; ok {
		cp := *c
		before = &cp
	}
	u.contacts[id] = before
}

func (u *undoLog) status(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.statuses[id]; seen {
		return
	}
	var before *statusRow
	if row, ok := s.statuses[id]; ok {
		cp := *row
		before = &cp
	}
	u.statuses[id] = before
}

// rollback devuelve a su estado previo solo las filas registradas.
func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range u.customers {
		if c == nil {
			delete(s.customers, id)
		} else {
			s.customers[id] = c
		}
	}
	for id, c := range u.contacts {
		if c == nil {
			delete(s.contacts, id)
		} else {
			s.contacts[id] = c
		}
	}
	for id, row := range u.statuses {
		if row == nil {
			delete(s.statuses, id)
		} else {
			s.statuses[id] = row
		}
	}
}
