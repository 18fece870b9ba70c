package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/textnorm"
)

// CustomerRepo implementa repository.CustomerRepository en memoria.
type CustomerRepo struct {
	s    *Store
	undo *undoLog
}

// NewCustomerRepo construye el repositorio.
func NewCustomerRepo(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(c); err != nil {
		return err
	}
	r.undo.customer(r.s, c.ID)
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCustomer(r.s.customers[id]), nil
}

func (r *CustomerRepo) GetByClientCode(_ context.Context, clientCode string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.ClientCode == clientCode {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) GetByCURP(_ context.Context, curp string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.CURP == curp {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) GetByPhoto(_ context.Context, photo string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.PhotoPath == photo {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

// List filtra, ordena por client_code y pagina. Devuelve también el total sin paginar.
func (r *CustomerRepo) List(_ context.Context, f entity.CustomerFilter) ([]*entity.Customer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	folded := textnorm.Fold(f.Query)
	raw := strings.ToLower(strings.TrimSpace(f.Query))
	var matched []*entity.Customer
	for _, c := range r.s.customers {
		if raw != "" &&
			!strings.Contains(c.NameSearch, folded) &&
			!strings.Contains(strings.ToLower(c.ClientCode), raw) &&
			!strings.Contains(strings.ToLower(c.CURP), raw) &&
			!strings.Contains(strings.ToLower(c.Email), raw) {
			continue
		}
		if f.Gender != "" && c.Gender != f.Gender {
			continue
		}
		if f.HasIllness != nil && c.HasIllness != *f.HasIllness {
			continue
		}
		if f.HasAllergy != nil && c.HasAllergy != *f.HasAllergy {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ClientCode < matched[j].ClientCode })
	total := len(matched)
	start := f.Offset
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	out := make([]*entity.Customer, 0, end-start)
	for _, c := range matched[start:end] {
		out = append(out, cloneCustomer(c))
	}
	return out, total, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUnique(c); err != nil {
		return err
	}
	r.undo.customer(r.s, c.ID)
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

// Delete elimina el cliente con sus contactos e historial.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	r.undo.customer(r.s, id)
	delete(r.s.customers, id)
	for k, c := range r.s.contacts {
		if c.CustomerID == id {
			r.undo.contact(r.s, k)
			delete(r.s.contacts, k)
		}
	}
	for k, st := range r.s.statuses {
		if st.CustomerID == id {
			r.undo.status(r.s, k)
			delete(r.s.statuses, k)
		}
	}
	return nil
}

// LockForUpdate no hace nada: TxRunner ya serializa las transacciones.
func (r *CustomerRepo) LockForUpdate(_ context.Context, id string) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) checkUnique(c *entity.Customer) error {
	for _, o := range r.s.customers {
		if o.ID == c.ID {
			continue
		}
		if o.ClientCode == c.ClientCode || o.CURP == c.CURP || o.PhotoPath == c.PhotoPath {
			return domain.ErrDuplicate
		}
	}
	return nil
}
