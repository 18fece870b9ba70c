package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// ContactRepo implementa repository.CustomerContactRepository en memoria.
// Rechaza un segundo principal o de emergencia por cliente como lo hacen los índices parciales.
type ContactRepo struct {
	s    *Store
	undo *undoLog
}

// NewContactRepo construye el repositorio.
func NewContactRepo(s *Store) *ContactRepo { return &ContactRepo{s: s} }

var _ repository.CustomerContactRepository = (*ContactRepo)(nil)

func (r *ContactRepo) Create(_ context.Context, c *entity.CustomerContact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.CustomerID]; !ok {
		return domain.ErrConflict
	}
	if err := r.checkFlags(c); err != nil {
		return err
	}
	r.undo.contact(r.s, c.ID)
	cp := *c
	r.s.contacts[c.ID] = &cp
	return nil
}

func (r *ContactRepo) GetByID(_ context.Context, id string) (*entity.CustomerContact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.contacts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

// ListByCustomer devuelve los contactos por orden de alta.
func (r *ContactRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.CustomerContact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.CustomerContact
	for _, c := range r.s.contacts {
		if c.CustomerID == customerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ContactRepo) Update(_ context.Context, c *entity.CustomerContact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkFlags(c); err != nil {
		return err
	}
	r.undo.contact(r.s, c.ID)
	cp := *c
	r.s.contacts[c.ID] = &cp
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.undo.contact(r.s, id)
	delete(r.s.contacts, id)
	return nil
}

func (r *ContactRepo) DeleteByCustomer(_ context.Context, customerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, c := range r.s.contacts {
		if c.CustomerID == customerID {
			r.undo.contact(r.s, k)
			delete(r.s.contacts, k)
		}
	}
	return nil
}

func (r *ContactRepo) checkFlags(c *entity.CustomerContact) error {
	for _, o := range r.s.contacts {
		if o.ID == c.ID || o.CustomerID != c.CustomerID {
			continue
		}
		if (c.IsPrimary && o.IsPrimary) || (c.IsEmergency && o.IsEmergency) {
			return domain.ErrDuplicate
		}
	}
	return nil
}
