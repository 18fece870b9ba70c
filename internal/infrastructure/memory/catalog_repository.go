package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// ── ClientStatus ──────────────────────────────────────────────────────────────

// ClientStatusRepo implementa repository.ClientStatusRepository en memoria.
type ClientStatusRepo struct{ s *Store }

// NewClientStatusRepo construye el repositorio.
func NewClientStatusRepo(s *Store) *ClientStatusRepo { return &ClientStatusRepo{s: s} }

var _ repository.ClientStatusRepository = (*ClientStatusRepo)(nil)

func (r *ClientStatusRepo) Create(_ context.Context, st *entity.ClientStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.clientStatuses {
		if strings.EqualFold(o.Name, st.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *st
	r.s.clientStatuses[st.ID] = &cp
	return nil
}

func (r *ClientStatusRepo) GetByID(_ context.Context, id string) (*entity.ClientStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if st, ok := r.s.clientStatuses[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *ClientStatusRepo) GetByName(_ context.Context, name string) (*entity.ClientStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.clientStatuses {
		if strings.EqualFold(st.Name, name) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ClientStatusRepo) List(_ context.Context) ([]*entity.ClientStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ClientStatus, 0, len(r.s.clientStatuses))
	for _, st := range r.s.clientStatuses {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClientStatusRepo) Update(_ context.Context, st *entity.ClientStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientStatuses[st.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.clientStatuses {
		if o.ID != st.ID && strings.EqualFold(o.Name, st.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *st
	r.s.clientStatuses[st.ID] = &cp
	return nil
}

// Delete falla con domain.ErrConflict si algún historial referencia el estado.
func (r *ClientStatusRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.statuses {
		if row.StatusID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.clientStatuses, id)
	return nil
}

// ── Subscription ──────────────────────────────────────────────────────────────

// SubscriptionRepo implementa repository.SubscriptionRepository en memoria.
type SubscriptionRepo struct{ s *Store }

// NewSubscriptionRepo construye el repositorio.
func NewSubscriptionRepo(s *Store) *SubscriptionRepo { return &SubscriptionRepo{s: s} }

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

func (r *SubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.subscriptions {
		if o.Code == sub.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *sub
	r.s.subscriptions[sub.ID] = &cp
	return nil
}

func (r *SubscriptionRepo) GetByID(_ context.Context, id string) (*entity.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sub, ok := r.s.subscriptions[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (r *SubscriptionRepo) GetByCode(_ context.Context, code string) (*entity.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sub := range r.s.subscriptions {
		if sub.Code == code {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) List(_ context.Context) ([]*entity.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Subscription, 0, len(r.s.subscriptions))
	for _, sub := range r.s.subscriptions {
		cp := *sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *SubscriptionRepo) Update(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subscriptions[sub.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.subscriptions {
		if o.ID != sub.ID && o.Code == sub.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *sub
	r.s.subscriptions[sub.ID] = &cp
	return nil
}

// Delete elimina el plan y lo quita de los clientes que lo tenían.
func (r *SubscriptionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.subscriptions, id)
	for _, c := range r.s.customers {
		kept := c.SubscriptionIDs[:0]
		for _, sid := range c.SubscriptionIDs {
			if sid != id {
				kept = append(kept, sid)
			}
		}
		c.SubscriptionIDs = kept
	}
	return nil
}

// ── DiscoverySource ───────────────────────────────────────────────────────────

// DiscoverySourceRepo implementa repository.DiscoverySourceRepository en memoria.
type DiscoverySourceRepo struct{ s *Store }

// NewDiscoverySourceRepo construye el repositorio.
func NewDiscoverySourceRepo(s *Store) *DiscoverySourceRepo { return &DiscoverySourceRepo{s: s} }

var _ repository.DiscoverySourceRepository = (*DiscoverySourceRepo)(nil)

func (r *DiscoverySourceRepo) Create(_ context.Context, src *entity.DiscoverySource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.discoverySources {
		if strings.EqualFold(o.Name, src.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *src
	r.s.discoverySources[src.ID] = &cp
	return nil
}

func (r *DiscoverySourceRepo) GetByID(_ context.Context, id string) (*entity.DiscoverySource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if src, ok := r.s.discoverySources[id]; ok {
		cp := *src
		return &cp, nil
	}
	return nil, nil
}

func (r *DiscoverySourceRepo) GetByName(_ context.Context, name string) (*entity.DiscoverySource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, src := range r.s.discoverySources {
		if strings.EqualFold(src.Name, name) {
			cp := *src
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *DiscoverySourceRepo) List(_ context.Context) ([]*entity.DiscoverySource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.DiscoverySource, 0, len(r.s.discoverySources))
	for _, src := range r.s.discoverySources {
		cp := *src
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DiscoverySourceRepo) Update(_ context.Context, src *entity.DiscoverySource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.discoverySources[src.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.discoverySources {
		if o.ID != src.ID && strings.EqualFold(o.Name, src.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *src
	r.s.discoverySources[src.ID] = &cp
	return nil
}

// Delete elimina el medio y deja sin medio a los clientes que lo usaban.
func (r *DiscoverySourceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.discoverySources, id)
	for _, c := range r.s.customers {
		if c.DiscoverySourceID != nil && *c.DiscoverySourceID == id {
			c.DiscoverySourceID = nil
		}
	}
	return nil
}
