package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// StatusRepo implementa repository.CustomerStatusRepository en memoria.
type StatusRepo struct {
	s    *Store
	undo *undoLog
}

// NewStatusRepo construye el repositorio.
func NewStatusRepo(s *Store) *StatusRepo { return &StatusRepo{s: s} }

var _ repository.CustomerStatusRepository = (*StatusRepo)(nil)

// Create asigna ID y DateChanged e inserta la entrada.
func (r *StatusRepo) Create(_ context.Context, st *entity.CustomerStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[st.CustomerID]; !ok {
		return domain.ErrConflict
	}
	cs, ok := r.s.clientStatuses[st.StatusID]
	if !ok {
		return domain.ErrConflict
	}
	now := time.Now().UTC()
	for _, o := range r.s.statuses {
		if o.CustomerID == st.CustomerID && o.StatusID == st.StatusID && o.DateChanged.Equal(now) {
			return domain.ErrDuplicate
		}
	}
	st.ID = uuid.New().String()
	st.DateChanged = now
	st.StatusName = cs.Name
	r.s.seq++
	row := &statusRow{CustomerStatus: *st, seq: r.s.seq}
	if st.ChangedBy != nil {
		v := *st.ChangedBy
		row.ChangedBy = &v
	}
	r.undo.status(r.s, st.ID)
	r.s.statuses[st.ID] = row
	return nil
}

func (r *StatusRepo) GetByID(_ context.Context, id string) (*entity.CustomerStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.statuses[id]
	if !ok {
		return nil, nil
	}
	return r.toEntity(row), nil
}

// ListByCustomer devuelve el historial por fecha de cambio ascendente.
func (r *StatusRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.CustomerStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*statusRow
	for _, row := range r.s.statuses {
		if row.CustomerID == customerID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DateChanged.Equal(rows[j].DateChanged) {
			return rows[i].seq < rows[j].seq
		}
		return rows[i].DateChanged.Before(rows[j].DateChanged)
	})
	out := make([]*entity.CustomerStatus, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toEntity(row))
	}
	return out, nil
}

func (r *StatusRepo) DeleteByCustomer(_ context.Context, customerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, row := range r.s.statuses {
		if row.CustomerID == customerID {
			r.undo.status(r.s, k)
			delete(r.s.statuses, k)
		}
	}
	return nil
}

func (r *StatusRepo) toEntity(row *statusRow) *entity.CustomerStatus {
	st := row.CustomerStatus
	if row.ChangedBy != nil {
		v := *row.ChangedBy
		st.ChangedBy = &v
	}
	if cs, ok := r.s.clientStatuses[st.StatusID]; ok {
		st.StatusName = cs.Name
	}
	return &st
}

// Search filtra el historial de todos los clientes y lo ordena del más reciente al más antiguo.
func (r *StatusRepo) Search(_ context.Context, f entity.StatusChangeFilter) ([]*entity.StatusChange, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*statusRow
	for _, row := range r.s.statuses {
		if f.StatusID != "" && row.StatusID != f.StatusID {
			continue
		}
		if f.From != nil && row.DateChanged.Before(*f.From) {
			continue
		}
		if f.To != nil && !row.DateChanged.Before(*f.To) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DateChanged.Equal(rows[j].DateChanged) {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].DateChanged.After(rows[j].DateChanged)
	})
	total := len(rows)
	start := f.Offset
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	out := make([]*entity.StatusChange, 0, end-start)
	for _, row := range rows[start:end] {
		ch := &entity.StatusChange{CustomerStatus: *r.toEntity(row)}
		if c, ok := r.s.customers[row.CustomerID]; ok {
			ch.ClientCode = c.ClientCode
			ch.CustomerName = c.Name
		}
		if row.ChangedBy != nil {
			if u, ok := r.s.users[*row.ChangedBy]; ok {
				ch.ChangedByEmail = u.Email
			}
		}
		out = append(out, ch)
	}
	return out, total, nil
}
