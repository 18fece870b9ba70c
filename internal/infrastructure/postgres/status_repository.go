package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.CustomerStatusRepository = (*StatusRepo)(nil)

// StatusRepo historial de estados sobre PostgreSQL. Solo INSERT: no existe UPDATE.
type StatusRepo struct {
	q Querier
}

// NewStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusRepository(q Querier) *StatusRepo {
	return &StatusRepo{q: q}
}

const statusSelect = `
	SELECT h.id, h.customer_id, h.status_id, cs.name, h.reason, h.changed_by, h.date_changed
	FROM customer_statuses h
	JOIN client_statuses cs ON cs.id = h.status_id`

// Create inserta la entrada; date_changed lo fija la base de datos (clock_timestamp()).
func (r *StatusRepo) Create(ctx context.Context, s *entity.CustomerStatus) error {
	id := uuid.New().String()
	err := r.q.QueryRow(ctx, `
		INSERT INTO customer_statuses (id, customer_id, status_id, reason, changed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING date_changed`,
		id, s.CustomerID, s.StatusID, s.Reason, s.ChangedBy,
	).Scan(&s.DateChanged)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert customer status: %w", err)
	}
	s.ID = id
	return nil
}

func (r *StatusRepo) GetByID(ctx context.Context, id string) (*entity.CustomerStatus, error) {
	var s entity.CustomerStatus
	err := r.q.QueryRow(ctx, statusSelect+` WHERE h.id = $1`, id).Scan(
		&s.ID, &s.CustomerID, &s.StatusID, &s.StatusName, &s.Reason, &s.ChangedBy, &s.DateChanged)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer status: %w", err)
	}
	return &s, nil
}

// ListByCustomer devuelve el historial por fecha de cambio ascendente.
func (r *StatusRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerStatus, error) {
	rows, err := r.q.Query(ctx, statusSelect+` WHERE h.customer_id = $1 ORDER BY h.date_changed, h.id`, customerID)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list customer statuses: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerStatus
	for rows.Next() {
		var s entity.CustomerStatus
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.StatusID, &s.StatusName, &s.Reason, &s.ChangedBy, &s.DateChanged); err != nil {
			return nil, fmt.Errorf("scan customer status: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Search filtra el historial de todos los clientes, del cambio más reciente al más antiguo.
func (r *StatusRepo) Search(ctx context.Context, f entity.StatusChangeFilter) ([]*entity.StatusChange, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.StatusID != "" {
		conds = append(conds, "h.status_id::text = "+arg(f.StatusID))
	}
	if f.From != nil {
		conds = append(conds, "h.date_changed >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "h.date_changed < "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customer_statuses h`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count status changes: %w", err)
	}

	limit := arg(f.Limit)
	offset := arg(f.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT h.id, h.customer_id, h.status_id, cs.name, h.reason, h.changed_by, h.date_changed,
		       c.client_code, c.name, COALESCE(u.email, '')
		FROM customer_statuses h
		JOIN client_statuses cs ON cs.id = h.status_id
		JOIN customers c ON c.id = h.customer_id
		LEFT JOIN users u ON u.id = h.changed_by`+where+`
		ORDER BY h.date_changed DESC, h.id DESC
		LIMIT `+limit+` OFFSET `+offset, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search status changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusChange
	for rows.Next() {
		var ch entity.StatusChange
		if err := rows.Scan(&ch.ID, &ch.CustomerID, &ch.StatusID, &ch.StatusName, &ch.Reason, &ch.ChangedBy,
			&ch.DateChanged, &ch.ClientCode, &ch.CustomerName, &ch.ChangedByEmail); err != nil {
			return nil, 0, fmt.Errorf("scan status change: %w", err)
		}
		list = append(list, &ch)
	}
	return list, total, rows.Err()
}

func (r *StatusRepo) DeleteByCustomer(ctx context.Context, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_statuses WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("delete statuses by customer: %w", err)
	}
	return nil
}
