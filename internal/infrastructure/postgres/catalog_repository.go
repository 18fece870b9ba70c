package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// ── ClientStatus ──────────────────────────────────────────────────────────────

var _ repository.ClientStatusRepository = (*ClientStatusRepo)(nil)

// ClientStatusRepo catálogo de estados de cliente sobre PostgreSQL.
type ClientStatusRepo struct {
	q Querier
}

// NewClientStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientStatusRepository(q Querier) *ClientStatusRepo {
	return &ClientStatusRepo{q: q}
}

func (r *ClientStatusRepo) Create(ctx context.Context, s *entity.ClientStatus) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO client_statuses (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client status: %w", err)
	}
	return nil
}

func (r *ClientStatusRepo) GetByID(ctx context.Context, id string) (*entity.ClientStatus, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM client_statuses WHERE id = $1`, id)
}

func (r *ClientStatusRepo) GetByName(ctx context.Context, name string) (*entity.ClientStatus, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM client_statuses WHERE lower(name) = lower($1)`, name)
}

func (r *ClientStatusRepo) getOne(ctx context.Context, query, arg string) (*entity.ClientStatus, error) {
	var s entity.ClientStatus
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client status: %w", err)
	}
	return &s, nil
}

func (r *ClientStatusRepo) List(ctx context.Context) ([]*entity.ClientStatus, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM client_statuses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list client statuses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientStatus
	for rows.Next() {
		var s entity.ClientStatus
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client status: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *ClientStatusRepo) Update(ctx context.Context, s *entity.ClientStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE client_statuses SET name = $2, updated_at = $3 WHERE id = $1`,
		s.ID, s.Name, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete devuelve domain.ErrConflict si el historial referencia el estado (ON DELETE RESTRICT).
func (r *ClientStatusRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM client_statuses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete client status: %w", err)
	}
	return nil
}

// ── Subscription ──────────────────────────────────────────────────────────────

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo catálogo de suscripciones sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, code, name, monthly_fee, created_at, updated_at`

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Code, s.Name, s.MonthlyFee, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)
}

func (r *SubscriptionRepo) GetByCode(ctx context.Context, code string) (*entity.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE code = $1`, code)
}

func (r *SubscriptionRepo) getOne(ctx context.Context, query, arg string) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Code, &s.Name, &s.MonthlyFee, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepo) List(ctx context.Context) ([]*entity.Subscription, error) {
	rows, err := r.q.Query(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.MonthlyFee, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE subscriptions SET code = $2, name = $3, monthly_fee = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Code, s.Name, s.MonthlyFee, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el plan; customer_subscriptions cae en cascada.
func (r *SubscriptionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// ── DiscoverySource ───────────────────────────────────────────────────────────

var _ repository.DiscoverySourceRepository = (*DiscoverySourceRepo)(nil)

// DiscoverySourceRepo catálogo de medios de descubrimiento sobre PostgreSQL.
type DiscoverySourceRepo struct {
	q Querier
}

// NewDiscoverySourceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscoverySourceRepository(q Querier) *DiscoverySourceRepo {
	return &DiscoverySourceRepo{q: q}
}

func (r *DiscoverySourceRepo) Create(ctx context.Context, s *entity.DiscoverySource) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO discovery_sources (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert discovery source: %w", err)
	}
	return nil
}

func (r *DiscoverySourceRepo) GetByID(ctx context.Context, id string) (*entity.DiscoverySource, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM discovery_sources WHERE id = $1`, id)
}

func (r *DiscoverySourceRepo) GetByName(ctx context.Context, name string) (*entity.DiscoverySource, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM discovery_sources WHERE lower(name) = lower($1)`, name)
}

func (r *DiscoverySourceRepo) getOne(ctx context.Context, query, arg string) (*entity.DiscoverySource, error) {
	var s entity.DiscoverySource
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discovery source: %w", err)
	}
	return &s, nil
}

func (r *DiscoverySourceRepo) List(ctx context.Context) ([]*entity.DiscoverySource, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM discovery_sources ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list discovery sources: %w", err)
	}
	defer rows.Close()
	var list []*entity.DiscoverySource
	for rows.Next() {
		var s entity.DiscoverySource
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan discovery source: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *DiscoverySourceRepo) Update(ctx context.Context, s *entity.DiscoverySource) error {
	tag, err := r.q.Exec(ctx, `UPDATE discovery_sources SET name = $2, updated_at = $3 WHERE id = $1`,
		s.ID, s.Name, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update discovery source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el medio; customers.discovery_source_id pasa a NULL.
func (r *DiscoverySourceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM discovery_sources WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete discovery source: %w", err)
	}
	return nil
}
