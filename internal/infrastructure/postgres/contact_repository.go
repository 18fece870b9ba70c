package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.CustomerContactRepository = (*ContactRepo)(nil)

// ContactRepo contactos de clientes sobre PostgreSQL.
// Los índices únicos parciales rechazan un segundo principal/emergencia con domain.ErrDuplicate.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, customer_id, name, phone_number, relation, is_primary, is_emergency, created_at, updated_at`

func (r *ContactRepo) Create(ctx context.Context, c *entity.CustomerContact) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO customer_contacts (`+contactColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CustomerID, c.Name, c.PhoneNumber, c.Relation, c.IsPrimary, c.IsEmergency, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.CustomerContact, error) {
	var c entity.CustomerContact
	err := r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM customer_contacts WHERE id = $1`, id).Scan(
		&c.ID, &c.CustomerID, &c.Name, &c.PhoneNumber, &c.Relation, &c.IsPrimary, &c.IsEmergency, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// ListByCustomer devuelve los contactos por orden de alta.
func (r *ContactRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerContact, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+contactColumns+` FROM customer_contacts WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerContact
	for rows.Next() {
		var c entity.CustomerContact
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Name, &c.PhoneNumber, &c.Relation, &c.IsPrimary, &c.IsEmergency, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ContactRepo) Update(ctx context.Context, c *entity.CustomerContact) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customer_contacts
		SET name = $2, phone_number = $3, relation = $4, is_primary = $5, is_emergency = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.PhoneNumber, c.Relation, c.IsPrimary, c.IsEmergency, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) DeleteByCustomer(ctx context.Context, customerID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_contacts WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("delete contacts by customer: %w", err)
	}
	return nil
}
