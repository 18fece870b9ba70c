package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/pkg/textnorm"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// Las suscripciones del cliente viven en customer_subscriptions y se escriben en la misma sentencia.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `
	SELECT c.id, c.client_code, c.name, c.name_search, c.curp, c.enrollment_date, c.birth_date,
	       c.gender, c.phone_number, c.email, c.photo, c.discovery_source_id, c.discovery_details,
	       COALESCE((SELECT array_agg(cs.subscription_id::text ORDER BY cs.subscription_id)
	                 FROM customer_subscriptions cs WHERE cs.customer_id = c.id), '{}'::text[]),
	       c.has_illness, c.has_allergy, c.has_flat_feet, c.has_heart_conditions,
	       c.created_at, c.updated_at
	FROM customers c`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.ClientCode, &c.Name, &c.NameSearch, &c.CURP, &c.EnrollmentDate, &c.BirthDate,
		&c.Gender, &c.PhoneNumber, &c.Email, &c.PhotoPath, &c.DiscoverySourceID, &c.DiscoveryDetails,
		&c.SubscriptionIDs,
		&c.HasIllness, &c.HasAllergy, &c.HasFlatFeet, &c.HasHeartCondition,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta el cliente y sus vínculos de suscripción en una sola sentencia.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		WITH ins AS (
			INSERT INTO customers (id, client_code, name, name_search, curp, enrollment_date, birth_date,
				gender, phone_number, email, photo, discovery_source_id, discovery_details,
				has_illness, has_allergy, has_flat_feet, has_heart_conditions, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			RETURNING id
		)
		INSERT INTO customer_subscriptions (customer_id, subscription_id)
		SELECT ins.id, s.sid::uuid FROM ins, unnest($20::text[]) AS s(sid)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ClientCode, c.Name, c.NameSearch, c.CURP, c.EnrollmentDate, c.BirthDate,
		c.Gender, c.PhoneNumber, c.Email, c.PhotoPath, c.DiscoverySourceID, c.DiscoveryDetails,
		c.HasIllness, c.HasAllergy, c.HasFlatFeet, c.HasHeartCondition, c.CreatedAt, c.UpdatedAt,
		subscriptionIDs(c),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: catálogo referenciado inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE c.id = $1`, id)
}

// GetByClientCode obtiene un cliente por su código.
func (r *CustomerRepo) GetByClientCode(ctx context.Context, clientCode string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE c.client_code = $1`, clientCode)
}

// GetByCURP obtiene un cliente por CURP.
func (r *CustomerRepo) GetByCURP(ctx context.Context, curp string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE c.curp = $1`, curp)
}

// GetByPhoto obtiene el cliente dueño de la ruta de foto.
func (r *CustomerRepo) GetByPhoto(ctx context.Context, photo string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE c.photo = $1`, photo)
}

func (r *CustomerRepo) getOne(ctx context.Context, query, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List filtra clientes, ordena por client_code y pagina. El total ignora limit/offset.
func (r *CustomerRepo) List(ctx context.Context, f entity.CustomerFilter) ([]*entity.Customer, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := arg("%" + escapeLike(q) + "%")
		folded := arg("%" + escapeLike(textnorm.Fold(q)) + "%")
		conds = append(conds, fmt.Sprintf(
			"(c.client_code ILIKE %[1]s OR c.curp ILIKE %[1]s OR c.email ILIKE %[1]s OR c.name_search LIKE %[2]s)",
			like, folded))
	}
	if f.Gender != "" {
		conds = append(conds, "c.gender = "+arg(f.Gender))
	}
	if f.HasIllness != nil {
		conds = append(conds, "c.has_illness = "+arg(*f.HasIllness))
	}
	if f.HasAllergy != nil {
		conds = append(conds, "c.has_allergy = "+arg(*f.HasAllergy))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	limit := arg(f.Limit)
	offset := arg(f.Offset)
	rows, err := r.q.Query(ctx, customerSelect+where+` ORDER BY c.client_code LIMIT `+limit+` OFFSET `+offset, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update reemplaza los datos del cliente y sincroniza sus suscripciones.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		WITH upd AS (
			UPDATE customers SET client_code = $2, name = $3, name_search = $4, curp = $5,
				enrollment_date = $6, birth_date = $7, gender = $8, phone_number = $9, email = $10,
				photo = $11, discovery_source_id = $12, discovery_details = $13, has_illness = $14,
				has_allergy = $15, has_flat_feet = $16, has_heart_conditions = $17, updated_at = $18
			WHERE id = $1
			RETURNING id
		), del AS (
			DELETE FROM customer_subscriptions
			WHERE customer_id = $1 AND subscription_id::text <> ALL($19::text[])
		)
		INSERT INTO customer_subscriptions (customer_id, subscription_id)
		SELECT upd.id, s.sid::uuid FROM upd, unnest($19::text[]) AS s(sid)
		ON CONFLICT DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ClientCode, c.Name, c.NameSearch, c.CURP, c.EnrollmentDate, c.BirthDate,
		c.Gender, c.PhoneNumber, c.Email, c.PhotoPath, c.DiscoverySourceID, c.DiscoveryDetails,
		c.HasIllness, c.HasAllergy, c.HasFlatFeet, c.HasHeartCondition, c.UpdatedAt,
		subscriptionIDs(c),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: catálogo referenciado inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID; contactos, historial y suscripciones caen en cascada.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockForUpdate toma SELECT ... FOR UPDATE sobre la fila del cliente. Solo tiene efecto dentro de una tx.
func (r *CustomerRepo) LockForUpdate(ctx context.Context, id string) error {
	var got string
	err := r.q.QueryRow(ctx, `SELECT id FROM customers WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if isNoRows(err) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock customer: %w", err)
	}
	return nil
}

func subscriptionIDs(c *entity.Customer) []string {
	if c.SubscriptionIDs == nil {
		return []string{}
	}
	return c.SubscriptionIDs
}

// escapeLike escapa los comodines de LIKE en texto del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
