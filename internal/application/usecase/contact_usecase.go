package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// ContactUseCase gestiona los contactos de un cliente.
// Toda escritura corre en una transacción que bloquea la fila del cliente, de modo que
// la regla principal/emergencia se evalúa sobre un conjunto que nadie más modifica.
type ContactUseCase struct {
	contactRepo repository.CustomerContactRepository
	tx          MembershipTxRunner
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(contactRepo repository.CustomerContactRepository, tx MembershipTxRunner) *ContactUseCase {
	return &ContactUseCase{contactRepo: contactRepo, tx: tx}
}

// List devuelve los contactos del cliente.
func (uc *ContactUseCase) List(ctx context.Context, customerID string) ([]dto.ContactResponse, error) {
	var out []dto.ContactResponse
	err := uc.tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		_ repository.CustomerStatusRepository,
	) error {
		if err := requireCustomer(ctx, customers, customerID, false); err != nil {
			return err
		}
		list, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		out = toContactResponses(list)
		return nil
	})
	return out, err
}

// Add registra un contacto nuevo para el cliente.
func (uc *ContactUseCase) Add(ctx context.Context, customerID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	normalizeContact(&in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var out dto.ContactResponse
	err := uc.tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		_ repository.CustomerStatusRepository,
	) error {
		if err := requireCustomer(ctx, customers, customerID, true); err != nil {
			return err
		}
		existing, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		now := time.Now()
		c := &entity.CustomerContact{
			ID:          uuid.New().String(),
			CustomerID:  customerID,
			Name:        in.Name,
			PhoneNumber: in.PhoneNumber,
			Relation:    in.Relation,
			IsPrimary:   in.IsPrimary,
			IsEmergency: in.IsEmergency,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := membership.ValidateContactSave(existing, c); err != nil {
			return err
		}
		if err := contacts.Create(ctx, c); err != nil {
			return err
		}
		out = toContactResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update modifica un contacto existente del cliente.
func (uc *ContactUseCase) Update(ctx context.Context, customerID, contactID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	normalizeContact(&in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var out dto.ContactResponse
	err := uc.tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		_ repository.CustomerStatusRepository,
	) error {
		if err := requireCustomer(ctx, customers, customerID, true); err != nil {
			return err
		}
		existing, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		current := findContact(existing, contactID)
		if current == nil {
			return domain.ErrNotFound
		}
		c := *current
		c.Name = in.Name
		c.PhoneNumber = in.PhoneNumber
		c.Relation = in.Relation
		c.IsPrimary = in.IsPrimary
		c.IsEmergency = in.IsEmergency
		c.UpdatedAt = time.Now()
		if err := membership.ValidateContactSave(existing, &c); err != nil {
			return err
		}
		if err := contacts.Update(ctx, &c); err != nil {
			return err
		}
		out = toContactResponse(&c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un contacto si el resto sigue cumpliendo la regla (o no queda ninguno).
func (uc *ContactUseCase) Delete(ctx context.Context, customerID, contactID string) error {
	return uc.tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		_ repository.CustomerStatusRepository,
	) error {
		if err := requireCustomer(ctx, customers, customerID, true); err != nil {
			return err
		}
		existing, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if err := membership.ValidateContactDelete(existing, contactID); err != nil {
			return err
		}
		return contacts.Delete(ctx, contactID)
	})
}

// Designate traslada la marca principal y/o de emergencia al contacto indicado,
// quitándola del titular anterior en la misma transacción.
func (uc *ContactUseCase) Designate(ctx context.Context, customerID, contactID string, in dto.DesignateContactRequest) ([]dto.ContactResponse, error) {
	var out []dto.ContactResponse
	err := uc.tx.RunMembership(ctx, func(
		customers repository.CustomerRepository,
		contacts repository.CustomerContactRepository,
		_ repository.CustomerStatusRepository,
	) error {
		if err := requireCustomer(ctx, customers, customerID, true); err != nil {
			return err
		}
		existing, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		changed, err := membership.Designate(existing, contactID, in.Primary, in.Emergency)
		if err != nil {
			return err
		}
		// Los índices únicos parciales obligan a liberar la marca antes de asignarla.
		now := time.Now()
		var target *entity.CustomerContact
		for _, c := range changed {
			if c.ID == contactID {
				target = c
				continue
			}
			c.UpdatedAt = now
			if err := contacts.Update(ctx, c); err != nil {
				return err
			}
		}
		if target != nil {
			target.UpdatedAt = now
			if err := contacts.Update(ctx, target); err != nil {
				return err
			}
		}
		list, err := contacts.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		out = toContactResponses(list)
		return nil
	})
	return out, err
}

// requireCustomer verifica que el cliente exista y, si lock, bloquea su fila.
func requireCustomer(ctx context.Context, customers repository.CustomerRepository, customerID string, lock bool) error {
	c, err := customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if lock {
		return customers.LockForUpdate(ctx, customerID)
	}
	return nil
}

func findContact(list []*entity.CustomerContact, id string) *entity.CustomerContact {
	for _, c := range list {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func normalizeContact(in *dto.ContactRequest) {
	in.Name = strings.TrimSpace(in.Name)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Relation = strings.TrimSpace(in.Relation)
}
