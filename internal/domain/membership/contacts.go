// Package membership contiene las reglas de dominio de clientes del gimnasio:
// contactos principal/emergencia, historial de estados append-only y fechas de inscripción.
package membership

import (
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ValidateContactSave evalúa el guardado de incoming contra los contactos actuales del cliente.
// existing puede contener la versión previa de incoming (misma ID); esa fila no cuenta como "otro".
//
// Orden de comprobación:
//  1. incoming principal y otro contacto ya es principal  -> ErrContactPrimaryTaken
//  2. incoming emergencia y otro contacto ya es emergencia -> ErrContactEmergencyTaken
//  3. tras el guardado no queda principal                  -> ErrContactPrimaryRequired
//  4. tras el guardado no queda emergencia                 -> ErrContactEmergencyRequired
//
// Un cliente sin contactos solo acepta un primer contacto marcado como principal y de emergencia.
func ValidateContactSave(existing []*entity.CustomerContact, incoming *entity.CustomerContact) error {
	if incoming == nil {
		return fmt.Errorf("%w: contacto nulo", domain.ErrInvalidInput)
	}
	others := without(existing, incoming.ID)

	if incoming.IsPrimary && anyPrimary(others) {
		return domain.ErrContactPrimaryTaken
	}
	if incoming.IsEmergency && anyEmergency(others) {
		return domain.ErrContactEmergencyTaken
	}

	after := append(others, incoming)
	return requireRoles(after)
}

// ValidateContactDelete permite borrar si el cliente queda sin contactos
// o si los restantes siguen teniendo principal y emergencia.
func ValidateContactDelete(existing []*entity.CustomerContact, contactID string) error {
	if find(existing, contactID) == nil {
		return domain.ErrNotFound
	}
	remaining := without(existing, contactID)
	if len(remaining) == 0 {
		return nil
	}
	return requireRoles(remaining)
}

// Designate traslada las marcas pedidas al contacto targetID y las retira del titular anterior.
// Devuelve copias de los contactos que cambian (el destino y los titulares previos), listas para persistir.
func Designate(existing []*entity.CustomerContact, targetID string, primary, emergency bool) ([]*entity.CustomerContact, error) {
	if !primary && !emergency {
		return nil, fmt.Errorf("%w: indique primary y/o emergency", domain.ErrInvalidInput)
	}
	target := find(existing, targetID)
	if target == nil {
		return nil, domain.ErrNotFound
	}

	changed := make(map[string]*entity.CustomerContact)
	copyOf := func(c *entity.CustomerContact) *entity.CustomerContact {
		if cp, ok := changed[c.ID]; ok {
			return cp
		}
		cp := *c
		changed[c.ID] = &cp
		return &cp
	}

	for _, c := range existing {
		if c.ID == targetID {
			continue
		}
		if primary && c.IsPrimary {
			copyOf(c).IsPrimary = false
		}
		if emergency && c.IsEmergency {
			copyOf(c).IsEmergency = false
		}
	}
	t := copyOf(target)
	if primary {
		t.IsPrimary = true
	}
	if emergency {
		t.IsEmergency = true
	}

	final := make([]*entity.CustomerContact, 0, len(existing))
	out := make([]*entity.CustomerContact, 0, len(changed))
	for _, c := range existing {
		if cp, ok := changed[c.ID]; ok {
			final = append(final, cp)
			out = append(out, cp)
			continue
		}
		final = append(final, c)
	}
	if err := CheckContactInvariants(final); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckContactInvariants exige exactamente un principal y un contacto de emergencia
// cuando el conjunto no está vacío.
func CheckContactInvariants(contacts []*entity.CustomerContact) error {
	if len(contacts) == 0 {
		return nil
	}
	var primaries, emergencies int
	for _, c := range contacts {
		if c.IsPrimary {
			primaries++
		}
		if c.IsEmergency {
			emergencies++
		}
	}
	switch {
	case primaries > 1:
		return domain.ErrContactPrimaryTaken
	case emergencies > 1:
		return domain.ErrContactEmergencyTaken
	case primaries == 0:
		return domain.ErrContactPrimaryRequired
	case emergencies == 0:
		return domain.ErrContactEmergencyRequired
	}
	return nil
}

func requireRoles(contacts []*entity.CustomerContact) error {
	if !anyPrimary(contacts) {
		return domain.ErrContactPrimaryRequired
	}
	if !anyEmergency(contacts) {
		return domain.ErrContactEmergencyRequired
	}
	return nil
}

func without(contacts []*entity.CustomerContact, id string) []*entity.CustomerContact {
	out := make([]*entity.CustomerContact, 0, len(contacts))
	for _, c := range contacts {
		if id != "" && c.ID == id {
			continue
		}
		out = append(out, c)
	}
	return out
}

func find(contacts []*entity.CustomerContact, id string) *entity.CustomerContact {
	for _, c := range contacts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func anyPrimary(contacts []*entity.CustomerContact) bool {
	for _, c := range contacts {
		if c.IsPrimary {
			return true
		}
	}
	return false
}

func anyEmergency(contacts []*entity.CustomerContact) bool {
	for _, c := range contacts {
		if c.IsEmergency {
			return true
		}
	}
	return false
}
