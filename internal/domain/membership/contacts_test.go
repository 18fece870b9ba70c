package membership_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
)

func contact(id string, primary, emergency bool) *entity.CustomerContact {
	return &entity.CustomerContact{
		ID: id, CustomerID: "c1", Name: "Contacto " + id, PhoneNumber: "5551234567",
		Relation: "Hermano", IsPrimary: primary, IsEmergency: emergency,
	}
}

// Primer contacto con ambas marcas: único caso válido para un cliente sin contactos.
func TestValidateContactSave_PrimerContactoConAmbasMarcas(t *testing.T) {
	err := membership.ValidateContactSave(nil, contact("", true, true))
	assert.NoError(t, err)
}

func TestValidateContactSave_PrimerContactoSinPrincipal(t *testing.T) {
	err := membership.ValidateContactSave(nil, contact("", false, true))
	assert.ErrorIs(t, err, domain.ErrContactPrimaryRequired)
}

func TestValidateContactSave_PrimerContactoSinEmergencia(t *testing.T) {
	err := membership.ValidateContactSave(nil, contact("", true, false))
	assert.ErrorIs(t, err, domain.ErrContactEmergencyRequired)
}

func TestValidateContactSave_SegundoPrincipalRechazado(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true)}
	err := membership.ValidateContactSave(existing, contact("", true, false))
	assert.ErrorIs(t, err, domain.ErrContactPrimaryTaken)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestValidateContactSave_SegundaEmergenciaRechazada(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true)}
	err := membership.ValidateContactSave(existing, contact("", false, true))
	assert.ErrorIs(t, err, domain.ErrContactEmergencyTaken)
}

func TestValidateContactSave_SegundoContactoSinMarcas(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true)}
	assert.NoError(t, membership.ValidateContactSave(existing, contact("", false, false)))
}

// Al editar, la versión previa del mismo contacto no cuenta como "otro".
func TestValidateContactSave_EditarTitularConservaMarcas(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true), contact("b", false, false)}
	edited := contact("a", true, true)
	edited.PhoneNumber = "5550000000"
	assert.NoError(t, membership.ValidateContactSave(existing, edited))
}

func TestValidateContactSave_QuitarMarcaDejaSinPrincipal(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true), contact("b", false, false)}
	err := membership.ValidateContactSave(existing, contact("a", false, true))
	assert.ErrorIs(t, err, domain.ErrContactPrimaryRequired)
}

func TestValidateContactDelete(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, false), contact("b", false, true), contact("c", false, false)}

	assert.NoError(t, membership.ValidateContactDelete(existing, "c"))
	assert.ErrorIs(t, membership.ValidateContactDelete(existing, "a"), domain.ErrContactPrimaryRequired)
	assert.ErrorIs(t, membership.ValidateContactDelete(existing, "b"), domain.ErrContactEmergencyRequired)
	assert.ErrorIs(t, membership.ValidateContactDelete(existing, "zz"), domain.ErrNotFound)

	// el último contacto siempre puede eliminarse
	single := []*entity.CustomerContact{contact("a", true, true)}
	assert.NoError(t, membership.ValidateContactDelete(single, "a"))
}

func TestDesignate_TrasladaPrincipal(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true), contact("b", false, false)}

	changed, err := membership.Designate(existing, "b", true, false)
	require.NoError(t, err)
	require.Len(t, changed, 2)

	byID := map[string]*entity.CustomerContact{}
	for _, c := range changed {
		byID[c.ID] = c
	}
	assert.False(t, byID["a"].IsPrimary)
	assert.True(t, byID["a"].IsEmergency)
	assert.True(t, byID["b"].IsPrimary)
	assert.False(t, byID["b"].IsEmergency)

	// los originales no se modifican
	assert.True(t, existing[0].IsPrimary)
}

func TestDesignate_SinMarcas(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true)}
	_, err := membership.Designate(existing, "a", false, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDesignate_ContactoInexistente(t *testing.T) {
	existing := []*entity.CustomerContact{contact("a", true, true)}
	_, err := membership.Designate(existing, "x", true, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckContactInvariants(t *testing.T) {
	assert.NoError(t, membership.CheckContactInvariants(nil))
	assert.NoError(t, membership.CheckContactInvariants([]*entity.CustomerContact{contact("a", true, false), contact("b", false, true)}))
	assert.ErrorIs(t, membership.CheckContactInvariants([]*entity.CustomerContact{contact("a", true, true), contact("b", true, false)}), domain.ErrContactPrimaryTaken)
	assert.ErrorIs(t, membership.CheckContactInvariants([]*entity.CustomerContact{contact("a", false, true)}), domain.ErrContactPrimaryRequired)
}
