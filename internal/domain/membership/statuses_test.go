package membership_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
)

func TestValidateStatusSave_NuevaEntrada(t *testing.T) {
	s := &entity.CustomerStatus{CustomerID: "c1", StatusID: "s1", Reason: "Alta inicial"}
	assert.NoError(t, membership.ValidateStatusSave(s))
}

func TestValidateStatusSave_EntradaPersistidaEsInmutable(t *testing.T) {
	s := &entity.CustomerStatus{ID: "st1", CustomerID: "c1", StatusID: "s1", Reason: "Cambio de motivo"}
	err := membership.ValidateStatusSave(s)
	assert.ErrorIs(t, err, domain.ErrStatusImmutable)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateStatusSave_MotivoObligatorio(t *testing.T) {
	s := &entity.CustomerStatus{CustomerID: "c1", StatusID: "s1", Reason: "   "}
	assert.ErrorIs(t, membership.ValidateStatusSave(s), domain.ErrInvalidInput)
}

func TestCurrentStatus(t *testing.T) {
	assert.Nil(t, membership.CurrentStatus(nil))
	now := time.Now()
	history := []*entity.CustomerStatus{
		{ID: "1", DateChanged: now.Add(-time.Hour)},
		{ID: "2", DateChanged: now},
	}
	assert.Equal(t, "2", membership.CurrentStatus(history).ID)
}

func TestValidateEnrollmentDates(t *testing.T) {
	birth := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	enroll := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, membership.ValidateEnrollmentDates(birth, enroll))
	assert.ErrorIs(t, membership.ValidateEnrollmentDates(enroll, birth), domain.ErrValidation)
}
