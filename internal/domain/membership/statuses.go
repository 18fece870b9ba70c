package membership

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ValidateStatusSave aplica la regla append-only del historial de estados:
// una entrada con identidad persistente no se vuelve a guardar.
func ValidateStatusSave(s *entity.CustomerStatus) error {
	if s == nil {
		return fmt.Errorf("%w: estado nulo", domain.ErrInvalidInput)
	}
	if s.IsPersisted() {
		return domain.ErrStatusImmutable
	}
	if s.CustomerID == "" || s.StatusID == "" {
		return fmt.Errorf("%w: customer y status son obligatorios", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Reason) == "" {
		return fmt.Errorf("%w: reason es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

// CurrentStatus devuelve la entrada más reciente del historial (nil si está vacío).
// history debe venir ordenado por date_changed ascendente.
func CurrentStatus(history []*entity.CustomerStatus) *entity.CustomerStatus {
	if len(history) == 0 {
		return nil
	}
	return history[len(history)-1]
}
