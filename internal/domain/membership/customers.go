package membership

import (
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// ValidateEnrollmentDates exige que la fecha de nacimiento no sea posterior a la inscripción.
func ValidateEnrollmentDates(birth, enrollment time.Time) error {
	if birth.After(enrollment) {
		return domain.NewValidationError(domain.CodeBirthAfterEnrollment,
			"birth_date cannot be after enrollment_date")
	}
	return nil
}
