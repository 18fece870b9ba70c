package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrValidation         = errors.New("regla de negocio incumplida")
)

// Códigos de las reglas de negocio de clientes.
const (
	CodeContactPrimaryTaken      = "CONTACT_PRIMARY_TAKEN"
	CodeContactEmergencyTaken    = "CONTACT_EMERGENCY_TAKEN"
	CodeContactPrimaryRequired   = "CONTACT_PRIMARY_REQUIRED"
	CodeContactEmergencyRequired = "CONTACT_EMERGENCY_REQUIRED"
	CodeStatusImmutable          = "STATUS_IMMUTABLE"
	CodeBirthAfterEnrollment     = "BIRTH_AFTER_ENROLLMENT"
	CodeCatalogInUse             = "CATALOG_IN_USE"
)

// ValidationError falla de una regla de dominio con mensaje para el usuario.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// Errores de las reglas de contactos y estados (mensajes visibles para el administrador).
var (
	ErrContactPrimaryTaken = NewValidationError(CodeContactPrimaryTaken,
		"There can only be one primary contact. Please remove the primary flag from another contact.")
	ErrContactEmergencyTaken = NewValidationError(CodeContactEmergencyTaken,
		"There can only be one emergency contact. Please remove the emergency flag from another contact.")
	ErrContactPrimaryRequired = NewValidationError(CodeContactPrimaryRequired,
		"At least one contact must be marked as the primary contact.")
	ErrContactEmergencyRequired = NewValidationError(CodeContactEmergencyRequired,
		"At least one contact must be marked as the emergency contact.")
	ErrStatusImmutable = NewValidationError(CodeStatusImmutable,
		"Cannot modify an existing status. You can only add new statuses.")
)
