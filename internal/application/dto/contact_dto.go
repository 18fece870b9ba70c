package dto

import "time"

// ContactRequest alta o edición de un contacto del cliente.
type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
	Relation    string `json:"relation" validate:"required,max=100"`
	IsPrimary   bool   `json:"is_primary"`
	IsEmergency bool   `json:"is_emergency"`
}

// DesignateContactRequest traslada la marca principal y/o de emergencia a un contacto.
type DesignateContactRequest struct {
	Primary   bool `json:"primary"`
	Emergency bool `json:"emergency"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Relation    string    `json:"relation"`
	IsPrimary   bool      `json:"is_primary"`
	IsEmergency bool      `json:"is_emergency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
