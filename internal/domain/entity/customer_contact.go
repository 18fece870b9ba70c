package entity

import (
	"fmt"
	"time"
)

// CustomerContact contacto de un cliente (familiar, tutor...).
// Por cliente debe existir exactamente un contacto principal y uno de emergencia.
type CustomerContact struct {
	ID          string
	CustomerID  string
	Name        string
	PhoneNumber string
	Relation    string
	IsPrimary   bool
	IsEmergency bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c CustomerContact) String() string { return fmt.Sprintf("%s (%s)", c.Name, c.Relation) }
