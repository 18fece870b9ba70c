package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus estado posible de un cliente (Activo, Inactivo, Inactivo temporal...).
type ClientStatus struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s ClientStatus) String() string { return s.Name }

// Subscription plan de suscripción contratable por un cliente.
type Subscription struct {
	ID         string
	Code       string
	Name       string
	MonthlyFee decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Subscription) String() string { return fmt.Sprintf("%s (%s)", s.Name, s.Code) }

// DiscoverySource medio por el que el cliente conoció el gimnasio.
type DiscoverySource struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s DiscoverySource) String() string { return s.Name }
