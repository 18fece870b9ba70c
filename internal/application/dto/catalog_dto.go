package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatusRequest alta/edición de un estado de cliente.
type ClientStatusRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ClientStatusResponse salida de un estado de cliente.
type ClientStatusResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionRequest alta/edición de un plan de suscripción.
type SubscriptionRequest struct {
	Code       string          `json:"code" validate:"required,max=50"`
	Name       string          `json:"name" validate:"required,max=150"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
}

// SubscriptionResponse salida de un plan de suscripción.
type SubscriptionResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Display    string          `json:"display"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DiscoverySourceRequest alta/edición de un medio de descubrimiento.
type DiscoverySourceRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DiscoverySourceResponse salida de un medio de descubrimiento.
type DiscoverySourceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
