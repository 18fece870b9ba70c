package dto

import "time"

// CustomerStatusRequest nueva entrada del historial de estados.
type CustomerStatusRequest struct {
	StatusID string `json:"status_id" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

// CustomerStatusResponse entrada del historial (solo lectura).
type CustomerStatusResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	StatusID    string    `json:"status_id"`
	StatusName  string    `json:"status_name"`
	Reason      string    `json:"reason"`
	ChangedBy   *string   `json:"changed_by"`
	DateChanged time.Time `json:"date_changed"`
}

// StatusChangeListRequest filtros del registro global de cambios de estado.
// From y To son fechas (YYYY-MM-DD) inclusivas.
type StatusChangeListRequest struct {
	StatusID string `query:"status_id"`
	From     string `query:"from"`
	To       string `query:"to"`
	PageRequest
}

// StatusChangeResponse cambio de estado con el cliente y el usuario que lo registró.
type StatusChangeResponse struct {
	CustomerStatusResponse
	ClientCode     string `json:"client_code"`
	CustomerName   string `json:"customer_name"`
	ChangedByEmail string `json:"changed_by_email,omitempty"`
}

// StatusChangeListResponse página del registro global.
type StatusChangeListResponse struct {
	Items []StatusChangeResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
