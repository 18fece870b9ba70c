package dto

import "time"

// DateLayout formato de fechas (sin hora) en la API.
const DateLayout = "2006-01-02"

// CustomerRequest alta o edición completa (PUT) de un cliente.
// Photo es la ruta devuelta por POST /api/customers/photos.
type CustomerRequest struct {
	ClientCode         string   `json:"client_code" validate:"required,max=100"`
	Name               string   `json:"name" validate:"required,max=255"`
	CURP               string   `json:"curp" validate:"required,len=18"`
	EnrollmentDate     string   `json:"enrollment_date" validate:"required,datetime=2006-01-02"`
	BirthDate          string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender             string   `json:"gender" validate:"required,oneof=M F O"`
	PhoneNumber        string   `json:"phone_number" validate:"required,max=15"`
	Email              string   `json:"email" validate:"required,email,max=254"`
	Photo              string   `json:"photo" validate:"required,max=255"`
	DiscoverySourceID  *string  `json:"discovery_source_id" validate:"omitempty"`
	DiscoveryDetails   *string  `json:"discovery_details"`
	SubscriptionIDs    []string `json:"subscription_ids" validate:"dive,required"`
	HasIllness         bool     `json:"has_illness"`
	HasAllergy         bool     `json:"has_allergy"`
	HasFlatFeet        bool     `json:"has_flat_feet"`
	HasHeartConditions bool     `json:"has_heart_conditions"`
}

// CustomerListRequest filtros del listado (query string).
type CustomerListRequest struct {
	Query      string `query:"q"`
	Gender     string `query:"gender"`
	HasIllness *bool  `query:"has_illness"`
	HasAllergy *bool  `query:"has_allergy"`
	PageRequest
}

// CatalogRef referencia compacta a un registro de catálogo.
type CatalogRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubscriptionRef suscripción asociada a un cliente.
type SubscriptionRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CustomerResponse salida de un cliente (listados).
type CustomerResponse struct {
	ID                 string            `json:"id"`
	ClientCode         string            `json:"client_code"`
	Name               string            `json:"name"`
	CURP               string            `json:"curp"`
	EnrollmentDate     string            `json:"enrollment_date"`
	BirthDate          string            `json:"birth_date"`
	Gender             string            `json:"gender"`
	PhoneNumber        string            `json:"phone_number"`
	Email              string            `json:"email"`
	Photo              string            `json:"photo"`
	DiscoverySource    *CatalogRef       `json:"discovery_source,omitempty"`
	DiscoveryDetails   *string           `json:"discovery_details,omitempty"`
	Subscriptions      []SubscriptionRef `json:"subscriptions"`
	HasIllness         bool              `json:"has_illness"`
	HasAllergy         bool              `json:"has_allergy"`
	HasFlatFeet        bool              `json:"has_flat_feet"`
	HasHeartConditions bool              `json:"has_heart_conditions"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// CustomerDetailResponse cliente con contactos e historial de estados.
type CustomerDetailResponse struct {
	CustomerResponse
	Contacts      []ContactResponse        `json:"contacts"`
	Statuses      []CustomerStatusResponse `json:"statuses"`
	CurrentStatus *CustomerStatusResponse  `json:"current_status,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PhotoUploadResponse ruta de la foto almacenada.
type PhotoUploadResponse struct {
	Path string `json:"path"`
}
