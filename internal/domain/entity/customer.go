package entity

import "time"

// Géneros válidos para Customer.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// GenderLabel devuelve la etiqueta legible del código de género.
func GenderLabel(code string) string {
	switch code {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	default:
		return code
	}
}

// Customer cliente inscrito en el gimnasio.
// Es dueño de sus contactos y de su historial de estados (se borran con él).
type Customer struct {
	ID                string
	ClientCode        string
	Name              string
	NameSearch        string // nombre normalizado (sin acentos, minúsculas) para búsquedas
	CURP              string
	EnrollmentDate    time.Time
	BirthDate         time.Time
	Gender            string // M, F, O
	PhoneNumber       string
	Email             string
	PhotoPath         string
	DiscoverySourceID *string
	DiscoveryDetails  *string
	SubscriptionIDs   []string
	HasIllness        bool
	HasAllergy        bool
	HasFlatFeet       bool
	HasHeartCondition bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (c Customer) String() string { return c.Name }

// CustomerFilter criterios de búsqueda del listado de clientes.
type CustomerFilter struct {
	Query      string // client_code, nombre, curp o email
	Gender     string
	HasIllness *bool
	HasAllergy *bool
	Limit      int
	Offset     int
}
