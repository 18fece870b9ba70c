package entity

import "time"

// CustomerStatus entrada del historial de estados de un cliente.
// Solo se insertan filas nuevas; una fila persistida no se modifica nunca.
type CustomerStatus struct {
	ID          string
	CustomerID  string
	StatusID    string
	StatusName  string // desnormalizado en lecturas
	Reason      string
	ChangedBy   *string // usuario que registró el cambio; nil si se eliminó
	DateChanged time.Time
}

// IsPersisted indica si la entrada ya tiene identidad persistente.
func (s *CustomerStatus) IsPersisted() bool {
	return s != nil && s.ID != ""
}

// StatusChange entrada del historial acompañada de los datos del cliente y del usuario,
// para el registro global de cambios de estado.
type StatusChange struct {
	CustomerStatus
	ClientCode     string
	CustomerName   string
	ChangedByEmail string // "" si no hay usuario
}

// StatusChangeFilter filtros del registro global. From es inclusivo y To exclusivo;
// un StatusID vacío o una fecha nil no filtran.
type StatusChangeFilter struct {
	StatusID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
