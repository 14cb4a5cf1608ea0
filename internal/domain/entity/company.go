package entity

import "time"

// Company representa una empresa (tenant). Toda fila de datos operativos
// pertenece exactamente a una empresa; el aislamiento lo aplican las
// políticas RLS sobre app.current_company_id.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
