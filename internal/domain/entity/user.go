package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"
	RoleSuperadmin = "superadmin" // plataforma: puede indicar empresa explícita por llamada
)

// User usuario de una empresa.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
