package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin           = "admin"            // acceso a todas las divisiones
	RoleDivisionManager = "division_manager" // gestiona su propia división
	RoleViewer          = "viewer"           // solo lectura en su división
)

// User representa un usuario del backoffice. DivisionID es nil para admins
// (acceso transversal); para el resto delimita su ámbito de tenant.
type User struct {
	ID           string
	DivisionID   *string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // ver constantes Role*
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve el nombre completo para mostrar.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
