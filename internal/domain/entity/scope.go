package entity

// AccessScope es el contexto de autorización del caller, extraído del JWT por el
// middleware y pasado explícitamente a los casos de uso (nunca estado ambiental).
type AccessScope struct {
	UserID     string
	DivisionID string // vacío para admin (acceso transversal)
	Role       string
}

// IsAdmin informa si el caller tiene acceso a todas las divisiones.
func (s AccessScope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanManage informa si el caller puede escribir (admin o gestor de división).
func (s AccessScope) CanManage() bool {
	return s.Role == RoleAdmin || s.Role == RoleDivisionManager
}

// CanAccessDivision informa si el caller puede ver recursos de la división dada.
// Los casos de uso responden ErrNotFound (no ErrForbidden) ante fallos de este
// chequeo para no revelar la existencia de tenants ajenos.
func (s AccessScope) CanAccessDivision(divisionID string) bool {
	return s.IsAdmin() || (s.DivisionID != "" && s.DivisionID == divisionID)
}
