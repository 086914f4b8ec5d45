package auth

// RoleAdmin habilita acciones administrativas (decidir cualquier adopción,
// borrar cualquier listing).
const RoleAdmin = "admin"

// Claims representa la identidad extraída del token.
type Claims struct {
	UserID string
	Role   string
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
