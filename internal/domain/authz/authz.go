// Package authz concentra os predicados de autorização (papel e posse).
// São funções puras: recebem quem está agindo e decidem, sem tocar storage.
package authz

// Role define os papéis suportados.
// @Enum INTERESSADO, PROTETOR, ADMIN
type Role string

const (
	RoleInteressado Role = "INTERESSADO"
	RoleProtetor    Role = "PROTETOR"
	RoleAdmin       Role = "ADMIN"
)

// ValidRole informa se o papel é um dos três conhecidos.
func ValidRole(r Role) bool {
	switch r {
	case RoleInteressado, RoleProtetor, RoleAdmin:
		return true
	default:
		return false
	}
}

// ActingUser é a capability de autorização que os services recebem.
// Vem das claims do token (ou dos headers de dev) via middleware.
type ActingUser struct {
	ID   string
	Role Role
}

// HasRole verifica se o usuário possui algum dos papéis permitidos.
func HasRole(u ActingUser, allowed ...Role) bool {
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Owns decide se o usuário pode mutar um recurso de ownerID.
// Admin sempre pode; fora isso, só o próprio dono.
func Owns(u ActingUser, ownerID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.ID != "" && u.ID == ownerID
}
