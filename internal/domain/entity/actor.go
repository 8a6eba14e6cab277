package entity

// Role rol del actor dentro del flujo.
type Role string

const (
	RoleUser               Role = "User"
	RoleInventoryHolder    Role = "Inventory_Holder"
	RoleMMGInventoryHolder Role = "MMG_Inventory_Holder"
	RoleSuperAdmin         Role = "Super_Admin"
)

// Valid indica si el rol es conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleInventoryHolder, RoleMMGInventoryHolder, RoleSuperAdmin:
		return true
	}
	return false
}

// Actor quien ejecuta una operación (extraído del token por la capa HTTP).
type Actor struct {
	ID         string
	Role       Role
	Department string
}

// Is indica si el actor tiene alguno de los roles.
func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
