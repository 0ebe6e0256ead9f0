package entity

// Roles del personal del restaurante (viajan en el claim "role" del JWT).
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleCashier    = "Cashier"
	RoleKitchen    = "Kitchen"
	RoleServer     = "Server"
)
