package entity

// Roles válidos para el actor de la sesión.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

// GuestActorID centinela para compradores sin sesión.
const GuestActorID = "guest"

// Actor usuario que ejecuta la operación (viene del token de sesión; el login no es parte del núcleo).
type Actor struct {
	ID   string
	Role string
}

// Guest actor anónimo.
func Guest() Actor {
	return Actor{ID: GuestActorID, Role: RoleCustomer}
}

// IsStaff worker o admin.
func (a Actor) IsStaff() bool {
	return a.Role == RoleWorker || a.Role == RoleAdmin
}
