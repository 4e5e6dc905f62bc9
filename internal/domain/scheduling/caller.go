package scheduling

import "github.com/motorvia/autocare-scheduler/internal/models"

// Caller is the resolved identity every orchestrating operation
// receives. Policy checks happen explicitly against it; nothing in the
// core reads ambient auth state.
type Caller struct {
	ID   uint
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

func (c Caller) IsStaff() bool {
	return c.Role == models.RoleAdmin || c.Role == models.RoleEmployee
}
