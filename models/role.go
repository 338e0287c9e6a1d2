package models

// Role is a fixed reference entity describing an access level.
// Exactly two rows exist in the roles table: (1, "user") and (2, "admin").
type Role struct {
	RoleID int64  `json:"id"`
	Name   string `json:"name"`
}

// Role names and identifiers seeded at first boot. RoleIDUser is the
// default role linked to every account at registration time.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	RoleIDUser  int64 = 1
	RoleIDAdmin int64 = 2
)

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}
