package models

// Student roles carried in JWT claims
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// StudentSession identifies whose records are requested and carries the
// caller's credentials to the record source. It is built per request from
// the authenticated claims and passed explicitly.
type StudentSession struct {
	ContactID string `json:"contact_id" binding:"required"`
	Name      string `json:"name"`
	Token     string `json:"-"`
}
