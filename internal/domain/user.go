package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the permission key for lifecycle transitions.
type Role string

// Supported roles.
const (
	// RoleEmployee submits complaints and reads their own.
	RoleEmployee Role = "employee"
	// RoleOfficer approves or rejects pending complaints.
	RoleOfficer Role = "officer"
	// RoleSpecialist works approved complaints for their department.
	RoleSpecialist Role = "it"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleOfficer, RoleSpecialist:
		return true
	}
	return false
}

// User represents a registered employee.
type User struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	EmployeeID   string    `db:"employee_id"   json:"employee_id"`
	Name         string    `db:"name"          json:"name"`
	Designation  string    `db:"designation"   json:"designation"`
	Phone        string    `db:"phone"         json:"phone"`
	Email        string    `db:"email"         json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role"          json:"role"`
	Department   string    `db:"department"    json:"department"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
