package domain

import "time"

// Role classifies accounts on the platform.
type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleExhibitor Role = "exhibitor"
	RolePartner   Role = "partner"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether the given role is one an account may register with.
func ValidRole(r Role) bool {
	switch r {
	case RoleVisitor, RoleExhibitor, RolePartner:
		return true
	}
	return false
}

// ValidationState is the admin-gated approval state of an account.
type ValidationState string

const (
	ValidationPending   ValidationState = "pending"
	ValidationValidated ValidationState = "validated"
	ValidationRejected  ValidationState = "rejected"
)

// CanTransition reports whether the state may still move. Transitions are
// one-way: pending may become validated or rejected, terminal states never
// change again.
func (s ValidationState) CanTransition() bool {
	return s == ValidationPending
}

// Terminal reports whether the state is final.
func (s ValidationState) Terminal() bool {
	return s == ValidationValidated || s == ValidationRejected
}

// User is the domain model for platform accounts.
type User struct {
	ID                 string
	Email              string
	PasswordHash       string
	Role               Role
	ValidationState    ValidationState
	FirstName          string
	LastName           string
	Company            string
	Phone              string
	VisitorPackage     *string
	PartnershipPackage *string
	CreatedAt          time.Time
}

// FullName joins the profile name fields.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
