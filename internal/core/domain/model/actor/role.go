package actor

import (
	"fmt"

	"yard/internal/pkg/errs"
)

// Role is the role code assigned by the auth collaborator.
type Role string

const (
	RoleClient   Role = "client"
	RoleSecurity Role = "security"
	RoleWeigher  Role = "weigher"
	RoleLoader   Role = "loader"
	RoleAdmin    Role = "admin"
)

func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleSecurity, RoleWeigher, RoleLoader, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// UserType tells individuals from representatives of legal entities.
type UserType string

const (
	Individual UserType = "individual"
	Legal      UserType = "legal"
)

func (t UserType) Validate() error {
	if t != Individual && t != Legal {
		return errs.NewValueIsInvalidErrorWithCause("user type", fmt.Errorf("%q is not a known user type", string(t)))
	}
	return nil
}
