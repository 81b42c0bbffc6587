package kernel

import (
	"errors"

	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

// ErrOwnerIsNotConstructed is returned when an Owner bypassed NewUserOwner / NewOrganizationOwner.
var ErrOwnerIsNotConstructed = errs.NewValueIsRequiredError("owner must be created via NewUserOwner or NewOrganizationOwner")

// Owner identifies who owns an order, vehicle or schedule: either an individual user or an
// organization, never both.
type Owner struct { //nolint:recvcheck //using for validation
	userID         *UUID
	organizationID *UUID
	guard          guard.ConstructorGuard
}

func NewUserOwner(userID UUID) (Owner, error) {
	if err := userID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{userID: &userID, guard: guard.NewConstructorGuard()}, nil
}

func NewOrganizationOwner(organizationID UUID) (Owner, error) {
	if err := organizationID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{organizationID: &organizationID, guard: guard.NewConstructorGuard()}, nil
}

// RestoreOwner rebuilds an Owner from persisted nullable columns and enforces the
// exclusive-or rule.
func RestoreOwner(userID, organizationID *UUID) (Owner, error) {
	switch {
	case userID != nil && organizationID != nil:
		return Owner{}, errs.NewValueIsInvalidErrorWithCause("owner",
			errors.New("owner cannot be both a user and an organization"))
	case userID != nil:
		return NewUserOwner(*userID)
	case organizationID != nil:
		return NewOrganizationOwner(*organizationID)
	default:
		return Owner{}, errs.NewValueIsRequiredError("owner")
	}
}

func (o Owner) Validate() error {
	return o.guard.Validate(ErrOwnerIsNotConstructed)
}

func (o Owner) IsUser() bool {
	return o.userID != nil
}

func (o Owner) IsOrganization() bool {
	return o.organizationID != nil
}

// UserID returns nil for organization owners.
func (o Owner) UserID() *UUID {
	return o.userID
}

// OrganizationID returns nil for user owners.
func (o Owner) OrganizationID() *UUID {
	return o.organizationID
}

func (o Owner) IsEqual(other Owner) bool {
	switch {
	case o.userID != nil && other.userID != nil:
		return o.userID.IsEqual(*other.userID)
	case o.organizationID != nil && other.organizationID != nil:
		return o.organizationID.IsEqual(*other.organizationID)
	default:
		return false
	}
}
