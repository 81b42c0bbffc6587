// Package organization holds the link between legal entities and the people who drive for
// them.
package organization

import (
	"errors"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
)

// Employee is a registered driver of an organization.
type Employee struct {
	organizationID kernel.UUID
	userID         kernel.UUID
	name           string
	identityNumber string
}

func NewEmployee(organizationID, userID kernel.UUID, name, identityNumber string) (Employee, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(organizationID.Validate(), userID.Validate(), nameErr); err != nil {
		return Employee{}, err
	}

	return Employee{
		organizationID: organizationID,
		userID:         userID,
		name:           name,
		identityNumber: strings.TrimSpace(identityNumber),
	}, nil
}

func (e Employee) OrganizationID() kernel.UUID {
	return e.organizationID
}

func (e Employee) UserID() kernel.UUID {
	return e.userID
}

func (e Employee) Name() string {
	return e.name
}

func (e Employee) IdentityNumber() string {
	return e.identityNumber
}
