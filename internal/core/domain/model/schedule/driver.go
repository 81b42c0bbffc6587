package schedule

import (
	"errors"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
)

// Driver is a copy of the driver's identity at booking time.
type Driver struct {
	UserID         kernel.UUID
	Name           string
	IdentityNumber string
}

func NewDriver(userID kernel.UUID, name, identityNumber string) (Driver, error) {
	d := Driver{
		UserID:         userID,
		Name:           strings.TrimSpace(name),
		IdentityNumber: strings.TrimSpace(identityNumber),
	}
	if err := d.Validate(); err != nil {
		return Driver{}, err
	}
	return d, nil
}

func (d Driver) Validate() error {
	var nameErr error
	if d.Name == "" {
		nameErr = errs.NewValueIsRequiredError("driver name")
	}
	return errors.Join(d.UserID.Validate(), nameErr)
}
