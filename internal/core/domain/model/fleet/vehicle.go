// Package fleet holds the vehicles and trailers clients bring to the yard. Vehicles are
// read-only master data maintained outside the core.
package fleet

import (
	"errors"
	"fmt"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle is a truck or a trailer owned by a user or an organization.
type Vehicle struct { //nolint:recvcheck //using for validation
	id           kernel.UUID
	owner        kernel.Owner
	plateNumber  string
	loadCapacity kernel.Weight
	isTrailer    bool

	guard guard.ConstructorGuard
}

func NewVehicle(
	id kernel.UUID,
	owner kernel.Owner,
	plateNumber string,
	loadCapacity kernel.Weight,
	isTrailer bool,
) (*Vehicle, error) {
	v := &Vehicle{
		isTrailer: isTrailer,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		owner.Validate(),
		v.setPlateNumber(plateNumber),
		v.setLoadCapacity(loadCapacity),
	); err != nil {
		return nil, err
	}
	v.id, v.owner = id, owner

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) Owner() kernel.Owner {
	return v.owner
}

func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

func (v *Vehicle) LoadCapacity() kernel.Weight {
	return v.loadCapacity
}

func (v *Vehicle) IsTrailer() bool {
	return v.isTrailer
}

func (v *Vehicle) setPlateNumber(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plate_number")
	}
	v.plateNumber = plate
	return nil
}

func (v *Vehicle) setLoadCapacity(capacity kernel.Weight) error {
	if !capacity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("load_capacity", fmt.Errorf("%s is not greater than 0", capacity))
	}
	v.loadCapacity = capacity
	return nil
}
