package commands

import (
	"errors"
	"fmt"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand records a purchase reported by the sales collaborator.
//
// Example:
//
//	owner, _ := kernel.NewOrganizationOwner(orgID)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), owner, workshopID, kernel.Kilograms(10000), "4500012345")
//	if err != nil {
//	    return fmt.Errorf("invalid purchase: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	owner      kernel.Owner
	workshopID kernel.UUID
	quan       kernel.Weight
	zakaz      string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	owner kernel.Owner,
	workshopID kernel.UUID,
	quan kernel.Weight,
	zakaz string,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		zakaz: strings.TrimSpace(zakaz),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setOwner(owner),
		c.setWorkshopID(workshopID),
		c.setQuan(quan),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return c, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Owner() kernel.Owner {
	return c.owner
}

func (c CreateOrderCommand) WorkshopID() kernel.UUID {
	return c.workshopID
}

func (c CreateOrderCommand) Quan() kernel.Weight {
	return c.quan
}

// Zakaz is the SAP order number, empty when not yet posted.
func (c CreateOrderCommand) Zakaz() string {
	return c.zakaz
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *CreateOrderCommand) setWorkshopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("workshop", err)
	}
	c.workshopID = id
	return nil
}

func (c *CreateOrderCommand) setQuan(quan kernel.Weight) error {
	if !quan.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quan", fmt.Errorf("%s is not greater than 0", quan))
	}
	c.quan = quan
	return nil
}
