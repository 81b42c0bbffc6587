package commands

import (
	"context"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/organization"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/services"
	"yard/internal/core/ports"
)

// BookScheduleCommandHandler books visits for both client kinds. Each booking is one
// transaction: the order and the workshop's template rows are locked, capacity is counted per
// workshop slot inside the transaction, the schedule is inserted and the order ledger is
// recomputed before commit.
type BookScheduleCommandHandler struct {
	uowFactory BookingUoWFactory
	policy     services.BookingPolicy
	slots      services.SlotGenerator
	ledger     services.OrderLedger
	graph      operation.Graph
	clock      ports.Clock
}

func NewBookScheduleCommandHandler(
	uowFactory BookingUoWFactory,
	policy services.BookingPolicy,
	slots services.SlotGenerator,
	graph operation.Graph,
	clock ports.Clock,
) BookScheduleCommandHandler {
	return BookScheduleCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		slots:      slots,
		ledger:     services.NewOrderLedger(),
		graph:      graph,
		clock:      clock,
	}
}

// HandleIndividual books for an individual client driving their own vehicle.
func (h *BookScheduleCommandHandler) HandleIndividual(
	ctx context.Context,
	cmd BookIndividualScheduleCommand,
) (*schedule.Schedule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.bookScheduleCore(ctx, cmd.target, func(_ BookingUoW, req services.BookingRequest) (schedule.Driver, error) {
		if err := h.policy.AuthorizeIndividual(req); err != nil {
			return schedule.Driver{}, err
		}
		a := req.Actor
		return schedule.NewDriver(a.ID(), a.Name(), a.IdentityNumber())
	})
}

// HandleLegal books on behalf of the organization that owns the order.
func (h *BookScheduleCommandHandler) HandleLegal(
	ctx context.Context,
	cmd BookLegalScheduleCommand,
) (*schedule.Schedule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.bookScheduleCore(ctx, cmd.target, func(uow BookingUoW, req services.BookingRequest) (schedule.Driver, error) {
		req.DriverID = cmd.DriverID()
		a := req.Actor

		if req.DriverID.IsEqual(a.ID()) {
			if err := h.policy.AuthorizeLegal(req, nil); err != nil {
				return schedule.Driver{}, err
			}
			return schedule.NewDriver(a.ID(), a.Name(), a.IdentityNumber())
		}

		var orgID kernel.UUID
		if id := req.Order.Owner().OrganizationID(); id != nil {
			orgID = *id
		}

		var employee *organization.Employee
		if orgID.Validate() == nil {
			found, err := uow.EmployeeRepository().Find(ctx, orgID, req.DriverID)
			if err != nil {
				return schedule.Driver{}, err
			}
			employee = found
		}

		if err := h.policy.AuthorizeLegal(req, employee); err != nil {
			return schedule.Driver{}, err
		}
		return schedule.NewDriver(employee.UserID(), employee.Name(), employee.IdentityNumber())
	})
}

type authorizeFunc func(uow BookingUoW, req services.BookingRequest) (schedule.Driver, error)

func (h *BookScheduleCommandHandler) bookScheduleCore(
	ctx context.Context,
	target bookingTarget,
	authorize authorizeFunc,
) (*schedule.Schedule, error) {
	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	templateRepo := uow.TemplateRepository()
	vehicleRepo := uow.VehicleRepository()
	scheduleRepo := uow.ScheduleRepository()

	o, err := orderRepo.GetForUpdate(ctx, target.orderID)
	if err != nil {
		return nil, err
	}

	day := target.startAt.In(h.slots.Location())
	templates, err := templateRepo.LockWorkshop(ctx, target.workshopID)
	if err != nil {
		return nil, err
	}
	tmpl, err := services.SelectActiveTemplate(target.workshopID, day, templates)
	if err != nil {
		return nil, err
	}

	req := services.BookingRequest{
		Actor:    target.actor,
		Order:    o,
		Template: tmpl,
		DriverID: target.actor.ID(),
	}
	if req.Vehicle, err = vehicleRepo.Get(ctx, target.vehicleID); err != nil {
		return nil, err
	}
	if target.trailerID != nil {
		if req.Trailer, err = vehicleRepo.Get(ctx, *target.trailerID); err != nil {
			return nil, err
		}
	}

	driver, err := authorize(uow, req)
	if err != nil {
		return nil, err
	}
	req.DriverID = driver.UserID

	if err = h.policy.Check(req); err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	sameDay, err := scheduleRepo.Find(ctx,
		ports.Schedules().OfWorkshop(tmpl.WorkshopID()).StartingBetween(dayStart, dayStart.AddDate(0, 0, 1)).Active())
	if err != nil {
		return nil, err
	}
	occupied := make([]time.Time, 0, len(sameDay))
	for _, s := range sameDay {
		occupied = append(occupied, s.StartAt())
	}

	slot, err := h.slots.Resolve(tmpl, target.startAt, now, occupied)
	if err != nil {
		return nil, err
	}

	s, err := schedule.NewSchedule(schedule.Booking{
		ID:            kernel.NewUUID(),
		OrderID:       o.ID(),
		Owner:         o.Owner(),
		Driver:        driver,
		VehicleID:     req.Vehicle.ID(),
		TrailerID:     target.trailerID,
		TemplateID:    tmpl.ID(),
		WorkshopID:    tmpl.WorkshopID(),
		StartAt:       slot.Start,
		EndAt:         slot.End,
		LoadingVolume: h.policy.LoadingVolume(req),
		BookedBy:      target.actor.Snapshot(),
		CreatedAt:     now,
	}, h.graph.First().Code)
	if err != nil {
		return nil, err
	}

	if err = scheduleRepo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = recomputeLedger(ctx, h.ledger, orderRepo, scheduleRepo, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// recomputeLedger rebuilds the totals of a locked order from all of its schedules and stores
// them.
func recomputeLedger(
	ctx context.Context,
	ledger services.OrderLedger,
	orders ports.OrderRepository,
	schedules ports.ScheduleRepository,
	o *order.Order,
) error {
	all, err := schedules.Find(ctx, ports.Schedules().OfOrder(o.ID()))
	if err != nil {
		return err
	}
	if err = ledger.Recompute(o, all); err != nil {
		return err
	}
	return orders.Update(ctx, o)
}
