package http

import (
	"net/http"
	"time"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetSlots handles GET /slots?workshop=&date= - free slots of one day.
func (s *Server) GetSlots(c echo.Context) error {
	workshopID, err := queryUUID(c, "workshop")
	if err != nil {
		return err
	}
	date, err := queryDate(c, "date")
	if err != nil {
		return err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	query, err := queries.NewGetAvailableSlotsQuery(workshopID, day)
	if err != nil {
		return err
	}

	slots, err := s.handlers.Slots.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]slotResponse, len(slots))
	for i, slot := range slots {
		response[i] = slotResponse{Start: slot.Start, End: slot.End, FreeSpace: slot.FreeSpace}
	}
	return c.JSON(http.StatusOK, response)
}

// BookIndividualSchedule handles POST /schedules/individual.
func (s *Server) BookIndividualSchedule(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	var req bookIndividualRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	t, err := req.target()
	if err != nil {
		return err
	}
	cmd, err := commands.NewBookIndividualScheduleCommand(a, t.orderID, t.workshopID, t.vehicleID, t.trailerID, req.StartAt)
	if err != nil {
		return err
	}

	booked, err := s.handlers.BookSchedule.HandleIndividual(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toScheduleResponse(booked))
}

// BookLegalSchedule handles POST /schedules/legal.
func (s *Server) BookLegalSchedule(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	var req bookLegalRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	t, err := req.target()
	if err != nil {
		return err
	}
	driverID, err := parseOptionalUUID("driver_id", req.DriverID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewBookLegalScheduleCommand(a, t.orderID, t.workshopID, t.vehicleID, t.trailerID, driverID, req.StartAt)
	if err != nil {
		return err
	}

	booked, err := s.handlers.BookSchedule.HandleLegal(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toScheduleResponse(booked))
}

// GetSchedule handles GET /schedules/:id.
func (s *Server) GetSchedule(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	view, err := s.readSchedule(c, a, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scheduleViewResponse(view))
}

// GetScheduleHistory handles GET /schedules/:id/history - the checkpoint timeline, oldest first.
func (s *Server) GetScheduleHistory(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if a.Role() == actor.RoleClient {
		if _, err = s.readSchedule(c, a, id); err != nil {
			return err
		}
	}

	query, err := queries.NewGetScheduleHistoryQuery(id)
	if err != nil {
		return err
	}
	rows, err := s.handlers.ScheduleHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]historyResponse, len(rows))
	for i, row := range rows {
		response[i] = historyViewResponse(row)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) readSchedule(c echo.Context, a actor.Actor, id kernel.UUID) (*queries.GetScheduleQueryResponse, error) {
	query, err := queries.NewGetScheduleQuery(id)
	if err != nil {
		return nil, err
	}
	view, err := s.handlers.Schedule.Handle(c.Request().Context(), query)
	if err != nil {
		return nil, err
	}
	if err = ensureReadable(a, view.Owner, "schedule"); err != nil {
		return nil, err
	}
	return view, nil
}

type bookingIDs struct {
	orderID, workshopID, vehicleID kernel.UUID
	trailerID                      *kernel.UUID
}

func (r bookIndividualRequest) target() (bookingIDs, error) {
	var (
		t   bookingIDs
		err error
	)
	if t.orderID, err = parseUUID("order_id", r.OrderID); err != nil {
		return bookingIDs{}, err
	}
	if t.workshopID, err = parseUUID("workshop_id", r.WorkshopID); err != nil {
		return bookingIDs{}, err
	}
	if t.vehicleID, err = parseUUID("vehicle_id", r.VehicleID); err != nil {
		return bookingIDs{}, err
	}
	if t.trailerID, err = parseOptionalUUID("trailer_id", r.TrailerID); err != nil {
		return bookingIDs{}, err
	}
	return t, nil
}
