package http

import (
	"net/http"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"

	"github.com/labstack/echo/v4"
)

// TakeCheckpoint handles POST /checkpoints/:operation/take/:schedule_id.
func (s *Server) TakeCheckpoint(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	code, err := operation.ParseCode(c.Param("operation"))
	if err != nil {
		return err
	}
	scheduleID, err := pathUUID(c, "schedule_id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewTakeCheckpointCommand(code, scheduleID, a)
	if err != nil {
		return err
	}
	row, err := s.handlers.TakeCheckpoint.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toHistoryResponse(row))
}

// DecideCheckpoint handles POST /checkpoints/:operation/decide/:history_id.
// A passed weighing carries weight_kg; a denied final weighing may carry next_operation.
func (s *Server) DecideCheckpoint(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	code, err := operation.ParseCode(c.Param("operation"))
	if err != nil {
		return err
	}
	historyID, err := pathUUID(c, "history_id")
	if err != nil {
		return err
	}
	var req decisionRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	var cmd commands.DecideCheckpointCommand
	if req.Passed {
		var weight *kernel.Weight
		if req.WeightKg != nil {
			w, wErr := kernel.WeightFromFloat(*req.WeightKg)
			if wErr != nil {
				return wErr
			}
			weight = &w
		}
		cmd, err = commands.NewPassCheckpointCommand(code, historyID, a, weight)
	} else {
		var next *operation.Code
		if req.NextOperation != nil {
			n, nErr := operation.ParseCode(*req.NextOperation)
			if nErr != nil {
				return nErr
			}
			next = &n
		}
		cmd, err = commands.NewDenyCheckpointCommand(code, historyID, a, req.Reason, next)
	}
	if err != nil {
		return err
	}

	updated, err := s.handlers.DecideCheckpoint.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toScheduleResponse(updated))
}
