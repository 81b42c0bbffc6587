package http

import (
	"net/http"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /orders - the purchase fact forwarded by the sales system.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	if req.ID != nil {
		id, err := parseUUID("id", *req.ID)
		if err != nil {
			return err
		}
		orderID = id
	}
	userID, err := parseOptionalUUID("owner_user_id", req.OwnerUserID)
	if err != nil {
		return err
	}
	orgID, err := parseOptionalUUID("owner_organization_id", req.OwnerOrganizationID)
	if err != nil {
		return err
	}
	owner, err := kernel.RestoreOwner(userID, orgID)
	if err != nil {
		return err
	}
	workshopID, err := parseUUID("workshop_id", req.WorkshopID)
	if err != nil {
		return err
	}
	quan, err := kernel.WeightFromFloat(req.QuanKg)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, owner, workshopID, quan, req.Zakaz)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(created))
}

// RecordPayment handles POST /orders/:id/payment.
func (s *Server) RecordPayment(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req paymentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, req.TransactionID)
	if err != nil {
		return err
	}
	paid, err := s.handlers.RecordPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(paid))
}

// CloseOrder handles POST /orders/:id/close.
func (s *Server) CloseOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCloseOrderCommand(orderID)
	if err != nil {
		return err
	}
	closed, err := s.handlers.CloseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(closed))
}

// GetOrderLedger handles GET /orders/:id/ledger.
func (s *Server) GetOrderLedger(c echo.Context) error {
	a, err := actorOf(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderLedgerQuery(orderID)
	if err != nil {
		return err
	}
	ledger, err := s.handlers.OrderLedger.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if err = ensureReadable(a, ledger.Owner, "order"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLedgerResponse(ledger))
}
