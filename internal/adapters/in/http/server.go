package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	SlotsQueryHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableSlotsQuery) ([]queries.GetAvailableSlotsQueryResponse, error)
	}
	ScheduleQueryHandler interface {
		Handle(ctx context.Context, query queries.GetScheduleQuery) (*queries.GetScheduleQueryResponse, error)
	}
	ScheduleHistoryQueryHandler interface {
		Handle(ctx context.Context, query queries.GetScheduleHistoryQuery) ([]queries.GetScheduleHistoryQueryResponse, error)
	}
	OrderLedgerQueryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderLedgerQuery) (*queries.GetOrderLedgerQueryResponse, error)
	}
	BookScheduleHandler interface {
		HandleIndividual(ctx context.Context, cmd commands.BookIndividualScheduleCommand) (*schedule.Schedule, error)
		HandleLegal(ctx context.Context, cmd commands.BookLegalScheduleCommand) (*schedule.Schedule, error)
	}
	TakeCheckpointHandler interface {
		Handle(ctx context.Context, cmd commands.TakeCheckpointCommand) (*schedule.History, error)
	}
	DecideCheckpointHandler interface {
		Handle(ctx context.Context, cmd commands.DecideCheckpointCommand) (*schedule.Schedule, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	RecordPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (*order.Order, error)
	}
	CloseOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CloseOrderCommand) (*order.Order, error)
	}
)

// Handlers are the use cases behind the REST surface.
type Handlers struct {
	Slots            SlotsQueryHandler
	Schedule         ScheduleQueryHandler
	ScheduleHistory  ScheduleHistoryQueryHandler
	OrderLedger      OrderLedgerQueryHandler
	BookSchedule     BookScheduleHandler
	TakeCheckpoint   TakeCheckpointHandler
	DecideCheckpoint DecideCheckpointHandler
	CreateOrder      CreateOrderHandler
	RecordPayment    RecordPaymentHandler
	CloseOrder       CloseOrderHandler
}

// Server exposes slots, bookings, checkpoints and orders over echo.
type Server struct {
	echo     *echo.Echo
	handlers Handlers
	graph    operation.Graph
	loc      *time.Location
	validate echo.MiddlewareFunc
}

// NewServer builds the echo instance and registers every route.
// Dates without a zone are read in loc, the facility time zone.
func NewServer(
	ctx context.Context,
	handlers Handlers,
	graph operation.Graph,
	loc *time.Location,
	logger *slog.Logger,
) (*Server, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := openapiValidation(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newBodyValidator()
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:     e,
		handlers: handlers,
		graph:    graph,
		loc:      loc,
		validate: validate,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/operations", s.GetOperations)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/slots", s.GetSlots, s.guard(capSlotsRead)...)

	e.POST("/schedules/individual", s.BookIndividualSchedule, s.guard(capSchedulesBook)...)
	e.POST("/schedules/legal", s.BookLegalSchedule, s.guard(capSchedulesBook)...)
	e.GET("/schedules/:id", s.GetSchedule, s.guard(capSchedulesRead)...)
	e.GET("/schedules/:id/history", s.GetScheduleHistory, s.guard(capSchedulesRead)...)

	e.POST("/checkpoints/:operation/take/:schedule_id", s.TakeCheckpoint, s.guard(capCheckpointsOperate)...)
	e.POST("/checkpoints/:operation/decide/:history_id", s.DecideCheckpoint, s.guard(capCheckpointsOperate)...)

	e.POST("/orders", s.CreateOrder, s.guard(capOrdersManage)...)
	e.POST("/orders/:id/payment", s.RecordPayment, s.guard(capOrdersManage)...)
	e.POST("/orders/:id/close", s.CloseOrder, s.guard(capOrdersManage)...)
	e.GET("/orders/:id/ledger", s.GetOrderLedger, s.guard(capOrdersRead)...)
}

// guard authenticates the actor, checks the capability and validates against the API document.
func (s *Server) guard(c capability) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{actorFromHeaders, requires(c), s.validate}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(port string) error {
	return s.echo.Start(fmt.Sprintf("0.0.0.0:%s", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// GetOperations handles GET /operations: the checkpoint graph in seed order.
func (s *Server) GetOperations(c echo.Context) error {
	ops := s.graph.All()
	response := make([]operationResponse, len(ops))
	for i, op := range ops {
		response[i] = toOperationResponse(op)
	}
	return c.JSON(http.StatusOK, response)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
