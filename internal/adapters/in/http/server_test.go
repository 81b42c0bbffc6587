package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	yardhttp "yard/internal/adapters/in/http"
	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var almaty = time.FixedZone("Asia/Almaty", 5*60*60)

type testActor struct {
	id   kernel.UUID
	role actor.Role
	kind actor.UserType
	orgs []kernel.UUID
}

func (a testActor) domain(t *testing.T) actor.Actor {
	t.Helper()
	da, err := actor.NewActor(a.id, "Aidos", "900101300123", a.role, a.kind, a.orgs)
	require.NoError(t, err)
	return da
}

type ServerTestSuite struct {
	suite.Suite

	slots    *MockSlotsQueryHandler
	schedule *MockScheduleQueryHandler
	history  *MockScheduleHistoryQueryHandler
	ledger   *MockOrderLedgerQueryHandler
	book     *MockBookScheduleHandler
	take     *MockTakeCheckpointHandler
	decide   *MockDecideCheckpointHandler
	create   *MockCreateOrderHandler
	payment  *MockRecordPaymentHandler
	closer   *MockCloseOrderHandler

	server *yardhttp.Server

	client  testActor
	weigher testActor
	admin   testActor
}

func (s *ServerTestSuite) SetupTest() {
	s.slots = new(MockSlotsQueryHandler)
	s.schedule = new(MockScheduleQueryHandler)
	s.history = new(MockScheduleHistoryQueryHandler)
	s.ledger = new(MockOrderLedgerQueryHandler)
	s.book = new(MockBookScheduleHandler)
	s.take = new(MockTakeCheckpointHandler)
	s.decide = new(MockDecideCheckpointHandler)
	s.create = new(MockCreateOrderHandler)
	s.payment = new(MockRecordPaymentHandler)
	s.closer = new(MockCloseOrderHandler)

	server, err := yardhttp.NewServer(context.Background(), yardhttp.Handlers{
		Slots:            s.slots,
		Schedule:         s.schedule,
		ScheduleHistory:  s.history,
		OrderLedger:      s.ledger,
		BookSchedule:     s.book,
		TakeCheckpoint:   s.take,
		DecideCheckpoint: s.decide,
		CreateOrder:      s.create,
		RecordPayment:    s.payment,
		CloseOrder:       s.closer,
	}, operation.Default(), almaty, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.server = server

	s.client = testActor{id: kernel.NewUUID(), role: actor.RoleClient, kind: actor.Individual}
	s.weigher = testActor{id: kernel.NewUUID(), role: actor.RoleWeigher, kind: actor.Individual}
	s.admin = testActor{id: kernel.NewUUID(), role: actor.RoleAdmin, kind: actor.Individual}
}

func (s *ServerTestSuite) do(method, target string, as *testActor, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set(yardhttp.HeaderActorID, as.id.String())
		req.Header.Set(yardhttp.HeaderActorName, "Aidos")
		req.Header.Set(yardhttp.HeaderActorIdentity, "900101300123")
		req.Header.Set(yardhttp.HeaderActorRole, as.role.String())
		req.Header.Set(yardhttp.HeaderActorType, string(as.kind))
		orgs := make([]string, len(as.orgs))
		for i, org := range as.orgs {
			orgs[i] = org.String()
		}
		req.Header.Set(yardhttp.HeaderActorOrganizations, strings.Join(orgs, ","))
	}

	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) errorCode(rec *httptest.ResponseRecorder) int {
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func (s *ServerTestSuite) bookedSchedule(owner kernel.Owner) *schedule.Schedule {
	driver, err := schedule.NewDriver(s.client.id, "Aidos", "900101300123")
	s.Require().NoError(err)
	start := time.Date(2025, 3, 10, 9, 20, 0, 0, almaty)

	booked, err := schedule.NewSchedule(schedule.Booking{
		ID:            kernel.NewUUID(),
		OrderID:       kernel.NewUUID(),
		Owner:         owner,
		Driver:        driver,
		VehicleID:     kernel.NewUUID(),
		TemplateID:    kernel.NewUUID(),
		WorkshopID:    kernel.NewUUID(),
		StartAt:       start,
		EndAt:         start.Add(30 * time.Minute),
		LoadingVolume: kernel.Kilograms(20000),
		BookedBy:      s.client.domain(s.T()).Snapshot(),
		CreatedAt:     start.Add(-time.Hour),
	}, operation.Default().First().Code)
	s.Require().NoError(err)
	return booked
}

func (s *ServerTestSuite) TestHealth_IsPublic() {
	rec := s.do(http.MethodGet, "/health", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestOperations_ListsGraphInChainOrder() {
	rec := s.do(http.MethodGet, "/operations", nil, "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var ops []struct {
		Code   string `json:"code"`
		IsLast bool   `json:"is_last"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ops))
	s.Require().Len(ops, len(operation.Default().All()))
	s.Equal("entry", ops[0].Code)
}

func (s *ServerTestSuite) TestSwaggerServesEmbeddedDocument() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/schedules/individual")
}

func (s *ServerTestSuite) TestMissingActorHeaders_Unauthorized() {
	rec := s.do(http.MethodGet, "/slots?workshop="+kernel.NewUUID().String()+"&date=2025-03-10", nil, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(http.StatusUnauthorized, s.errorCode(rec))
	s.slots.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestUnknownRole_Unauthorized() {
	stranger := testActor{id: kernel.NewUUID(), role: actor.Role("driver"), kind: actor.Individual}

	rec := s.do(http.MethodGet, "/slots?workshop="+kernel.NewUUID().String()+"&date=2025-03-10", &stranger, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestGetSlots_ReadsDateInFacilityZone() {
	workshopID := kernel.NewUUID()
	start := time.Date(2025, 3, 10, 8, 40, 0, 0, almaty)
	s.slots.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAvailableSlotsQuery) bool {
		return q.WorkshopID().IsEqual(workshopID) &&
			q.Date().Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, almaty))
	})).Return([]queries.GetAvailableSlotsQueryResponse{
		{Start: start, End: start.Add(30 * time.Minute), FreeSpace: 1},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/slots?workshop="+workshopID.String()+"&date=2025-03-10", &s.weigher, "")

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var slots []struct {
		Start     time.Time `json:"start"`
		FreeSpace int       `json:"free_space"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &slots))
	s.Require().Len(slots, 1)
	s.True(slots[0].Start.Equal(start))
	s.Equal(1, slots[0].FreeSpace)
	s.slots.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestGetSlots_MalformedDate_BadRequest() {
	rec := s.do(http.MethodGet, "/slots?workshop="+kernel.NewUUID().String()+"&date=10.03.2025", &s.client, "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.slots.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestGetSlots_NoTemplate_NotFound() {
	s.slots.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("template", "2025-03-10")).Once()

	rec := s.do(http.MethodGet, "/slots?workshop="+kernel.NewUUID().String()+"&date=2025-03-10", &s.client, "")

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestBookIndividual_PassesActorAndReturnsSchedule() {
	owner, err := kernel.NewUserOwner(s.client.id)
	s.Require().NoError(err)
	booked := s.bookedSchedule(owner)
	orderID := kernel.NewUUID()

	s.book.On("HandleIndividual", mock.Anything, mock.MatchedBy(func(cmd commands.BookIndividualScheduleCommand) bool {
		return cmd.Actor().ID().IsEqual(s.client.id) && cmd.OrderID().IsEqual(orderID) &&
			cmd.StartAt().Equal(time.Date(2025, 3, 10, 9, 20, 0, 0, almaty))
	})).Return(booked, nil).Once()

	body := `{"order_id":"` + orderID.String() + `","workshop_id":"` + kernel.NewUUID().String() +
		`","vehicle_id":"` + kernel.NewUUID().String() + `","start_at":"2025-03-10T09:20:00+05:00"}`
	rec := s.do(http.MethodPost, "/schedules/individual", &s.client, body)

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID               string  `json:"id"`
		CurrentOperation string  `json:"current_operation"`
		LoadingVolumeKg  float64 `json:"loading_volume_kg"`
		IsActive         bool    `json:"is_active"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(booked.ID().String(), resp.ID)
	s.Equal("entry", resp.CurrentOperation)
	s.InDelta(20000, resp.LoadingVolumeKg, 0.001)
	s.True(resp.IsActive)
	s.book.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestBookIndividual_MissingVehicle_BadRequest() {
	body := `{"order_id":"` + kernel.NewUUID().String() + `","workshop_id":"` + kernel.NewUUID().String() +
		`","start_at":"2025-03-10T09:20:00+05:00"}`

	rec := s.do(http.MethodPost, "/schedules/individual", &s.client, body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.book.AssertNotCalled(s.T(), "HandleIndividual", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestBookIndividual_ErrorMapping() {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"conflict", errs.NewConflictError("slot is full"), http.StatusConflict, ""},
		{"forbidden", errs.NewForbiddenError("book for another owner"), http.StatusForbidden, ""},
		{"integrity", errs.NewIntegrityError("two templates are active"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.book.ExpectedCalls = nil
			s.book.On("HandleIndividual", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			body := `{"order_id":"` + kernel.NewUUID().String() + `","workshop_id":"` + kernel.NewUUID().String() +
				`","vehicle_id":"` + kernel.NewUUID().String() + `","start_at":"2025-03-10T09:20:00+05:00"}`
			rec := s.do(http.MethodPost, "/schedules/individual", &s.client, body)

			s.Equal(tc.status, rec.Code)
			if tc.message != "" {
				s.Contains(rec.Body.String(), tc.message)
				s.NotContains(rec.Body.String(), "two templates")
			}
		})
	}
}

func (s *ServerTestSuite) TestBookLegal_WeigherIsForbidden() {
	body := `{"order_id":"` + kernel.NewUUID().String() + `","workshop_id":"` + kernel.NewUUID().String() +
		`","vehicle_id":"` + kernel.NewUUID().String() + `","start_at":"2025-03-10T09:20:00+05:00"}`

	rec := s.do(http.MethodPost, "/schedules/legal", &s.weigher, body)

	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal(http.StatusForbidden, s.errorCode(rec))
}

func (s *ServerTestSuite) TestGetSchedule_ClientSeesOnlyOwnVisits() {
	otherOwner, err := kernel.NewUserOwner(kernel.NewUUID())
	s.Require().NoError(err)
	scheduleID := kernel.NewUUID()
	s.schedule.On("Handle", mock.Anything, mock.Anything).Return(&queries.GetScheduleQueryResponse{
		ID:               scheduleID,
		Owner:            otherOwner,
		CurrentOperation: "entry",
		IsActive:         true,
	}, nil)

	rec := s.do(http.MethodGet, "/schedules/"+scheduleID.String(), &s.client, "")
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/schedules/"+scheduleID.String(), &s.weigher, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestGetScheduleHistory_ChecksOwnershipForClients() {
	owner, err := kernel.NewUserOwner(s.client.id)
	s.Require().NoError(err)
	scheduleID := kernel.NewUUID()
	tare := kernel.Kilograms(14200).Decimal()
	passed := true
	s.schedule.On("Handle", mock.Anything, mock.Anything).
		Return(&queries.GetScheduleQueryResponse{ID: scheduleID, Owner: owner}, nil).Once()
	s.history.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetScheduleHistoryQuery) bool {
		return q.ScheduleID().IsEqual(scheduleID)
	})).Return([]queries.GetScheduleHistoryQueryResponse{
		{ID: kernel.NewUUID(), Operation: "initial_weighing", IsPassed: &passed, TareKg: &tare},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/schedules/"+scheduleID.String()+"/history", &s.client, "")

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"tare_kg":14200`)
	s.schedule.AssertExpectations(s.T())
	s.history.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestGetSchedule_MalformedID_BadRequest() {
	rec := s.do(http.MethodGet, "/schedules/not-a-uuid", &s.weigher, "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestTakeCheckpoint_ReturnsPendingRow() {
	scheduleID := kernel.NewUUID()
	row, err := schedule.NewHistory(kernel.NewUUID(), scheduleID, operation.InitialWeighing,
		s.weigher.domain(s.T()).Snapshot(), time.Date(2025, 3, 10, 9, 25, 0, 0, almaty))
	s.Require().NoError(err)
	s.take.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TakeCheckpointCommand) bool {
		return cmd.Operation() == operation.InitialWeighing && cmd.ScheduleID().IsEqual(scheduleID)
	})).Return(row, nil).Once()

	rec := s.do(http.MethodPost, "/checkpoints/initial_weighing/take/"+scheduleID.String(), &s.weigher, "")

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"is_passed":null`)
	s.take.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestTakeCheckpoint_UnknownOperation_BadRequest() {
	rec := s.do(http.MethodPost, "/checkpoints/teleport/take/"+kernel.NewUUID().String(), &s.weigher, "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.take.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestTakeCheckpoint_ClientIsForbidden() {
	rec := s.do(http.MethodPost, "/checkpoints/entry/take/"+kernel.NewUUID().String(), &s.client, "")

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestDecideCheckpoint_PassCarriesWeight() {
	owner, err := kernel.NewUserOwner(s.client.id)
	s.Require().NoError(err)
	historyID := kernel.NewUUID()
	s.decide.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DecideCheckpointCommand) bool {
		d := cmd.Decision()
		return d.Passed && d.Weight != nil && d.Weight.IsEqual(kernel.Kilograms(14200)) &&
			cmd.HistoryID().IsEqual(historyID)
	})).Return(s.bookedSchedule(owner), nil).Once()

	rec := s.do(http.MethodPost, "/checkpoints/initial_weighing/decide/"+historyID.String(), &s.weigher,
		`{"passed":true,"weight_kg":14200}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decide.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestDecideCheckpoint_DenyRoutesToReload() {
	owner, err := kernel.NewUserOwner(s.client.id)
	s.Require().NoError(err)
	s.decide.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DecideCheckpointCommand) bool {
		d := cmd.Decision()
		return !d.Passed && d.Reason == "overloaded" &&
			d.NextOperation != nil && *d.NextOperation == operation.Reloading
	})).Return(s.bookedSchedule(owner), nil).Once()

	rec := s.do(http.MethodPost, "/checkpoints/final_weighing/decide/"+kernel.NewUUID().String(), &s.weigher,
		`{"passed":false,"reason":"overloaded","next_operation":"reloading"}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decide.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestDecideCheckpoint_NegativeWeight_BadRequest() {
	rec := s.do(http.MethodPost, "/checkpoints/initial_weighing/decide/"+kernel.NewUUID().String(), &s.weigher,
		`{"passed":true,"weight_kg":-5}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.decide.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestCreateOrder_AdminOnly() {
	orgID := kernel.NewUUID()
	workshopID := kernel.NewUUID()
	body := `{"owner_organization_id":"` + orgID.String() + `","workshop_id":"` + workshopID.String() +
		`","quan_kg":60000,"zakaz":"4500012345"}`

	rec := s.do(http.MethodPost, "/orders", &s.client, body)
	s.Equal(http.StatusForbidden, rec.Code)

	s.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Owner().IsOrganization() && cmd.Quan().IsEqual(kernel.Kilograms(60000)) &&
			cmd.Zakaz() == "4500012345"
	})).Return(func() *order.Order {
		owner, err := kernel.NewOrganizationOwner(orgID)
		s.Require().NoError(err)
		o, err := order.NewOrder(kernel.NewUUID(), owner, workshopID, kernel.Kilograms(60000), "4500012345", time.Now())
		s.Require().NoError(err)
		return o
	}(), nil).Once()

	rec = s.do(http.MethodPost, "/orders", &s.admin, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"status":"Created"`)
	s.create.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestCreateOrder_BothOwners_BadRequest() {
	body := `{"owner_user_id":"` + kernel.NewUUID().String() + `","owner_organization_id":"` + kernel.NewUUID().String() +
		`","workshop_id":"` + kernel.NewUUID().String() + `","quan_kg":1000}`

	rec := s.do(http.MethodPost, "/orders", &s.admin, body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.create.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestGetOrderLedger_ClientOfOrganization() {
	orgID := kernel.NewUUID()
	member := testActor{id: kernel.NewUUID(), role: actor.RoleClient, kind: actor.Legal, orgs: []kernel.UUID{orgID}}
	owner, err := kernel.NewOrganizationOwner(orgID)
	s.Require().NoError(err)
	orderID := kernel.NewUUID()
	s.ledger.On("Handle", mock.Anything, mock.Anything).Return(&queries.GetOrderLedgerQueryResponse{
		OrderID: orderID,
		Owner:   owner,
		Status:  "paid",
		IsPaid:  true,
		QuanKg:  kernel.Kilograms(60000).Decimal(),
	}, nil)

	rec := s.do(http.MethodGet, "/orders/"+orderID.String()+"/ledger", &member, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"quan_kg":60000`)

	rec = s.do(http.MethodGet, "/orders/"+orderID.String()+"/ledger", &s.client, "")
	s.Equal(http.StatusForbidden, rec.Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
