package infrastructure

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/mateusmacedo/go-layers/internal/busticket/application"
	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	zapAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/zaplogger/adapter"
)

const reservationBody = `{
	"passenger_name": "Ana",
	"departure_time": "2026-11-02T08:30:00Z",
	"seat_number": 12,
	"origin": "Recife",
	"destination": "Natal"
}`

type BusTicketHTTPHandlerSuite struct {
	suite.Suite

	router     chi.Router
	repository *InMemoryBusTicketRepository
}

func TestBusTicketHTTPHandlerSuite(t *testing.T) {
	suite.Run(t, new(BusTicketHTTPHandlerSuite))
}

func (s *BusTicketHTTPHandlerSuite) SetupTest() {
	logger := zapAdapter.NewZapAppLoggerFrom(zap.NewNop())
	s.repository = NewInMemoryBusTicketRepository(logger)

	handler := NewBusTicketHTTPHandler(application.ReserveBusTicketDeps{
		Repository: s.repository,
		Logger:     logger,
	}, logger)

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	handler.RegisterRoutes(s.router)
}

func (s *BusTicketHTTPHandlerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BusTicketHTTPHandlerSuite) TestReserveReturnsCreated() {
	rec := s.do(http.MethodPost, "/bustickets", reservationBody)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Message string           `json:"message"`
		Data    domain.BusTicket `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Bus ticket reserved", body.Message)
	s.Equal("Ana", body.Data.PassengerName)
	s.Equal(12, body.Data.SeatNumber)
	s.Equal("standard", body.Data.SeatClass)
	s.NotEmpty(body.Data.ID)
}

func (s *BusTicketHTTPHandlerSuite) TestReserveTakenSeatReturnsConflict() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/bustickets", reservationBody).Code)

	rec := s.do(http.MethodPost, "/bustickets", reservationBody)
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), domain.ErrSeatAlreadyTaken.Error())
}

func (s *BusTicketHTTPHandlerSuite) TestReserveInvalidSeatReturnsUnprocessable() {
	body := strings.Replace(reservationBody, `"seat_number": 12`, `"seat_number": 0`, 1)

	rec := s.do(http.MethodPost, "/bustickets", body)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "seat_number must be between 1 and 60")
}

func (s *BusTicketHTTPHandlerSuite) TestReserveMissingInputReturnsBadRequest() {
	body := strings.Replace(reservationBody, `"origin": "Recife",`, "", 1)

	rec := s.do(http.MethodPost, "/bustickets", body)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Missing required inputs: origin")
}

func (s *BusTicketHTTPHandlerSuite) TestReserveUndeclaredInputReturnsBadRequest() {
	body := strings.Replace(reservationBody, `"origin": "Recife",`, `"origin": "Recife", "coupon": "FREE",`, 1)

	rec := s.do(http.MethodPost, "/bustickets", body)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Undeclared inputs: coupon")
}

func (s *BusTicketHTTPHandlerSuite) TestReserveMalformedBodyReturnsBadRequest() {
	rec := s.do(http.MethodPost, "/bustickets", "{")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Invalid request")
}

func (s *BusTicketHTTPHandlerSuite) TestFindReturnsPassengerTickets() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/bustickets", reservationBody).Code)

	rec := s.do(http.MethodGet, "/bustickets/Ana", "")
	s.Equal(http.StatusOK, rec.Code)

	var tickets []domain.BusTicket
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tickets))
	s.Require().Len(tickets, 1)
	s.Equal("Recife", tickets[0].Origin)
}

func (s *BusTicketHTTPHandlerSuite) TestFindUnknownPassengerReturnsEmptyList() {
	rec := s.do(http.MethodGet, "/bustickets/Nobody", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}
