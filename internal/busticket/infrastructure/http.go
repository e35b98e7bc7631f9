package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateusmacedo/go-layers/internal/busticket/application"
	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	"github.com/mateusmacedo/go-layers/pkg/layer"
)

const requestTimeout = 10 * time.Second

type BusTicketHTTPHandler struct {
	deps   application.ReserveBusTicketDeps
	logger pkgApp.AppLogger
}

func NewBusTicketHTTPHandler(deps application.ReserveBusTicketDeps, logger pkgApp.AppLogger) *BusTicketHTTPHandler {
	return &BusTicketHTTPHandler{
		deps:   deps,
		logger: logger,
	}
}

func (h *BusTicketHTTPHandler) HandleReserveBusTicket(w http.ResponseWriter, r *http.Request) {
	inputs, err := decodeInputs(r)
	if err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	responder := newResponder(w)
	_, err = layer.Run(ctx, func(opts ...layer.Option) (*application.ReserveBusTicket, error) {
		return application.NewReserveBusTicket(h.deps, opts...)
	}, layer.WithListener(responder.callbacks()), layer.WithInputs(inputs))

	h.finish(ctx, w, responder, err)
}

func (h *BusTicketHTTPHandler) HandleFindBusTickets(w http.ResponseWriter, r *http.Request) {
	passengerName := chi.URLParam(r, "passengerName")

	ctx, cancel := requestContext(r)
	defer cancel()

	responder := newResponder(w)
	_, err := layer.Run(ctx, func(opts ...layer.Option) (*application.FindBusTickets, error) {
		return application.NewFindBusTickets(h.deps.Repository, h.logger, opts...)
	}, layer.WithListener(responder.callbacks()), layer.WithInput("passenger_name", passengerName))

	h.finish(ctx, w, responder, err)
}

func (h *BusTicketHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/bustickets", h.HandleReserveBusTicket)
	router.Get("/bustickets/{passengerName}", h.HandleFindBusTickets)
}

// finish trata erros que não chegaram ao listener, como inputs inválidos na construção.
func (h *BusTicketHTTPHandler) finish(ctx context.Context, w http.ResponseWriter, responder *responder, err error) {
	if err == nil || responder.written {
		if err != nil {
			pkgApp.LogError(ctx, h.logger, "listener failed after response", err, nil)
		}
		return
	}

	switch {
	case errors.Is(err, layer.ErrMissingRequiredInputs), errors.Is(err, layer.ErrUnexpectedInputs):
		handleError(w, err.Error(), http.StatusBadRequest)
	default:
		pkgApp.LogError(ctx, h.logger, "layer failed", err, nil)
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

// responder traduz os callbacks de uma layer em respostas HTTP.
type responder struct {
	w       http.ResponseWriter
	written bool
}

func newResponder(w http.ResponseWriter) *responder {
	return &responder{w: w}
}

func (rs *responder) callbacks() layer.Callbacks {
	return layer.Callbacks{
		application.TicketReservedCallback: func(_ context.Context, args ...any) (any, error) {
			return nil, rs.writeJSON(http.StatusCreated, map[string]interface{}{
				"message": "Bus ticket reserved",
				"data":    firstArg(args),
			})
		},
		application.ReservationFailedCallback: func(_ context.Context, args ...any) (any, error) {
			err := errorArg(args)
			return nil, rs.writeError(err, reservationStatus(err))
		},
		layer.OnSuccessDefaultCallback: func(_ context.Context, args ...any) (any, error) {
			return nil, rs.writeJSON(http.StatusOK, firstArg(args))
		},
		layer.OnFailureDefaultCallback: func(_ context.Context, args ...any) (any, error) {
			return nil, rs.writeError(errorArg(args), http.StatusInternalServerError)
		},
	}
}

func (rs *responder) writeJSON(status int, body any) error {
	rs.written = true
	rs.w.Header().Set("Content-Type", "application/json")
	rs.w.WriteHeader(status)
	return json.NewEncoder(rs.w).Encode(body)
}

func (rs *responder) writeError(err error, status int) error {
	rs.written = true
	handleError(rs.w, err.Error(), status)
	return nil
}

func reservationStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidReservation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBusTicketAlreadyExists), errors.Is(err, domain.ErrSeatAlreadyTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func errorArg(args []any) error {
	if err, ok := firstArg(args).(error); ok {
		return err
	}
	return errors.New("unknown failure")
}

func decodeInputs(r *http.Request) (map[string]any, error) {
	inputs := map[string]any{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := r.Context()
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		ctx = pkgApp.WithRequestID(ctx, requestID)
	}
	return context.WithTimeout(ctx, requestTimeout)
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
