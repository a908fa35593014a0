package handler

import (
	"encoding/json"
	"net/http"

	"booker/internal/bookings/service"
	apperrors "booker/pkg/errors"
	httputil "booker/pkg/http"
	"booker/pkg/logger"
	"booker/pkg/middleware"
	"booker/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	BookingsPath = "/api/bookings"

	MsgBookingCreated    = "Booking created successfully"
	MsgCreateFailed      = "Error creating booking"
	MsgBookingsRetrieved = "Bookings retrieved successfully"
	MsgRetrieveFailed    = "Error retrieving bookings"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error(MsgCreateFailed, "error", err)
		if writeErr := httputil.WriteError(w, MsgCreateFailed, apperrors.InvalidInput("Invalid request body", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, MsgCreateFailed, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, MsgBookingCreated, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, MsgRetrieveFailed, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, MsgBookingsRetrieved, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(BookingsPath, middleware.RequireJSON(h.log, MsgCreateFailed)(h.Create))
	router.GET(BookingsPath, h.GetAll)
}
