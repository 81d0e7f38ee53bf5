package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/api/middleware"
	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/booking"
)

// BookingHandler manages hotel booking requests. Create is public, the rest
// are admin operations.
type BookingHandler struct {
	logger         *slog.Logger
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(logger *slog.Logger, bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		logger:         logger,
		bookingService: bookingService,
	}
}

// Create handles POST /api/v1/bookings requests from the public site
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		RespondBadRequest(c, "Invalid room ID format")
		return
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingInput{
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Room: booking.RoomSnapshot{
			RoomID:    roomID,
			Name:      req.RoomName,
			NightRate: req.NightRate,
		},
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Notes:         req.Notes,
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrEmptyGuestName),
			errors.Is(err, booking.ErrMissingContact),
			errors.Is(err, booking.ErrInvalidStayDates):
			RespondBadRequest(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapBookingToResponse(b))
}

// GetByID handles GET /api/v1/bookings/:id requests
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		var notFound booking.ErrBookingNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Booking not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// List handles GET /api/v1/bookings requests
func (h *BookingHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)
	filter := booking.ListFilter{
		Status:    booking.Status(c.Query("status")),
		GuestName: c.Query("guest_name"),
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter, page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, mapBookingToResponse(b))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Confirm handles POST /api/v1/bookings/:id/confirm requests
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingService.ConfirmBooking(c.Request.Context(), id, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// RecordPayment handles POST /api/v1/bookings/:id/payments requests
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	b, err := h.bookingService.RecordPayment(c.Request.Context(), id, req.Amount, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// Cancel handles POST /api/v1/bookings/:id/cancel requests
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingService.CancelBooking(c.Request.Context(), id, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// ReviewInvitation handles POST /api/v1/bookings/:id/review-invitation
// requests. The reminder query flag selects the follow-up template.
func (h *BookingHandler) ReviewInvitation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reminder := c.Query("reminder") == "true"

	b, err := h.bookingService.SendReviewInvitation(c.Request.Context(), id, reminder, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var notFound booking.ErrBookingNotFound
	switch {
	case errors.As(err, &notFound):
		RespondNotFound(c, "Booking not found")
	case errors.Is(err, booking.ErrInvalidTransition):
		RespondConflict(c, err.Error())
	default:
		RespondInternalError(c)
	}
}
