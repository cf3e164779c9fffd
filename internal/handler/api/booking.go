package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "resort-booking/internal/handler/dto/request"
	resdto "resort-booking/internal/handler/dto/response"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands   commands.BookingCommands
	lifecycleCommands commands.LifecycleCommands
	bookingQueries    queries.BookingQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	lifecycleCommands commands.LifecycleCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands:   bookingCommands,
		lifecycleCommands: lifecycleCommands,
		bookingQueries:    bookingQueries,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToParams())
	if err != nil {
		h.respondQuoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	email := c.Query("guest_email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "guest_email query parameter is required",
		})
		return
	}

	views, err := h.bookingQueries.ListByGuestEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	responses := make([]*resdto.BookingResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, resdto.FromBookingView(v))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *BookingHandler) SaveDraft(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	draft, err := h.bookingCommands.SaveDraft(c.Request.Context(), req.ToParams())
	if err != nil {
		h.respondQuoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromDraft(draft))
}

func (h *BookingHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid draft ID",
		})
		return
	}

	draft, err := h.bookingCommands.GetDraft(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Draft not found or expired",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(draft))
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.CheckIn)
}

func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.CheckOut)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.Cancel)
}

func (h *BookingHandler) Refund(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.Refund)
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrInvalidStateTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition not allowed from current state",
			})
		case errors.Is(err, errs.ErrRepositoryConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking state changed concurrently",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) respondQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidStayPeriod):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid stay period",
		})
	case errors.Is(err, errs.ErrInvalidLineItem):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid line item selection",
		})
	case errors.Is(err, errs.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Coupon not found",
		})
	case errors.Is(err, errs.ErrInvalidCoupon):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or expired coupon",
		})
	case errors.Is(err, errs.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Draft not found or expired",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
