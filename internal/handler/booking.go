// Package handler exposes HTTP handlers for the booking API and the
// operator-facing support endpoints.  This file defines the website order
// flow: parking a filled-in order as pending and confirming it after
// payment.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/morozlab/holiday-visit-booking/internal/booking"
	"github.com/morozlab/holiday-visit-booking/internal/model"
	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// BookingHandler serves the two-step website order flow.  The website form
// collects the same fields as the chat flow and posts them in one request;
// confirmation arrives separately once the customer has paid.
type BookingHandler struct {
	Booking *booking.Service
}

// CreateTempOrder accepts a filled-in order from the website form and
// parks it as pending, returning the generated order id.  Fields the form
// leaves empty (timestamp, invitee, duration) are defaulted by the
// service.
func (h *BookingHandler) CreateTempOrder(c echo.Context) error {
	var o model.Order
	if err := c.Bind(&o); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order payload"})
	}
	orderID, err := h.Booking.CreatePending(o)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "order_id": orderID})
}

// confirmRequest is the body of POST /api/confirm_order.
type confirmRequest struct {
	OrderID string `json:"order_id"`
}

// ConfirmOrder promotes a pending order into the durable order store.  An
// unknown or already-confirmed id yields 404; the promotion itself is
// verbatim, whatever the form submitted is what gets recorded.
func (h *BookingHandler) ConfirmOrder(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil || req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_id is required"})
	}
	o, err := h.Booking.Confirm(c.Request().Context(), req.OrderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not confirm order"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Order " + o.OrderID + " confirmed",
	})
}
