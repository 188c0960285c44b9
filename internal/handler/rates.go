// This file defines the public pricing and availability endpoints.  They
// back the website's booking widget: the widget asks for a price while the
// visitor toggles options, and for the annotated slot list once a date is
// picked.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/morozlab/holiday-visit-booking/internal/availability"
	"github.com/morozlab/holiday-visit-booking/internal/model"
	"github.com/morozlab/holiday-visit-booking/internal/pricing"
)

// RatesHandler aggregates the engines needed for the public widget
// endpoints.
type RatesHandler struct {
	Avail *availability.Engine
	Rates *pricing.Engine
	Now   func() time.Time // injectable clock for the early-bird discount
}

// NewRatesHandler wires the handler to the engines with a real clock.
func NewRatesHandler(avail *availability.Engine, rates *pricing.Engine) *RatesHandler {
	return &RatesHandler{Avail: avail, Rates: rates, Now: time.Now}
}

// GetPrice quotes the total for a (date, time, program) triple.  The
// program defaults to the express tier when omitted.  Unreadable input is
// not an error at this layer: the rate engine quotes zero and the widget
// shows a dash.
func (h *RatesHandler) GetPrice(c echo.Context) error {
	date := c.QueryParam("date")
	timeStr := c.QueryParam("time")
	tier, ok := model.ParseTier(c.QueryParam("program_type"))
	if !ok {
		tier = model.TierExpress
	}
	price := h.Rates.Price(date, timeStr, tier, h.Now())
	return c.JSON(http.StatusOK, echo.Map{"price": price})
}

// GetTimeSlots lists the bookable hour buckets for a date and city, each
// annotated with the tier price and the remaining capacity.  Both date and
// city are required; an unparsable date is rejected here so the widget
// never renders a keyboard for a date the engine cannot reason about.
func (h *RatesHandler) GetTimeSlots(c echo.Context) error {
	date := c.QueryParam("date")
	city := c.QueryParam("city")
	if date == "" || city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and city are required"})
	}
	if _, err := model.ParseVisitDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable date"})
	}
	tier, ok := model.ParseTier(c.QueryParam("program_type"))
	if !ok {
		tier = model.TierExpress
	}
	slots, err := h.Avail.ListSlots(date, city, tier, h.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}
