package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/morozlab/holiday-visit-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/morozlab/holiday-visit-booking/internal/middleware" // import middleware for operator token enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
// The health check deliberately sits outside every rate-limit and cache
// group so load-balancer probes never share a bucket with real traffic.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterSite registers the landing page and the public booking API.
// These routes carry no authentication: visitors browse prices and slots,
// fill in an order and confirm it after paying, all as guests.  The rate
// limiter covers the whole /api group; the response cache is applied only
// to the two read-only quote endpoints — everything else is either a
// mutation or carries per-caller state and must always run live.
func RegisterSite(e *echo.Echo, f *handler.FilesHandler, r *handler.RatesHandler, b *handler.BookingHandler, ch *handler.ChatHandler, limiter, cache echo.MiddlewareFunc) {
	e.GET("/", f.Index)

	g := e.Group("/api", limiter)
	// Price quote and the annotated slot list for the booking widget.
	g.GET("/price", r.GetPrice, cache)
	g.GET("/time_slots", r.GetTimeSlots, cache)
	// The two-step website order flow: park a pending order, then confirm
	// it once the customer has paid.
	g.POST("/temp_order", b.CreateTempOrder)
	g.POST("/confirm_order", b.ConfirmOrder)
	// The conversational flow; one POST per customer message.
	g.POST("/chat", ch.Chat)
}

// RegisterSupport registers the support relay.  Customer routes are open;
// the operator inbox, reply and workbook download require a valid operator
// token, minted from the token endpoint with the shared secret.  On the
// protected groups OperatorAuth runs before the limiter so operator-keyed
// rate strategies see the authenticated identity.
func RegisterSupport(e *echo.Echo, s *handler.SupportHandler, f *handler.FilesHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/support", limiter)
	g.POST("/message", s.CustomerMessage)
	g.GET("/messages", s.CustomerMessages)
	g.POST("/token", s.Token)

	op := e.Group("/api/support")
	op.Use(middleware.OperatorAuth(jwtSecret))
	op.Use(limiter)
	op.GET("/inbox", s.Inbox)
	op.POST("/reply", s.Reply)

	dl := e.Group("/download")
	dl.Use(middleware.OperatorAuth(jwtSecret))
	dl.Use(limiter)
	dl.GET("", f.DownloadOrders)
}
