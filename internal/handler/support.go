// This file defines the support-chat endpoints: the customer side (send a
// message, poll for replies) and the operator side (mint a token, drain
// the inbox, reply).  Operator routes are protected by the OperatorAuth
// middleware; customer routes are open, a customer proves nothing beyond
// knowing their own chat id and order id.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/morozlab/holiday-visit-booking/internal/repository"
	"github.com/morozlab/holiday-visit-booking/internal/support"
	"github.com/morozlab/holiday-visit-booking/internal/utils"
)

// SupportHandler exposes the message relay between customers and the
// operator pool.
type SupportHandler struct {
	Router      *support.Router
	Repo        *repository.SupportRepo
	Secret      string // signing secret for operator tokens
	TokenTTLMin int
}

// supportMessageRequest is the body of POST /api/support/message.
type supportMessageRequest struct {
	ChatID  string `json:"chat_id"`
	OrderID string `json:"order_id,omitempty"`
	Text    string `json:"text"`
}

// CustomerMessage relays a customer message to an operator.  The first
// message must carry the order id to link the chat; later messages may
// omit it.
func (h *SupportHandler) CustomerMessage(c echo.Context) error {
	var req supportMessageRequest
	if err := c.Bind(&req); err != nil || req.ChatID == "" || req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "chat_id and text are required"})
	}
	operator, err := h.Router.FromCustomer(req.ChatID, req.OrderID, req.Text)
	if err != nil {
		switch err {
		case repository.ErrChatNotLinked:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no order linked to this chat; include order_id"})
		case repository.ErrNoOperators:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "no operators available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not route message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "operator": operator})
}

// CustomerMessages drains the operator replies queued for a chat.
func (h *SupportHandler) CustomerMessages(c echo.Context) error {
	chatID := c.QueryParam("chat_id")
	if chatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "chat_id is required"})
	}
	msgs := h.Router.CustomerMessages(chatID)
	if msgs == nil {
		msgs = []support.Message{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": msgs})
}

// tokenRequest is the body of POST /api/support/token.
type tokenRequest struct {
	OperatorID string `json:"operator_id"`
	Secret     string `json:"secret"`
}

// Token mints an operator bearer token.  The caller must present the
// shared operator secret and be listed in the operator pool.
func (h *SupportHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil || req.OperatorID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "operator_id is required"})
	}
	if req.Secret != h.Secret {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid secret"})
	}
	ok, err := h.Repo.IsOperator(req.OperatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not check operator pool"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unknown operator"})
	}
	tok, err := utils.NewOperatorToken(h.Secret, req.OperatorID, h.TokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token, "expires_at": tok.Exp})
}

// Inbox drains the authenticated operator's queued customer messages.
func (h *SupportHandler) Inbox(c echo.Context) error {
	operatorID, _ := c.Get("operator_id").(string)
	msgs := h.Router.OperatorInbox(operatorID)
	if msgs == nil {
		msgs = []support.Message{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": msgs})
}

// replyRequest is the body of POST /api/support/reply.
type replyRequest struct {
	Text string `json:"text"`
}

// Reply routes the authenticated operator's answer back to the chat they
// most recently received a message from.
func (h *SupportHandler) Reply(c echo.Context) error {
	operatorID, _ := c.Get("operator_id").(string)
	var req replyRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}
	chatID, err := h.Router.FromOperator(operatorID, req.Text)
	if err != nil {
		if err == repository.ErrChatNotLinked {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no customer to reply to yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not route reply"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "chat_id": chatID})
}
