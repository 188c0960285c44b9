// This file defines the chat endpoint that drives the conversational
// booking flow.  Any transport that can deliver (chat id, text) pairs can
// sit in front of it; the website's chat widget posts here directly.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/morozlab/holiday-visit-booking/internal/session"
)

// ChatHandler feeds customer messages into the intake state machine and
// persists the session between turns.
type ChatHandler struct {
	Sessions session.Store
	Machine  *session.Machine
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Chat advances the sender's booking conversation by one message and
// returns the machine's reply.  A chat with no stored session starts a
// fresh one.  When the machine reports the conversation done, the session
// is dropped so the next message starts over.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil || req.ChatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "chat_id is required"})
	}
	ctx := c.Request().Context()

	s, err := h.Sessions.Get(ctx, req.ChatID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load session"})
	}
	if s == nil {
		s = &session.Session{ChatID: req.ChatID}
	}

	reply, err := h.Machine.Advance(ctx, s, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not process message"})
	}

	if reply.Done {
		if err := h.Sessions.Delete(ctx, req.ChatID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not reset session"})
		}
	} else if err := h.Sessions.Put(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save session"})
	}
	return c.JSON(http.StatusOK, reply)
}
