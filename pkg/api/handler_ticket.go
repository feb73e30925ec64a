package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var logger = slog.With("component", "api")

// submitTicketHandler handles POST /api/v1/tickets. Unlike tarsy's
// fire-and-forget alert submission, Anna's whole pipeline runs inline and
// returns the finished (or clarification-bound) ServiceDeskResult in the
// same request — there is no background queue to poll.
func (s *Server) submitTicketHandler(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		badRequest(c, ErrEmptyText)
		return
	}
	if len(text) > MaxTicketTextBytes {
		writeError(c, http.StatusRequestEntityTooLarge, ErrTextTooLarge)
		return
	}

	logger.Debug("ticket submitted", "stage", "api", "text_bytes", len(text))
	result := s.orchestrator.Handle(c.Request.Context(), text)
	logger.Info("ticket request complete", "stage", "api", "ticket_id", result.TicketID)
	c.JSON(http.StatusOK, result)
}
