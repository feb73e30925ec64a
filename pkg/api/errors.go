package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrEmptyText indicates a ticket was submitted with no question text.
var ErrEmptyText = errors.New("text field is required")

// ErrTextTooLarge indicates a ticket's text exceeded MaxTicketTextBytes.
var ErrTextTooLarge = errors.New("text field exceeds maximum size")

// MaxTicketTextBytes caps the size of a submitted question, well above any
// real request and far below anything that would make translation or
// drafting unreasonably slow.
const MaxTicketTextBytes = 8192

// writeError writes a JSON error body. orchestrator.Handle never returns an
// error itself (a panic is recovered into an Abandoned result), so every
// error this layer maps comes from request validation, not the pipeline.
func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, err)
}
