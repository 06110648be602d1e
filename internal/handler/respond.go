package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-backend/internal/service"
)

// Envelope is the response contract shared by every endpoint. The field
// names are part of the public API and must not change.
type Envelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

func respondOK(c *gin.Context, code int, data any, message string) {
	c.JSON(code, Envelope{Status: 1, Data: data, Message: message, Error: nil})
}

func respondError(c *gin.Context, code int, message string, err error) {
	var detail any
	if err != nil {
		detail = err.Error()
	}
	c.JSON(code, Envelope{Status: 0, Data: nil, Message: message, Error: detail})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a server error.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidOtp):
		respondError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrBillNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrDuplicate):
		respondError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, service.ErrForbiddenRole):
		respondError(c, http.StatusForbidden, err.Error(), err)
	default:
		respondError(c, http.StatusInternalServerError, "Server error", err)
	}
}
