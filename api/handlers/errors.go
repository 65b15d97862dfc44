package handlers

import (
	"errors"
	"net/http"
	"tierboard/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// respondError writes the error body with the status of its kind.
// Persistence failures are logged by the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	c.Error(err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

// respondBindError answers malformed requests.
func respondBindError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
