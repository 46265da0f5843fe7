package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/services"
)

// respondServiceError maps service-layer errors onto the wire contract.
// Validation failures carry per-field details; everything else is a single
// error string at the status the service chose.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": vErr.Fields,
		})
		return
	}
	var aErr *apierr.Error
	if errors.As(err, &aErr) {
		c.JSON(aErr.Status, gin.H{"error": aErr.Err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
