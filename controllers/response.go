package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/store"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondStoreError maps a store error kind onto the HTTP envelope.
func respondStoreError(c *gin.Context, err error) {
	var dup *store.DuplicateFieldError
	switch {
	case errors.As(err, &dup):
		respondError(c, http.StatusConflict, "DUPLICATE_FIELD",
			"A record with this "+dup.Field+" already exists")
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, store.ErrCorruptData):
		respondError(c, http.StatusInternalServerError, "CORRUPT_DATA",
			"Stored table data could not be read")
	default:
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR",
			"Storage operation failed")
	}
}
