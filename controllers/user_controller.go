package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/middleware"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

// UpdateProfileRequest is the payload for profile updates. The current
// password must be supplied; a new password is optional and triggers a
// re-hash, otherwise the stored hash is untouched.
type UpdateProfileRequest struct {
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone" binding:"omitempty,numeric,len=10"`
	Address         string `json:"address" binding:"omitempty"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=6"`
}

// GetMyProfile handles GET /api/v1/users/me - current user's profile.
func GetMyProfile(c *gin.Context) {
	user, err := store.Users().FindByID(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateMyProfile handles PUT /api/v1/users/me - updates contact fields and
// optionally the password after verifying the current one.
func UpdateMyProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	userID := middleware.CallerID(c)
	user, err := store.Users().FindByID(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "WRONG_PASSWORD", "Current password is incorrect")
		return
	}

	var newHash string
	if req.NewPassword != "" {
		newHash, err = utils.HashPassword(req.NewPassword)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to process password")
			return
		}
	}

	found, err := store.Users().Update(userID, func(u *models.User) {
		if req.Email != "" {
			u.Email = req.Email
		}
		if req.Phone != "" {
			u.Phone = req.Phone
		}
		if req.Address != "" {
			u.Address = req.Address
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found")
		return
	}

	updated, err := store.Users().FindByID(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}
