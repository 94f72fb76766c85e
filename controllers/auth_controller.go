package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

// RegisterRequest is the customer sign-up payload.
type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Aadhar          string `json:"aadhar" binding:"required,numeric,len=12"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,numeric,len=10"`
	Address         string `json:"address" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest carries a login identifier (email, aadhar or phone for
// customers; email or technician id for technicians) plus the password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register - creates a customer account.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Aadhar must be 12 digits, phone must be 10 digits and all fields are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to process password")
		return
	}

	user := &models.User{
		FullName:         req.FullName,
		Aadhar:           req.Aadhar,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		PasswordHash:     hash,
		Role:             models.RoleCustomer,
		RegistrationDate: time.Now().Format(models.TimeLayout),
	}
	if _, err := store.Users().Create(user); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// Login handles POST /api/v1/auth/login - customer/admin login by email,
// aadhar or phone.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all fields")
		return
	}

	user, err := store.Users().FindByLogin(req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
				"Invalid credentials. Please try again.")
			return
		}
		respondStoreError(c, err)
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
			"Invalid credentials. Please try again.")
		return
	}

	token, err := utils.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to create session token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// TechnicianLogin handles POST /api/v1/auth/technician/login - technician
// login by email or technician id.
func TechnicianLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all fields")
		return
	}

	technician, err := store.Technicians().FindByLogin(req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
				"Invalid credentials. Please try again.")
			return
		}
		respondStoreError(c, err)
		return
	}
	if !utils.CheckPasswordHash(req.Password, technician.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
			"Invalid credentials. Please try again.")
		return
	}

	token, err := utils.GenerateJWT(technician.TechnicianID, models.RoleTechnician)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to create session token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":      token,
			"technician": technician,
		},
	})
}
