package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/middleware"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

// CreateTechnicianRequest is the admin payload for onboarding a technician.
type CreateTechnicianRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Aadhar   string `json:"aadhar" binding:"required,numeric,len=12"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,numeric,len=10"`
	Address  string `json:"address" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateTechnicianRequest is the admin payload for editing a technician.
type UpdateTechnicianRequest struct {
	FullName string `json:"fullName" binding:"omitempty"`
	Aadhar   string `json:"aadhar" binding:"omitempty,numeric,len=12"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,numeric,len=10"`
	Address  string `json:"address" binding:"omitempty"`
}

// CreateTechnician handles POST /api/v1/technicians - admin only.
func CreateTechnician(c *gin.Context) {
	var req CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Aadhar must be 12 digits, phone must be 10 digits and all fields are required")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to process password")
		return
	}

	technician := &models.Technician{
		FullName:     req.FullName,
		Aadhar:       req.Aadhar,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hash,
		Role:         models.RoleTechnician,
	}
	if _, err := store.Technicians().Create(technician); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    technician,
	})
}

// ListTechnicians handles GET /api/v1/technicians - admin only.
func ListTechnicians(c *gin.Context) {
	technicians, err := store.Technicians().List()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technicians,
		"count":   len(technicians),
	})
}

// UpdateTechnician handles PUT /api/v1/technicians/:id - admin only.
func UpdateTechnician(c *gin.Context) {
	var req UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	id := c.Param("id")
	found, err := store.Technicians().Update(id, func(t *models.Technician) {
		if req.FullName != "" {
			t.FullName = req.FullName
		}
		if req.Aadhar != "" {
			t.Aadhar = req.Aadhar
		}
		if req.Email != "" {
			t.Email = req.Email
		}
		if req.Phone != "" {
			t.Phone = req.Phone
		}
		if req.Address != "" {
			t.Address = req.Address
		}
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "TECHNICIAN_NOT_FOUND", "Technician not found")
		return
	}

	technician, err := store.Technicians().FindByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technician,
	})
}

// DeleteTechnician handles DELETE /api/v1/technicians/:id - admin only.
func DeleteTechnician(c *gin.Context) {
	found, err := store.Technicians().Delete(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "TECHNICIAN_NOT_FOUND", "Technician not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Technician deleted successfully",
	})
}

// GetTechnicianProfile handles GET /api/v1/technicians/me.
func GetTechnicianProfile(c *gin.Context) {
	technician, err := store.Technicians().FindByID(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    technician,
	})
}

// UpdateTechnicianProfile handles PUT /api/v1/technicians/me - a technician
// updating their own contact details, with the same password rules as the
// customer profile.
func UpdateTechnicianProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	id := middleware.CallerID(c)
	technician, err := store.Technicians().FindByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, technician.PasswordHash) {
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

	found, err := store.Technicians().Update(id, func(t *models.Technician) {
		if req.Email != "" {
			t.Email = req.Email
		}
		if req.Phone != "" {
			t.Phone = req.Phone
		}
		if req.Address != "" {
			t.Address = req.Address
		}
		if newHash != "" {
			t.PasswordHash = newHash
		}
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "TECHNICIAN_NOT_FOUND", "Technician not found")
		return
	}

	updated, err := store.Technicians().FindByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}
