package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/controllers"
	"github.com/mdferoz/electricity-board-api/middleware"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/services"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := config.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting Electricity Board complaint service",
		zap.String("env", cfg.GoEnv), zap.String("port", cfg.Port))

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal("failed to create data directory", zap.Error(err))
	}
	store.Init(cfg.DataDir)
	if err := seedDefaults(); err != nil {
		logger.Fatal("failed to seed default accounts", zap.Error(err))
	}

	services.InitMailer(cfg)
	services.InitBilling(cfg.BillsFile)
	if _, err := services.InitAttachmentStore(cfg); err != nil {
		logger.Fatal("failed to initialize attachment store", zap.Error(err))
	}

	router := setupRouter(cfg)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/technician/login", controllers.TechnicianLogin)
		}

		// Public complaint tracking by id.
		v1.GET("/complaints/track/:id", controllers.TrackComplaint)

		users := v1.Group("/users", middleware.RequireAuth())
		{
			users.GET("/me", controllers.GetMyProfile)
			users.PUT("/me", controllers.UpdateMyProfile)
		}

		complaints := v1.Group("/complaints", middleware.RequireAuth())
		{
			complaints.POST("", middleware.RequireRole(models.RoleCustomer, models.RoleAdmin), controllers.SubmitComplaint)
			complaints.GET("", controllers.ListMyComplaints)
			complaints.GET("/:id", controllers.GetComplaint)
			complaints.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), controllers.AssignTechnician)
			complaints.POST("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleTechnician), controllers.UpdateComplaintStatus)
		}

		technicians := v1.Group("/technicians", middleware.RequireAuth())
		{
			technicians.GET("/me", middleware.RequireRole(models.RoleTechnician), controllers.GetTechnicianProfile)
			technicians.PUT("/me", middleware.RequireRole(models.RoleTechnician), controllers.UpdateTechnicianProfile)
			technicians.GET("/me/complaints", middleware.RequireRole(models.RoleTechnician), controllers.ListAssignedComplaints)

			technicians.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateTechnician)
			technicians.GET("", middleware.RequireRole(models.RoleAdmin), controllers.ListTechnicians)
			technicians.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateTechnician)
			technicians.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteTechnician)
		}

		admin := v1.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", controllers.AdminDashboard)
			admin.GET("/report", controllers.GetReport)
			admin.GET("/report/export", controllers.ExportReport)
			admin.POST("/complaints/import", controllers.ImportComplaints)
			admin.POST("/backup", controllers.BackupDatabase)
		}
	}

	return router
}

// seedDefaults creates the bootstrap admin and default technician accounts
// the first time the service runs against an empty data directory.
func seedDefaults() error {
	users, err := store.Users().List()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		hash, err := utils.HashPassword(envOr("SEED_ADMIN_PASSWORD", "admin123"))
		if err != nil {
			return err
		}
		_, err = store.Users().Create(&models.User{
			FullName:         "Admin User",
			Aadhar:           "000000000000",
			Email:            envOr("SEED_ADMIN_EMAIL", "admin@electricityboard.local"),
			Phone:            "1234567891",
			Address:          "Admin Office",
			PasswordHash:     hash,
			Role:             models.RoleAdmin,
			RegistrationDate: time.Now().Format(models.TimeLayout),
		})
		if err != nil {
			return err
		}
		config.Logger().Info("seeded default admin account")
	}

	technicians, err := store.Technicians().List()
	if err != nil {
		return err
	}
	if len(technicians) == 0 {
		hash, err := utils.HashPassword(envOr("SEED_TECHNICIAN_PASSWORD", "password123"))
		if err != nil {
			return err
		}
		_, err = store.Technicians().Create(&models.Technician{
			FullName:     "Default Technician",
			Aadhar:       "123456789012",
			Email:        envOr("SEED_TECHNICIAN_EMAIL", "technician@electricityboard.local"),
			Phone:        "9876543210",
			Address:      "Field Office",
			PasswordHash: hash,
			Role:         models.RoleTechnician,
		})
		if err != nil {
			return err
		}
		config.Logger().Info("seeded default technician account")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Electricity Board complaint service is running",
	})
}
