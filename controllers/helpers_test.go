package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/middleware"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/services"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

type testEnv struct {
	router      *gin.Engine
	mailer      *services.MockMailer
	attachments *services.MockAttachmentStore
	dataDir     string
}

// setupTestEnv wires fresh stores, mocks and a router with the same route
// table the server uses.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	config.SetConfig(&config.Config{
		JWTSecret:       "test-secret",
		SessionDuration: 30,
		DataDir:         dataDir,
		BackupDir:       filepath.Join(dataDir, "backups"),
		BillsFile:       filepath.Join(dataDir, "bills.xlsx"),
		StorageBackend:  "local",
	})
	t.Cleanup(func() { config.SetConfig(nil) })

	store.Init(dataDir)
	services.InitBilling(filepath.Join(dataDir, "bills.xlsx"))

	mailer := services.NewMockMailer()
	mailer.SetAsMockForTesting()
	t.Cleanup(func() { services.SetMailer(nil) })

	attachments := services.NewMockAttachmentStore()
	attachments.SetAsMockForTesting()
	t.Cleanup(func() { services.SetAttachmentStore(nil) })

	router := gin.New()
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/technician/login", TechnicianLogin)

	v1.GET("/complaints/track/:id", TrackComplaint)

	users := v1.Group("/users", middleware.RequireAuth())
	users.GET("/me", GetMyProfile)
	users.PUT("/me", UpdateMyProfile)

	complaints := v1.Group("/complaints", middleware.RequireAuth())
	complaints.POST("", middleware.RequireRole(models.RoleCustomer, models.RoleAdmin), SubmitComplaint)
	complaints.GET("", ListMyComplaints)
	complaints.GET("/:id", GetComplaint)
	complaints.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), AssignTechnician)
	complaints.POST("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleTechnician), UpdateComplaintStatus)

	technicians := v1.Group("/technicians", middleware.RequireAuth())
	technicians.GET("/me", middleware.RequireRole(models.RoleTechnician), GetTechnicianProfile)
	technicians.PUT("/me", middleware.RequireRole(models.RoleTechnician), UpdateTechnicianProfile)
	technicians.GET("/me/complaints", middleware.RequireRole(models.RoleTechnician), ListAssignedComplaints)
	technicians.POST("", middleware.RequireRole(models.RoleAdmin), CreateTechnician)
	technicians.GET("", middleware.RequireRole(models.RoleAdmin), ListTechnicians)
	technicians.PUT("/:id", middleware.RequireRole(models.RoleAdmin), UpdateTechnician)
	technicians.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), DeleteTechnician)

	admin := v1.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", AdminDashboard)
	admin.GET("/report", GetReport)
	admin.GET("/report/export", ExportReport)
	admin.POST("/complaints/import", ImportComplaints)
	admin.POST("/backup", BackupDatabase)

	return &testEnv{
		router:      router,
		mailer:      mailer,
		attachments: attachments,
		dataDir:     dataDir,
	}
}

// seedCustomer creates a customer account and returns its id and a session
// token.
func seedCustomer(t *testing.T, email string) (string, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	id, err := store.Users().Create(&models.User{
		FullName:         "Test Customer",
		Aadhar:           randomDigits(t, 12),
		Email:            email,
		Phone:            randomDigits(t, 10),
		Address:          "Sector 7",
		PasswordHash:     hash,
		Role:             models.RoleCustomer,
		RegistrationDate: time.Now().Format(models.TimeLayout),
	})
	require.NoError(t, err)
	token, err := utils.GenerateJWT(id, models.RoleCustomer)
	require.NoError(t, err)
	return id, token
}

func seedAdmin(t *testing.T) (string, string) {
	t.Helper()
	hash, err := utils.HashPassword("admin123")
	require.NoError(t, err)
	id, err := store.Users().Create(&models.User{
		FullName:         "Test Admin",
		Aadhar:           randomDigits(t, 12),
		Email:            "admin-" + randomDigits(t, 4) + "@example.com",
		Phone:            randomDigits(t, 10),
		Address:          "Head Office",
		PasswordHash:     hash,
		Role:             models.RoleAdmin,
		RegistrationDate: time.Now().Format(models.TimeLayout),
	})
	require.NoError(t, err)
	token, err := utils.GenerateJWT(id, models.RoleAdmin)
	require.NoError(t, err)
	return id, token
}

func seedTechnician(t *testing.T) (string, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	id, err := store.Technicians().Create(&models.Technician{
		FullName:     "Test Technician",
		Aadhar:       randomDigits(t, 12),
		Email:        "tech-" + randomDigits(t, 4) + "@example.com",
		Phone:        randomDigits(t, 10),
		Address:      "Field Office",
		PasswordHash: hash,
	})
	require.NoError(t, err)
	token, err := utils.GenerateJWT(id, models.RoleTechnician)
	require.NoError(t, err)
	return id, token
}

var digitCounter int64 = 100000000000

// randomDigits returns a unique digit string of the given length, so seeded
// accounts never trip the uniqueness checks.
func randomDigits(t *testing.T, length int) string {
	t.Helper()
	digitCounter++
	s := fmt.Sprintf("%012d", digitCounter)
	return s[len(s)-length:]
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, fileField, filename string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
