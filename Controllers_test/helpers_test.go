package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/controllers"
	"github.com/amanahberbagi/donation-app/middlewares"
	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB menggunakan SQLite in-memory dengan nama unik per test agar
// data antar test tidak saling menimpa.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Branch{},
		&models.Team{},
		&models.User{},
		&models.Program{},
		&models.PaymentMethod{},
		&models.Transaction{},
		&models.AppSetting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// setupRouterForTest mengonfigurasi router dengan endpoint yang akan diuji,
// memakai middleware auth dan pembatasan role yang sama dengan router asli.
func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userCtrl := controllers.NewUserController(db)
	transactionCtrl := controllers.NewTransactionController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	reportCtrl := controllers.NewReportController(db)

	router.POST("/login", userCtrl.Login)

	auth := router.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	auth.POST("/users", adminOnly, userCtrl.Register)

	auth.GET("/transactions", transactionCtrl.GetAllTransactions)
	auth.POST("/transactions", transactionCtrl.CreateTransaction)
	auth.GET("/transactions/:transaction_id", transactionCtrl.GetTransactionByID)
	auth.PATCH("/transactions/:transaction_id", transactionCtrl.UpdateTransaction)
	auth.DELETE("/transactions/:transaction_id", transactionCtrl.DeleteTransaction)

	canValidate := middlewares.RequireRoles(models.RoleAdmin, models.RoleValidator, models.RoleBranch)
	auth.POST("/transactions/:transaction_id/validate", canValidate, transactionCtrl.ValidateTransaction)
	auth.POST("/transactions/bulk-update-status", canValidate, transactionCtrl.BulkUpdateStatus)

	auth.GET("/transactions/my", transactionCtrl.GetMyTransactions)
	auth.GET("/transactions/my/stats", transactionCtrl.GetMyStats)

	canReport := middlewares.RequireRoles(models.RoleAdmin, models.RoleValidator)
	auth.GET("/dashboard", canReport, dashboardCtrl.GetDashboard)
	auth.GET("/reports/branches", canReport, reportCtrl.GetBranchReport)
	auth.GET("/reports/export", canReport, reportCtrl.ExportReport)

	return router
}

// fixture berisi data referensi yang dipakai hampir semua test transaksi.
type fixture struct {
	jakarta, bandung models.Branch
	teamA, teamB     models.Team
	admin, validator models.User
	budi, branchUser models.User
	zakat, qurban    models.Program
	transfer         models.PaymentMethod
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{}
	f.jakarta = models.Branch{Name: "Jakarta"}
	f.bandung = models.Branch{Name: "Bandung"}
	db.Create(&f.jakarta)
	db.Create(&f.bandung)

	f.teamA = models.Team{Name: "Tim A", BranchID: f.jakarta.ID}
	f.teamB = models.Team{Name: "Tim B", BranchID: f.bandung.ID}
	db.Create(&f.teamA)
	db.Create(&f.teamB)

	f.admin = models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	f.validator = models.User{Name: "Validator", Email: "validator@example.com", Password: "x", Role: models.RoleValidator}
	f.budi = models.User{
		Name: "Budi", Email: "budi@example.com", Password: "x",
		Role: models.RoleVolunteer, BranchID: &f.jakarta.ID, TeamID: &f.teamA.ID,
	}
	f.branchUser = models.User{
		Name: "Akun Jakarta", Email: "jakarta@example.com", Password: "x",
		Role: models.RoleBranch, BranchID: &f.jakarta.ID,
	}
	db.Create(&f.admin)
	db.Create(&f.validator)
	db.Create(&f.budi)
	db.Create(&f.branchUser)

	f.zakat = models.Program{Type: models.ProgramTypeZiswaf, Name: "Zakat Maal", Code: "ZKT", VolunteerRate: 15, BranchRate: 70}
	f.qurban = models.Program{Type: models.ProgramTypeQurban, Name: "Qurban Sapi", Code: "QRB", VolunteerRate: 10, BranchRate: 5}
	db.Create(&f.zakat)
	db.Create(&f.qurban)

	f.transfer = models.PaymentMethod{Name: "Transfer BCA", IsActive: true}
	db.Create(&f.transfer)

	return f
}

func (f fixture) newTransaction(db *gorm.DB, status string) models.Transaction {
	tx := models.Transaction{
		DonorName:       "Siti Aminah",
		ProgramType:     models.ProgramTypeZiswaf,
		ProgramID:       f.zakat.ID,
		Amount:          1_000_000,
		VolunteerRate:   15,
		BranchRate:      70,
		BranchID:        f.jakarta.ID,
		TeamID:          f.teamA.ID,
		VolunteerID:     f.budi.ID,
		PaymentMethodID: f.transfer.ID,
		TransactionDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local),
		Status:          status,
	}
	db.Create(&tx)
	return tx
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON mengirim request JSON dan mengembalikan recorder respons.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doMultipart mengirim request multipart/form-data dengan field teks dan
// (opsional) satu file, meniru form upload bukti transfer di frontend.
func doMultipart(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	writer.Close()

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// chdirTemp memindahkan working directory ke direktori sementara supaya file
// upload relatif ("public/uploads/...") tidak mengotori workspace.
func chdirTemp(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return response
}
