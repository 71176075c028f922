package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/controllers"
	"github.com/amanahberbagi/donation-app/middlewares"
	"github.com/amanahberbagi/donation-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Bukti transfer dilayani dari direktori uploads
	workDir, _ := os.Getwd()
	uploadsPath := filepath.Join(workDir, "public", "uploads")
	r.Static("/uploads", uploadsPath)

	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			// Hanya izinkan akses ke file gambar
			path := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(path, ".jpg") &&
				!strings.HasSuffix(path, ".jpeg") &&
				!strings.HasSuffix(path, ".png") &&
				!strings.HasSuffix(path, ".gif") &&
				!strings.HasSuffix(path, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP; harus terpasang sebelum registrasi route
	// karena gin membekukan chain handler per route saat didaftarkan
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	branchCtrl := controllers.NewBranchController(db)
	teamCtrl := controllers.NewTeamController(db)
	programCtrl := controllers.NewProgramController(db)
	paymentMethodCtrl := controllers.NewPaymentMethodController(db)
	transactionCtrl := controllers.NewTransactionController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	reportCtrl := controllers.NewReportController(db)
	importCtrl := controllers.NewImportController(db)
	receiptCtrl := controllers.NewReceiptController(db)
	settingCtrl := controllers.NewSettingController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/settings", settingCtrl.GetSettings)

	// Rate limiter untuk login
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)

	// USERS (admin)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	auth.POST("/users", adminOnly, userCtrl.Register)
	auth.GET("/users", adminOnly, userCtrl.GetAllUsers)
	auth.PATCH("/users/:user_id", adminOnly, userCtrl.UpdateUser)
	auth.DELETE("/users/:user_id", adminOnly, userCtrl.DeleteUser)

	// MASTER DATA: baca untuk semua role, tulis hanya admin
	auth.GET("/branches", branchCtrl.GetAllBranches)
	auth.GET("/branches/:branch_id", branchCtrl.GetBranchByID)
	auth.POST("/branches", adminOnly, branchCtrl.CreateBranch)
	auth.PATCH("/branches/:branch_id", adminOnly, branchCtrl.UpdateBranch)
	auth.DELETE("/branches/:branch_id", adminOnly, branchCtrl.DeleteBranch)

	auth.GET("/teams", teamCtrl.GetAllTeams)
	auth.GET("/teams/:team_id", teamCtrl.GetTeamByID)
	auth.POST("/teams", adminOnly, teamCtrl.CreateTeam)
	auth.PATCH("/teams/:team_id", adminOnly, teamCtrl.UpdateTeam)
	auth.DELETE("/teams/:team_id", adminOnly, teamCtrl.DeleteTeam)

	auth.GET("/programs", programCtrl.GetAllPrograms)
	auth.GET("/programs/:program_id", programCtrl.GetProgramByID)
	auth.POST("/programs", adminOnly, programCtrl.CreateProgram)
	auth.PATCH("/programs/:program_id", adminOnly, programCtrl.UpdateProgram)
	auth.DELETE("/programs/:program_id", adminOnly, programCtrl.DeleteProgram)

	auth.GET("/payment-methods", paymentMethodCtrl.GetAllPaymentMethods)
	auth.POST("/payment-methods", adminOnly, paymentMethodCtrl.CreatePaymentMethod)
	auth.PATCH("/payment-methods/:method_id", adminOnly, paymentMethodCtrl.UpdatePaymentMethod)
	auth.DELETE("/payment-methods/:method_id", adminOnly, paymentMethodCtrl.DeletePaymentMethod)

	auth.PUT("/settings", adminOnly, settingCtrl.UpdateSettings)

	// TRANSACTIONS: semua role; pembatasan per-record ada di controller
	auth.GET("/transactions", transactionCtrl.GetAllTransactions)
	auth.POST("/transactions", transactionCtrl.CreateTransaction)
	auth.GET("/transactions/:transaction_id", transactionCtrl.GetTransactionByID)
	auth.PATCH("/transactions/:transaction_id", transactionCtrl.UpdateTransaction)
	auth.PUT("/transactions/:transaction_id", transactionCtrl.UpdateTransaction)
	auth.DELETE("/transactions/:transaction_id", transactionCtrl.DeleteTransaction)
	auth.GET("/transactions/:transaction_id/receipt", receiptCtrl.GenerateReceipt)

	// VALIDATION (admin/validator/branch)
	canValidate := middlewares.RequireRoles(models.RoleAdmin, models.RoleValidator, models.RoleBranch)
	auth.POST("/transactions/:transaction_id/validate", canValidate, transactionCtrl.ValidateTransaction)
	auth.POST("/transactions/bulk-update-status", canValidate, transactionCtrl.BulkUpdateStatus)

	// Area khusus relawan
	auth.GET("/transactions/my", transactionCtrl.GetMyTransactions)
	auth.GET("/transactions/my/stats", transactionCtrl.GetMyStats)

	// DASHBOARD & REPORTS (admin/validator)
	canReport := middlewares.RequireRoles(models.RoleAdmin, models.RoleValidator)
	auth.GET("/dashboard", canReport, dashboardCtrl.GetDashboard)
	auth.GET("/reports/branches", canReport, reportCtrl.GetBranchReport)
	auth.GET("/reports/volunteers", canReport, reportCtrl.GetVolunteerReport)
	auth.GET("/reports/branches/:branch_id", canReport, reportCtrl.GetBranchDetailReport)
	auth.GET("/reports/export", canReport, reportCtrl.ExportReport)

	// IMPORT (admin)
	auth.GET("/transactions/import/template", adminOnly, importCtrl.DownloadTemplate)
	auth.POST("/transactions/import", adminOnly, importCtrl.ImportTransactions)

	return r
}
