package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/services"
	"github.com/amanahberbagi/donation-app/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type statusStat struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type groupStat struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type monthlyStat struct {
	Month string  `json:"month"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type monthlyProgramStat struct {
	Month   string  `json:"month"`
	Program string  `json:"program"`
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
}

// GetDashboard mengambil statistik dashboard untuk rentang tanggal yang
// diminta. Operasi baca murni, aman dipanggil berulang.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	window, err := services.ResolveDateWindow(
		c.Query("filter_type"),
		c.Query("start_date"),
		c.Query("end_date"),
		time.Now(),
	)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	windowed := func() *gorm.DB {
		return services.ApplyWindow(dc.DB.Model(&models.Transaction{}), window)
	}

	var stats struct {
		TotalTransactions  int64                 `json:"total_transactions"`
		TotalDonation      float64               `json:"total_donation"`
		ByStatus           map[string]statusStat `json:"by_status"`
		UsersByRole        map[string]int64      `json:"users_by_role"`
		ByBranch           []groupStat           `json:"by_branch"`
		ByProgram          []groupStat           `json:"by_program"`
		MonthlyTrend       []monthlyStat         `json:"monthly_trend"`
		MonthlyByProgram   []monthlyProgramStat  `json:"monthly_by_program"`
		RecentTransactions []transactionView     `json:"recent_transactions"`
	}

	windowed().Count(&stats.TotalTransactions)
	windowed().Select("COALESCE(SUM(amount + qurban_amount), 0)").
		Row().Scan(&stats.TotalDonation)

	// Jumlah dan total donasi per status
	stats.ByStatus = map[string]statusStat{}
	for _, status := range []string{
		models.StatusPending, models.StatusValid, models.StatusDoubleDuta,
		models.StatusDoubleInput, models.StatusNotInAccount, models.StatusOther,
	} {
		var s statusStat
		windowed().Where("status = ?", status).Count(&s.Count)
		windowed().Where("status = ?", status).
			Select("COALESCE(SUM(amount + qurban_amount), 0)").
			Row().Scan(&s.Total)
		stats.ByStatus[status] = s
	}

	// Jumlah user per role
	stats.UsersByRole = map[string]int64{}
	for _, role := range []string{
		models.RoleAdmin, models.RoleValidator, models.RoleVolunteer, models.RoleBranch,
	} {
		var count int64
		dc.DB.Model(&models.User{}).Where("role = ?", role).Count(&count)
		stats.UsersByRole[role] = count
	}

	// Grouping per cabang dan per program; nama relasi yang hilang diganti
	// "Unknown"
	windowed().
		Select("COALESCE(branches.name, 'Unknown') AS name, COUNT(transactions.id) AS count, COALESCE(SUM(transactions.amount + transactions.qurban_amount), 0) AS total").
		Joins("LEFT JOIN branches ON branches.id = transactions.branch_id").
		Group("branches.name").
		Order("total DESC").
		Scan(&stats.ByBranch)

	windowed().
		Select("COALESCE(programs.name, 'Unknown') AS name, COUNT(transactions.id) AS count, COALESCE(SUM(transactions.amount + transactions.qurban_amount), 0) AS total").
		Joins("LEFT JOIN programs ON programs.id = transactions.program_id").
		Group("programs.name").
		Order("total DESC").
		Scan(&stats.ByProgram)

	// Tren 6 bulan terakhir (terlepas dari filter tanggal)
	now := time.Now()
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		monthQuery := func() *gorm.DB {
			return dc.DB.Model(&models.Transaction{}).
				Where("transaction_date >= ? AND transaction_date < ?", monthStart, monthEnd)
		}

		var m monthlyStat
		m.Month = monthStart.Format("2006-01")
		monthQuery().Count(&m.Count)
		monthQuery().Select("COALESCE(SUM(amount + qurban_amount), 0)").Row().Scan(&m.Total)
		stats.MonthlyTrend = append(stats.MonthlyTrend, m)

		var perProgram []monthlyProgramStat
		monthQuery().
			Select("COALESCE(programs.name, 'Unknown') AS program, COUNT(transactions.id) AS count, COALESCE(SUM(transactions.amount + transactions.qurban_amount), 0) AS total").
			Joins("LEFT JOIN programs ON programs.id = transactions.program_id").
			Group("programs.name").
			Scan(&perProgram)
		for j := range perProgram {
			perProgram[j].Month = m.Month
		}
		stats.MonthlyByProgram = append(stats.MonthlyByProgram, perProgram...)
	}

	// 10 transaksi terbaru dengan relasi terisi
	var recent []models.Transaction
	dc.DB.
		Preload("Program").
		Preload("ZiswafProgram").
		Preload("Branch").
		Preload("Team").
		Preload("Volunteer").
		Preload("PaymentMethod").
		Order("created_at DESC").
		Limit(10).
		Find(&recent)
	stats.RecentTransactions = newTransactionViews(recent)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
