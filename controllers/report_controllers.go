package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/services"
	"github.com/amanahberbagi/donation-app/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// resolveReportWindow menerima date_preset (current_month, one_month_ago,
// two_months_ago, all) atau pasangan date_from/date_to.
func resolveReportWindow(c *gin.Context) (services.DateWindow, error) {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	preset := c.DefaultQuery("date_preset", services.FilterAll)

	if dateFrom != "" || dateTo != "" {
		return services.ResolveDateWindow(services.FilterDateRange, dateFrom, dateTo, time.Now())
	}
	return services.ResolveDateWindow(preset, "", "", time.Now())
}

// GetBranchReport -> laporan kinerja per cabang
func (rc *ReportController) GetBranchReport(c *gin.Context) {
	window, err := resolveReportWindow(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rows, err := services.BranchReport(rc.DB, window)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch report", gin.H{"rows": rows})
}

// GetVolunteerReport -> laporan kinerja per relawan
func (rc *ReportController) GetVolunteerReport(c *gin.Context) {
	window, err := resolveReportWindow(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rows, err := services.VolunteerReport(rc.DB, window)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Volunteer report", gin.H{"rows": rows})
}

// GetBranchDetailReport -> laporan relawan di dalam satu cabang
func (rc *ReportController) GetBranchDetailReport(c *gin.Context) {
	branchID, _ := strconv.Atoi(c.Param("branch_id"))

	window, err := resolveReportWindow(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rows, err := services.BranchDetailReport(rc.DB, uint(branchID), window)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch detail report", gin.H{"rows": rows})
}

// ExportReport mengunduh laporan sebagai workbook xlsx: blok ringkasan lalu
// tabel detail. Nama file diturunkan dari tab laporan dan rentang tanggal.
func (rc *ReportController) ExportReport(c *gin.Context) {
	window, err := resolveReportWindow(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reportType := c.DefaultQuery("type", "branches")

	var (
		rows  []services.ReportRow
		title string
		tab   string
	)
	switch reportType {
	case "branches":
		rows, err = services.BranchReport(rc.DB, window)
		title = "Laporan Kinerja Cabang"
		tab = "cabang"
	case "volunteers":
		rows, err = services.VolunteerReport(rc.DB, window)
		title = "Laporan Kinerja Relawan"
		tab = "relawan"
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("type harus branches atau volunteers"))
		return
	}
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	workbook, err := services.BuildReportWorkbook(title, window, rows)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	filename := services.ExportFilename(tab, window)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := workbook.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Gagal menulis workbook %s: %v", filename, err)
	}
}
