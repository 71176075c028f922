package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/services"
	"github.com/amanahberbagi/donation-app/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GenerateReceipt membuat kwitansi donasi PDF untuk satu transaksi.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("transaction_id"))

	var transaction models.Transaction
	if err := rc.DB.
		Preload("Program").
		Preload("ZiswafProgram").
		Preload("Branch").
		Preload("Volunteer").
		Preload("PaymentMethod").
		First(&transaction, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}

	switch role {
	case models.RoleVolunteer:
		if transaction.VolunteerID != userID {
			utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
			return
		}
	case models.RoleBranch:
		var user models.User
		if err := rc.DB.First(&user, userID).Error; err != nil ||
			user.BranchID == nil || transaction.BranchID != *user.BranchID {
			utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
			return
		}
	}

	receiptNumber := fmt.Sprintf("KWT/%s/%06d",
		transaction.TransactionDate.Format("20060102"),
		transaction.ID)

	var setting models.AppSetting
	if err := rc.DB.First(&setting).Error; err != nil {
		setting.AppName = "Amanah Berbagi"
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, setting.AppName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Kwitansi Donasi", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	line := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	line("No. Kwitansi", receiptNumber)
	line("Tanggal", transaction.TransactionDate.Format("02/01/2006"))
	line("Donatur", transaction.DonorName)
	line("Program", transaction.Program.Name)
	if transaction.ProgramType == models.ProgramTypeQurban {
		line("Pequrban", transaction.QurbanOwnerName)
		line("Nominal Qurban", utils.FormatCurrencyIDR(transaction.QurbanAmount))
		if transaction.ZiswafProgram != nil {
			line("Program Ziswaf", transaction.ZiswafProgram.Name)
		}
	}
	if transaction.Amount > 0 {
		line("Nominal", utils.FormatCurrencyIDR(transaction.Amount))
	}
	line("Total", utils.FormatCurrencyIDR(services.TotalDonation(transaction)))
	line("Metode", transaction.PaymentMethod.Name)
	line("Cabang", transaction.Branch.Name)
	line("Relawan", transaction.Volunteer.Name)
	line("Status", transaction.Status)

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "Dokumen ini dibuat otomatis dan sah tanpa tanda tangan.", "", 1, "C", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf(`inline; filename="kwitansi-%d.pdf"`, transaction.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Gagal menulis kwitansi transaksi %d: %v", transaction.ID, err)
	}
}
