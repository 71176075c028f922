package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/services"
	"github.com/amanahberbagi/donation-app/utils"
)

type TransactionController struct {
	DB        *gorm.DB
	UploadDir string
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{
		DB:        db,
		UploadDir: "public/uploads/proof_images",
	}
}

// transactionView menempelkan hasil perhitungan komisi pada transaksi untuk
// response API, supaya semua tampilan memakai satu perhitungan yang sama.
type transactionView struct {
	models.Transaction
	VolunteerCommission float64 `json:"volunteer_commission"`
	BranchCommission    float64 `json:"branch_commission"`
	TotalDonation       float64 `json:"total_donation"`
}

func newTransactionView(t models.Transaction) transactionView {
	commission := services.CalculateCommission(t)
	return transactionView{
		Transaction:         t,
		VolunteerCommission: commission.Volunteer,
		BranchCommission:    commission.Branch,
		TotalDonation:       services.TotalDonation(t),
	}
}

func newTransactionViews(transactions []models.Transaction) []transactionView {
	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, newTransactionView(t))
	}
	return views
}

// transactionInput adalah payload create/update, baik dari JSON maupun
// multipart form (jika ada bukti transfer).
type transactionInput struct {
	DonorName       string
	ProgramType     string
	ProgramID       uint
	Amount          float64
	QurbanAmount    float64
	QurbanOwnerName string
	ZiswafProgramID *uint
	BranchID        uint
	TeamID          uint
	VolunteerID     uint
	PaymentMethodID uint
	TransactionDate *time.Time
	Status          string
	StatusReason    *string
}

func parseTransactionInput(c *gin.Context) (*transactionInput, *multipart.FileHeader, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return parseMultipartInput(c)
	}

	var body struct {
		DonorName       string  `json:"donor_name"`
		ProgramType     string  `json:"program_type"`
		ProgramID       uint    `json:"program_id"`
		Amount          float64 `json:"amount"`
		QurbanAmount    float64 `json:"qurban_amount"`
		QurbanOwnerName string  `json:"qurban_owner_name"`
		ZiswafProgramID *uint   `json:"ziswaf_program_id"`
		BranchID        uint    `json:"branch_id"`
		TeamID          uint    `json:"team_id"`
		VolunteerID     uint    `json:"volunteer_id"`
		PaymentMethodID uint    `json:"payment_method_id"`
		TransactionDate string  `json:"transaction_date"`
		Status          string  `json:"status"`
		StatusReason    *string `json:"status_reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, nil, err
	}

	in := &transactionInput{
		DonorName:       body.DonorName,
		ProgramType:     strings.ToUpper(body.ProgramType),
		ProgramID:       body.ProgramID,
		Amount:          body.Amount,
		QurbanAmount:    body.QurbanAmount,
		QurbanOwnerName: body.QurbanOwnerName,
		ZiswafProgramID: body.ZiswafProgramID,
		BranchID:        body.BranchID,
		TeamID:          body.TeamID,
		VolunteerID:     body.VolunteerID,
		PaymentMethodID: body.PaymentMethodID,
		Status:          body.Status,
		StatusReason:    body.StatusReason,
	}
	if body.TransactionDate != "" {
		parsed, err := parseTransactionDate(body.TransactionDate)
		if err != nil {
			return nil, nil, err
		}
		in.TransactionDate = &parsed
	}
	return in, nil, nil
}

func parseMultipartInput(c *gin.Context) (*transactionInput, *multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		return nil, nil, errors.New("form data tidak valid")
	}

	in := &transactionInput{
		DonorName:       c.PostForm("donor_name"),
		ProgramType:     strings.ToUpper(c.PostForm("program_type")),
		QurbanOwnerName: c.PostForm("qurban_owner_name"),
		Status:          c.PostForm("status"),
	}
	if reason, ok := c.GetPostForm("status_reason"); ok {
		in.StatusReason = &reason
	}

	in.ProgramID = parseFormUint(c, "program_id")
	in.BranchID = parseFormUint(c, "branch_id")
	in.TeamID = parseFormUint(c, "team_id")
	in.VolunteerID = parseFormUint(c, "volunteer_id")
	in.PaymentMethodID = parseFormUint(c, "payment_method_id")
	if id := parseFormUint(c, "ziswaf_program_id"); id != 0 {
		in.ZiswafProgramID = &id
	}

	in.Amount, _ = strconv.ParseFloat(c.PostForm("amount"), 64)
	in.QurbanAmount, _ = strconv.ParseFloat(c.PostForm("qurban_amount"), 64)

	if dateStr := c.PostForm("transaction_date"); dateStr != "" {
		parsed, err := parseTransactionDate(dateStr)
		if err != nil {
			return nil, nil, err
		}
		in.TransactionDate = &parsed
	}

	file, err := c.FormFile("proof_image")
	if err != nil {
		file = nil
	}
	return in, file, nil
}

func parseFormUint(c *gin.Context, field string) uint {
	v, _ := strconv.ParseUint(c.PostForm(field), 10, 32)
	return uint(v)
}

func parseTransactionDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, errors.New("format transaction_date tidak valid (YYYY-MM-DD)")
	}
	return t, nil
}

// applyInput memvalidasi payload dan mengisi transaksi, termasuk menyalin
// snapshot rate dari program yang dirujuk. Mengembalikan pesan error per
// field; kosong berarti valid.
func (tc *TransactionController) applyInput(in *transactionInput, t *models.Transaction) map[string]string {
	fieldErrors := map[string]string{}

	if in.DonorName == "" {
		fieldErrors["donor_name"] = "Nama donatur wajib diisi"
	}
	if !models.IsValidProgramType(in.ProgramType) {
		fieldErrors["program_type"] = "Tipe program harus ZISWAF atau QURBAN"
	}
	if in.TransactionDate == nil {
		fieldErrors["transaction_date"] = "Tanggal transaksi wajib diisi"
	}

	var program models.Program
	if in.ProgramID == 0 {
		fieldErrors["program_id"] = "Program wajib diisi"
	} else if err := tc.DB.First(&program, in.ProgramID).Error; err != nil {
		fieldErrors["program_id"] = "Program tidak ditemukan"
	} else if models.IsValidProgramType(in.ProgramType) && program.Type != in.ProgramType {
		fieldErrors["program_id"] = "Tipe program tidak sesuai dengan program yang dipilih"
	}

	var ziswafProgram *models.Program
	if in.ZiswafProgramID != nil {
		if in.ProgramType != models.ProgramTypeQurban {
			fieldErrors["ziswaf_program_id"] = "Program ziswaf tambahan hanya berlaku untuk transaksi QURBAN"
		} else {
			var zp models.Program
			if err := tc.DB.First(&zp, *in.ZiswafProgramID).Error; err != nil {
				fieldErrors["ziswaf_program_id"] = "Program ziswaf tidak ditemukan"
			} else if zp.Type != models.ProgramTypeZiswaf {
				fieldErrors["ziswaf_program_id"] = "Program yang dipilih bukan program ZISWAF"
			} else {
				ziswafProgram = &zp
			}
		}
	}

	// Nominal wajib untuk ZISWAF dan untuk QURBAN yang membawa program ziswaf
	if in.ProgramType == models.ProgramTypeZiswaf && in.Amount <= 0 {
		fieldErrors["amount"] = "Nominal wajib diisi"
	}
	if in.ProgramType == models.ProgramTypeQurban {
		if in.QurbanAmount <= 0 {
			fieldErrors["qurban_amount"] = "Nominal qurban wajib diisi"
		}
		if in.QurbanOwnerName == "" {
			fieldErrors["qurban_owner_name"] = "Nama pequrban wajib diisi"
		}
		if in.ZiswafProgramID != nil && in.Amount <= 0 {
			fieldErrors["amount"] = "Nominal wajib diisi jika program ziswaf dipilih"
		}
	}

	if in.BranchID == 0 {
		fieldErrors["branch_id"] = "Cabang wajib diisi"
	} else if err := tc.DB.First(&models.Branch{}, in.BranchID).Error; err != nil {
		fieldErrors["branch_id"] = "Cabang tidak ditemukan"
	}
	if in.TeamID == 0 {
		fieldErrors["team_id"] = "Tim wajib diisi"
	} else if err := tc.DB.First(&models.Team{}, in.TeamID).Error; err != nil {
		fieldErrors["team_id"] = "Tim tidak ditemukan"
	}
	if in.VolunteerID == 0 {
		fieldErrors["volunteer_id"] = "Relawan wajib diisi"
	} else if err := tc.DB.First(&models.User{}, in.VolunteerID).Error; err != nil {
		fieldErrors["volunteer_id"] = "Relawan tidak ditemukan"
	}
	if in.PaymentMethodID == 0 {
		fieldErrors["payment_method_id"] = "Metode pembayaran wajib diisi"
	} else if err := tc.DB.First(&models.PaymentMethod{}, in.PaymentMethodID).Error; err != nil {
		fieldErrors["payment_method_id"] = "Metode pembayaran tidak ditemukan"
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	t.DonorName = in.DonorName
	t.ProgramType = in.ProgramType
	t.ProgramID = program.ID
	t.Amount = in.Amount
	t.QurbanAmount = in.QurbanAmount
	t.QurbanOwnerName = in.QurbanOwnerName
	t.BranchID = in.BranchID
	t.TeamID = in.TeamID
	t.VolunteerID = in.VolunteerID
	t.PaymentMethodID = in.PaymentMethodID
	t.TransactionDate = *in.TransactionDate

	// Snapshot rate dari program pada saat ini; tidak dihitung ulang nanti
	t.VolunteerRate = program.VolunteerRate
	t.BranchRate = program.BranchRate
	if ziswafProgram != nil {
		t.ZiswafProgramID = &ziswafProgram.ID
		volunteerRate := ziswafProgram.VolunteerRate
		branchRate := ziswafProgram.BranchRate
		t.ZiswafVolunteerRate = &volunteerRate
		t.ZiswafBranchRate = &branchRate
	} else {
		// Link dilepas -> snapshot ziswaf ikut dikosongkan
		t.ZiswafProgramID = nil
		t.ZiswafVolunteerRate = nil
		t.ZiswafBranchRate = nil
	}

	return nil
}

// scopeInput mengisi atribusi dari user yang login untuk role yang terikat
// cabang/tim.
func (tc *TransactionController) scopeInput(in *transactionInput, role string, userID uint) error {
	if role != models.RoleVolunteer && role != models.RoleBranch {
		return nil
	}

	var user models.User
	if err := tc.DB.First(&user, userID).Error; err != nil {
		return errors.New("user tidak ditemukan")
	}

	if user.BranchID != nil {
		in.BranchID = *user.BranchID
	}
	if role == models.RoleVolunteer {
		in.VolunteerID = user.ID
		if user.TeamID != nil {
			in.TeamID = *user.TeamID
		}
	}
	return nil
}

// canModify menerapkan matriks izin edit/hapus per role.
func (tc *TransactionController) canModify(role string, userID uint, t models.Transaction) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleBranch:
		var user models.User
		if err := tc.DB.First(&user, userID).Error; err != nil || user.BranchID == nil {
			return false
		}
		return t.BranchID == *user.BranchID && t.Status == models.StatusPending
	case models.RoleVolunteer:
		return t.VolunteerID == userID && t.Status == models.StatusPending
	}
	return false
}

func (tc *TransactionController) preloaded() *gorm.DB {
	return tc.DB.
		Preload("Program").
		Preload("ZiswafProgram").
		Preload("Branch").
		Preload("Team").
		Preload("Volunteer").
		Preload("PaymentMethod")
}

// CreateTransaction -> buat transaksi (status='pending')
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")

	in, file, err := parseTransactionInput(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.scopeInput(in, role, userID); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	transaction := models.Transaction{Status: models.StatusPending}
	if in.StatusReason != nil {
		transaction.StatusReason = *in.StatusReason
	}
	fieldErrors := tc.applyInput(in, &transaction)
	if file != nil {
		if err := utils.ValidateProofImage(file); err != nil {
			if fieldErrors == nil {
				fieldErrors = map[string]string{}
			}
			fieldErrors["proof_image"] = err.Error()
		}
	}
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	if file != nil {
		path, err := utils.SaveProofImage(c, file, tc.UploadDir)
		if err != nil {
			utils.RespondInternalError(c, err)
			return
		}
		transaction.ProofImage = &path
	}

	if err := tc.DB.Create(&transaction).Error; err != nil {
		if transaction.ProofImage != nil {
			utils.DeleteProofImage(*transaction.ProofImage)
		}
		utils.RespondInternalError(c, err)
		return
	}

	tc.preloaded().First(&transaction, transaction.ID)
	utils.RespondJSON(c, http.StatusCreated, "Transaction created", newTransactionView(transaction))
}

// UpdateTransaction -> ubah transaksi sesuai matriks izin. Status hanya
// berubah jika admin menyertakannya secara eksplisit di payload.
func (tc *TransactionController) UpdateTransaction(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("transaction_id"))

	var transaction models.Transaction
	if err := tc.DB.First(&transaction, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}

	if !tc.canModify(role, userID, transaction) {
		utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
		return
	}

	in, file, err := parseTransactionInput(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.scopeInput(in, role, userID); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	fieldErrors := tc.applyInput(in, &transaction)
	if file != nil {
		if err := utils.ValidateProofImage(file); err != nil {
			if fieldErrors == nil {
				fieldErrors = map[string]string{}
			}
			fieldErrors["proof_image"] = err.Error()
		}
	}
	if in.Status != "" && !models.IsValidStatus(in.Status) {
		if fieldErrors == nil {
			fieldErrors = map[string]string{}
		}
		fieldErrors["status"] = "Status tidak dikenal"
	}
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	// Keterangan hanya berubah jika field-nya dikirim; payload yang tidak
	// menyertakan status_reason tidak menghapus keterangan lama
	if in.StatusReason != nil {
		transaction.StatusReason = *in.StatusReason
	}
	if in.Status != "" && role == models.RoleAdmin {
		transaction.Status = in.Status
	}

	if file != nil {
		oldImage := transaction.ProofImage
		path, err := utils.SaveProofImage(c, file, tc.UploadDir)
		if err != nil {
			utils.RespondInternalError(c, err)
			return
		}
		transaction.ProofImage = &path
		if oldImage != nil {
			utils.DeleteProofImage(*oldImage)
		}
	}

	if err := tc.DB.Save(&transaction).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	tc.preloaded().First(&transaction, transaction.ID)
	utils.RespondJSON(c, http.StatusOK, "Transaction updated", newTransactionView(transaction))
}

// DeleteTransaction menghapus transaksi beserta file bukti transfernya.
func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("transaction_id"))

	var transaction models.Transaction
	if err := tc.DB.First(&transaction, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}

	if !tc.canModify(role, userID, transaction) {
		utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
		return
	}

	if err := tc.DB.Delete(&transaction).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	if transaction.ProofImage != nil {
		utils.DeleteProofImage(*transaction.ProofImage)
	}

	utils.RespondJSON(c, http.StatusOK, "Transaction deleted", gin.H{"transaction_id": id})
}

// GetAllTransactions -> list transaksi dengan filter dan pagination 20/halaman.
// Relawan hanya melihat transaksinya sendiri, akun cabang hanya cabangnya.
func (tc *TransactionController) GetAllTransactions(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")

	q := tc.preloaded()

	switch role {
	case models.RoleVolunteer:
		q = q.Where("volunteer_id = ?", userID)
	case models.RoleBranch:
		var user models.User
		if err := tc.DB.First(&user, userID).Error; err != nil || user.BranchID == nil {
			utils.RespondError(c, http.StatusForbidden, errors.New("akun cabang tidak terikat cabang"))
			return
		}
		q = q.Where("branch_id = ?", *user.BranchID)
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if programType := strings.ToUpper(c.Query("program_type")); programType != "" {
		q = q.Where("program_type = ?", programType)
	}
	if branchID := c.Query("branch_id"); branchID != "" && role != models.RoleBranch {
		q = q.Where("branch_id = ?", branchID)
	}
	if teamID := c.Query("team_id"); teamID != "" {
		q = q.Where("team_id = ?", teamID)
	}
	if volunteerID := c.Query("volunteer_id"); volunteerID != "" && role != models.RoleVolunteer {
		q = q.Where("volunteer_id = ?", volunteerID)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("donor_name LIKE ?", "%"+search+"%")
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if start, err := time.ParseInLocation("2006-01-02", startDate, time.Local); err == nil {
			q = q.Where("transaction_date >= ?", start)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if end, err := time.ParseInLocation("2006-01-02", endDate, time.Local); err == nil {
			q = q.Where("transaction_date < ?", end.AddDate(0, 0, 1))
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const perPage = 20

	var total int64
	if err := q.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var transactions []models.Transaction
	if err := q.Order("transaction_date DESC, id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&transactions).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	utils.RespondJSON(c, http.StatusOK, "List of transactions", gin.H{
		"transactions": newTransactionViews(transactions),
		"pagination": gin.H{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetTransactionByID -> detail 1 transaksi
func (tc *TransactionController) GetTransactionByID(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("transaction_id"))

	var transaction models.Transaction
	if err := tc.preloaded().First(&transaction, id).Error; err != nil {
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
		if err := tc.DB.First(&user, userID).Error; err != nil ||
			user.BranchID == nil || transaction.BranchID != *user.BranchID {
			utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Transaction detail", newTransactionView(transaction))
}

// ValidateTransaction -> transisi status oleh validator/cabang/admin.
// Jalur satuan ini mencatat validated_at dan validated_by.
func (tc *TransactionController) ValidateTransaction(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("transaction_id"))

	var transaction models.Transaction
	if err := tc.DB.First(&transaction, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}

	if role == models.RoleBranch {
		var user models.User
		if err := tc.DB.First(&user, userID).Error; err != nil ||
			user.BranchID == nil || transaction.BranchID != *user.BranchID {
			utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
			return
		}
	}

	var body struct {
		Status       string `json:"status" binding:"required"`
		StatusReason string `json:"status_reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrors := map[string]string{}
	if !models.IsValidationStatus(body.Status) {
		fieldErrors["status"] = "Status validasi tidak dikenal"
	}
	if body.Status == models.StatusOther && strings.TrimSpace(body.StatusReason) == "" {
		fieldErrors["status_reason"] = "Keterangan wajib diisi untuk status lainnya"
	}
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	now := time.Now()
	transaction.Status = body.Status
	transaction.StatusReason = body.StatusReason
	transaction.ValidatedAt = &now
	transaction.ValidatedBy = &userID

	if err := tc.DB.Save(&transaction).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("Transaksi %d divalidasi menjadi %s oleh user %d",
		transaction.ID, transaction.Status, userID)

	utils.RespondJSON(c, http.StatusOK, "Transaction validated", newTransactionView(transaction))
}

// BulkUpdateStatus menerapkan satu status ke sekumpulan transaksi dengan satu
// UPDATE batch. Jalur ini tidak mengubah validated_at/validated_by.
func (tc *TransactionController) BulkUpdateStatus(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("user_id")

	var body struct {
		TransactionIDs []uint `json:"transaction_ids" binding:"required"`
		Status         string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidationStatus(body.Status) {
		utils.RespondValidationError(c, map[string]string{"status": "Status validasi tidak dikenal"})
		return
	}
	if len(body.TransactionIDs) == 0 {
		utils.RespondValidationError(c, map[string]string{"transaction_ids": "Daftar transaksi tidak boleh kosong"})
		return
	}

	q := tc.DB.Model(&models.Transaction{}).Where("id IN ?", body.TransactionIDs)
	if role == models.RoleBranch {
		var user models.User
		if err := tc.DB.First(&user, userID).Error; err != nil || user.BranchID == nil {
			utils.RespondError(c, http.StatusForbidden, errors.New("akun cabang tidak terikat cabang"))
			return
		}
		q = q.Where("branch_id = ?", *user.BranchID)
	}

	result := q.Update("status", body.Status)
	if result.Error != nil {
		utils.RespondInternalError(c, result.Error)
		return
	}

	utils.InfoLogger.Printf("Bulk update status %s untuk %d transaksi oleh user %d",
		body.Status, result.RowsAffected, userID)

	utils.RespondJSON(c, http.StatusOK, "Status updated", gin.H{
		"updated_count": result.RowsAffected,
	})
}

// GetMyTransactions -> daftar transaksi milik user yang login
func (tc *TransactionController) GetMyTransactions(c *gin.Context) {
	userID := c.GetUint("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const perPage = 20

	q := tc.preloaded().Where("volunteer_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var transactions []models.Transaction
	if err := q.Order("transaction_date DESC, id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&transactions).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My transactions", gin.H{
		"transactions": newTransactionViews(transactions),
		"pagination": gin.H{
			"page":        page,
			"per_page":    perPage,
			"total":       total,
			"total_pages": (total + perPage - 1) / perPage,
		},
	})
}

// GetMyStats -> ringkasan kinerja user yang login: jumlah transaksi per
// status, total donasi, dan total komisi relawan.
func (tc *TransactionController) GetMyStats(c *gin.Context) {
	userID := c.GetUint("user_id")

	window, err := services.ResolveDateWindow(
		c.DefaultQuery("filter_type", services.FilterAll),
		c.Query("start_date"),
		c.Query("end_date"),
		time.Now(),
	)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var transactions []models.Transaction
	q := services.ApplyWindow(tc.DB.Where("volunteer_id = ?", userID), window)
	if err := q.Find(&transactions).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var stats struct {
		TotalTransactions   int64            `json:"total_transactions"`
		TotalDonation       float64          `json:"total_donation"`
		VolunteerCommission float64          `json:"volunteer_commission"`
		ByStatus            map[string]int64 `json:"by_status"`
	}
	stats.ByStatus = map[string]int64{}

	for _, t := range transactions {
		stats.TotalTransactions++
		stats.TotalDonation += services.TotalDonation(t)
		stats.VolunteerCommission += services.CalculateCommission(t).Volunteer
		stats.ByStatus[t.Status]++
	}

	utils.RespondJSON(c, http.StatusOK, "My stats", stats)
}
