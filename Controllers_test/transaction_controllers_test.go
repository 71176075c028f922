package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanahberbagi/donation-app/models"
)

func TestCreateTransactionZiswaf(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	w := doJSON(t, router, "POST", "/api/transactions", tokenFor(t, f.admin), map[string]interface{}{
		"donor_name":        "Siti Aminah",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            1000000,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])

	// Snapshot rate disalin dari program dan komisi ikut di response
	assert.Equal(t, 15.0, data["volunteer_rate"])
	assert.Equal(t, 70.0, data["branch_rate"])
	assert.Equal(t, 150000.0, data["volunteer_commission"])
	assert.Equal(t, 700000.0, data["branch_commission"])
	assert.Equal(t, 1000000.0, data["total_donation"])
}

func TestCreateTransactionQurbanWithZiswafProgram(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	w := doJSON(t, router, "POST", "/api/transactions", tokenFor(t, f.admin), map[string]interface{}{
		"donor_name":        "Ahmad Fauzi",
		"program_type":      "QURBAN",
		"program_id":        f.qurban.ID,
		"qurban_amount":     2000000,
		"qurban_owner_name": "Keluarga Fauzi",
		"ziswaf_program_id": f.zakat.ID,
		"amount":            500000,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-11",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 15.0, data["ziswaf_volunteer_rate"])
	assert.Equal(t, 70.0, data["ziswaf_branch_rate"])
	// 2jt x 10% + 500rb x 15%
	assert.Equal(t, 275000.0, data["volunteer_commission"])
	assert.Equal(t, 2500000.0, data["total_donation"])
}

func TestCreateTransactionValidation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)
	adminToken := tokenFor(t, f.admin)

	// ZISWAF tanpa nominal
	w := doJSON(t, router, "POST", "/api/transactions", adminToken, map[string]interface{}{
		"donor_name":        "Siti",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := parseResponse(t, w)
	errors := response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "amount")

	// Tipe program tidak cocok dengan program yang dipilih
	w = doJSON(t, router, "POST", "/api/transactions", adminToken, map[string]interface{}{
		"donor_name":        "Siti",
		"program_type":      "ZISWAF",
		"program_id":        f.qurban.ID,
		"amount":            100000,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response = parseResponse(t, w)
	errors = response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "program_id")

	// Program ziswaf tambahan pada transaksi ZISWAF
	w = doJSON(t, router, "POST", "/api/transactions", adminToken, map[string]interface{}{
		"donor_name":        "Siti",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            100000,
		"ziswaf_program_id": f.zakat.ID,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response = parseResponse(t, w)
	errors = response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "ziswaf_program_id")
}

func TestCreateTransactionScopesVolunteer(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	// Relawan tidak bisa membuat transaksi atas nama relawan/cabang lain
	w := doJSON(t, router, "POST", "/api/transactions", tokenFor(t, f.budi), map[string]interface{}{
		"donor_name":        "Siti Aminah",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            1000000,
		"branch_id":         f.bandung.ID,
		"team_id":           f.teamB.ID,
		"volunteer_id":      f.admin.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var tx models.Transaction
	db.First(&tx)
	assert.Equal(t, f.budi.ID, tx.VolunteerID)
	assert.Equal(t, f.jakarta.ID, tx.BranchID)
	assert.Equal(t, f.teamA.ID, tx.TeamID)
}

func TestUpdateTransactionPermissions(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	payload := map[string]interface{}{
		"donor_name":        "Siti Aminah (revisi)",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            1500000,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	}

	// Relawan boleh mengubah transaksinya sendiri selama masih pending
	pending := f.newTransaction(db, models.StatusPending)
	path := fmt.Sprintf("/api/transactions/%d", pending.ID)
	w := doJSON(t, router, "PATCH", path, tokenFor(t, f.budi), payload)
	assert.Equal(t, http.StatusOK, w.Code)

	// Setelah tervalidasi, relawan tidak boleh mengubah lagi
	validated := f.newTransaction(db, models.StatusValid)
	path = fmt.Sprintf("/api/transactions/%d", validated.ID)
	w = doJSON(t, router, "PATCH", path, tokenFor(t, f.budi), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Validator tidak boleh mengubah isi transaksi sama sekali
	w = doJSON(t, router, "PATCH", path, tokenFor(t, f.validator), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin tetap boleh
	w = doJSON(t, router, "PATCH", path, tokenFor(t, f.admin), payload)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateTransactionSnapshotFollowsCurrentRates(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	tx := f.newTransaction(db, models.StatusPending)

	// Rate program berubah setelah transaksi dibuat
	db.Model(&models.Program{}).Where("id = ?", f.zakat.ID).
		Updates(map[string]interface{}{"volunteer_rate": 20, "branch_rate": 60})

	// Update menyalin ulang snapshot dari rate yang berlaku sekarang
	path := fmt.Sprintf("/api/transactions/%d", tx.ID)
	w := doJSON(t, router, "PATCH", path, tokenFor(t, f.admin), map[string]interface{}{
		"donor_name":        tx.DonorName,
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            tx.Amount,
		"branch_id":         tx.BranchID,
		"team_id":           tx.TeamID,
		"volunteer_id":      tx.VolunteerID,
		"payment_method_id": tx.PaymentMethodID,
		"transaction_date":  "2025-01-10",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Transaction
	db.First(&updated, tx.ID)
	assert.Equal(t, 20.0, updated.VolunteerRate)
	assert.Equal(t, 60.0, updated.BranchRate)
}

func TestUpdateTransactionKeepsStatusReasonWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	tx := f.newTransaction(db, models.StatusOther)
	db.Model(&tx).Update("status_reason", "nominal tidak cocok dengan mutasi")

	payload := map[string]interface{}{
		"donor_name":        "Siti Aminah",
		"program_type":      "ZISWAF",
		"program_id":        f.zakat.ID,
		"amount":            1000000,
		"branch_id":         f.jakarta.ID,
		"team_id":           f.teamA.ID,
		"volunteer_id":      f.budi.ID,
		"payment_method_id": f.transfer.ID,
		"transaction_date":  "2025-01-10",
	}

	// Payload tanpa status_reason tidak boleh menghapus keterangan lama
	path := fmt.Sprintf("/api/transactions/%d", tx.ID)
	w := doJSON(t, router, "PATCH", path, tokenFor(t, f.admin), payload)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Transaction
	db.First(&updated, tx.ID)
	assert.Equal(t, "nominal tidak cocok dengan mutasi", updated.StatusReason)

	// Keterangan baru terhapus jika dikirim kosong secara eksplisit
	payload["status_reason"] = ""
	w = doJSON(t, router, "PATCH", path, tokenFor(t, f.admin), payload)
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&updated, tx.ID)
	assert.Equal(t, "", updated.StatusReason)
}

func TestValidateTransaction(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	tx := f.newTransaction(db, models.StatusPending)
	path := fmt.Sprintf("/api/transactions/%d/validate", tx.ID)

	w := doJSON(t, router, "POST", path, tokenFor(t, f.validator), map[string]string{
		"status": "valid",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var validated models.Transaction
	db.First(&validated, tx.ID)
	assert.Equal(t, models.StatusValid, validated.Status)
	assert.NotNil(t, validated.ValidatedAt)
	assert.NotNil(t, validated.ValidatedBy)
	assert.Equal(t, f.validator.ID, *validated.ValidatedBy)
}

func TestValidateTransactionRules(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	tx := f.newTransaction(db, models.StatusPending)
	path := fmt.Sprintf("/api/transactions/%d/validate", tx.ID)

	// Relawan tidak boleh memvalidasi
	w := doJSON(t, router, "POST", path, tokenFor(t, f.budi), map[string]string{
		"status": "valid",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// pending bukan status validasi yang sah
	w = doJSON(t, router, "POST", path, tokenFor(t, f.validator), map[string]string{
		"status": "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Status 'other' wajib membawa keterangan
	w = doJSON(t, router, "POST", path, tokenFor(t, f.validator), map[string]string{
		"status": "other",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := parseResponse(t, w)
	errors := response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "status_reason")

	w = doJSON(t, router, "POST", path, tokenFor(t, f.validator), map[string]string{
		"status":        "other",
		"status_reason": "nominal tidak cocok dengan mutasi",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateTransactionBranchScope(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	// Transaksi milik cabang Bandung
	tx := f.newTransaction(db, models.StatusPending)
	db.Model(&tx).Updates(map[string]interface{}{"branch_id": f.bandung.ID, "team_id": f.teamB.ID})

	path := fmt.Sprintf("/api/transactions/%d/validate", tx.ID)
	w := doJSON(t, router, "POST", path, tokenFor(t, f.branchUser), map[string]string{
		"status": "valid",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBulkUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	first := f.newTransaction(db, models.StatusPending)
	second := f.newTransaction(db, models.StatusPending)

	w := doJSON(t, router, "POST", "/api/transactions/bulk-update-status", tokenFor(t, f.validator),
		map[string]interface{}{
			"transaction_ids": []uint{first.ID, second.ID},
			"status":          "valid",
		})
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["updated_count"])

	// Jalur bulk tidak mencatat validated_at/validated_by
	var updated models.Transaction
	db.First(&updated, first.ID)
	assert.Equal(t, models.StatusValid, updated.Status)
	assert.Nil(t, updated.ValidatedAt)
	assert.Nil(t, updated.ValidatedBy)
}

func TestBulkUpdateStatusBranchScope(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	own := f.newTransaction(db, models.StatusPending)
	other := f.newTransaction(db, models.StatusPending)
	db.Model(&other).Updates(map[string]interface{}{"branch_id": f.bandung.ID, "team_id": f.teamB.ID})

	// Akun cabang hanya bisa mengubah transaksi cabangnya sendiri
	w := doJSON(t, router, "POST", "/api/transactions/bulk-update-status", tokenFor(t, f.branchUser),
		map[string]interface{}{
			"transaction_ids": []uint{own.ID, other.ID},
			"status":          "valid",
		})
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["updated_count"])

	var untouched models.Transaction
	db.First(&untouched, other.ID)
	assert.Equal(t, models.StatusPending, untouched.Status)
}

func TestGetAllTransactionsRoleScoping(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	mine := f.newTransaction(db, models.StatusPending)
	other := f.newTransaction(db, models.StatusPending)
	db.Model(&other).Updates(map[string]interface{}{
		"volunteer_id": f.admin.ID, "branch_id": f.bandung.ID, "team_id": f.teamB.ID,
	})

	// Relawan hanya melihat miliknya
	w := doJSON(t, router, "GET", "/api/transactions", tokenFor(t, f.budi), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	transactions := data["transactions"].([]interface{})
	assert.Len(t, transactions, 1)
	assert.Equal(t, float64(mine.ID), transactions[0].(map[string]interface{})["id"])

	// Akun cabang hanya melihat cabangnya
	w = doJSON(t, router, "GET", "/api/transactions", tokenFor(t, f.branchUser), nil)
	response = parseResponse(t, w)
	data = response["data"].(map[string]interface{})
	assert.Len(t, data["transactions"].([]interface{}), 1)

	// Admin melihat semua, dengan info pagination
	w = doJSON(t, router, "GET", "/api/transactions", tokenFor(t, f.admin), nil)
	response = parseResponse(t, w)
	data = response["data"].(map[string]interface{})
	assert.Len(t, data["transactions"].([]interface{}), 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, 2.0, pagination["total"])
	assert.Equal(t, 1.0, pagination["total_pages"])
}

func TestGetTransactionsRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	router := setupRouterForTest(db)

	w := doJSON(t, router, "GET", "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteTransaction(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	tx := f.newTransaction(db, models.StatusValid)
	path := fmt.Sprintf("/api/transactions/%d", tx.ID)

	// Relawan tidak boleh menghapus transaksi yang sudah tervalidasi
	w := doJSON(t, router, "DELETE", path, tokenFor(t, f.budi), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "DELETE", path, tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetMyStats(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	f.newTransaction(db, models.StatusValid)
	f.newTransaction(db, models.StatusPending)

	w := doJSON(t, router, "GET", "/api/transactions/my/stats", tokenFor(t, f.budi), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["total_transactions"])
	assert.Equal(t, 2000000.0, data["total_donation"])
	assert.Equal(t, 300000.0, data["volunteer_commission"])
	byStatus := data["by_status"].(map[string]interface{})
	assert.Equal(t, 1.0, byStatus["valid"])
	assert.Equal(t, 1.0, byStatus["pending"])
}
