package Controllers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

// transactionForm mengembalikan field multipart minimal untuk membuat
// transaksi ZISWAF yang valid.
func transactionForm(f fixture) map[string]string {
	return map[string]string{
		"donor_name":        "Siti Aminah",
		"program_type":      "ZISWAF",
		"program_id":        fmt.Sprintf("%d", f.zakat.ID),
		"amount":            "1000000",
		"branch_id":         fmt.Sprintf("%d", f.jakarta.ID),
		"team_id":           fmt.Sprintf("%d", f.teamA.ID),
		"volunteer_id":      fmt.Sprintf("%d", f.budi.ID),
		"payment_method_id": fmt.Sprintf("%d", f.transfer.ID),
		"transaction_date":  "2025-01-10",
	}
}

func TestCreateTransactionRejectsOversizeProofImage(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	oversize := bytes.Repeat([]byte("a"), utils.MaxProofImageSize+1)
	w := doMultipart(t, router, "POST", "/api/transactions", tokenFor(t, f.admin),
		transactionForm(f), "proof_image", "bukti.jpg", oversize)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	response := parseResponse(t, w)
	errors := response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "proof_image")
	assert.Contains(t, errors["proof_image"], "5MB")

	// Transaksi tidak boleh ikut tersimpan
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTransactionRejectsNonImageProof(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	w := doMultipart(t, router, "POST", "/api/transactions", tokenFor(t, f.admin),
		transactionForm(f), "proof_image", "bukti.txt", []byte("bukan gambar"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	response := parseResponse(t, w)
	errors := response["data"].(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errors, "proof_image")
}

func TestUpdateTransactionReplacesProofImage(t *testing.T) {
	chdirTemp(t)

	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)
	adminToken := tokenFor(t, f.admin)

	// Buat transaksi dengan bukti transfer pertama
	w := doMultipart(t, router, "POST", "/api/transactions", adminToken,
		transactionForm(f), "proof_image", "bukti-lama.png", []byte("gambar lama"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var tx models.Transaction
	db.First(&tx)
	if tx.ProofImage == nil {
		t.Fatal("proof image not recorded on create")
	}
	oldPath := filepath.Join("public", filepath.FromSlash(*tx.ProofImage))
	_, err := os.Stat(oldPath)
	assert.NoError(t, err, "uploaded file should exist on disk")

	// Upload bukti baru: file lama harus ikut terhapus
	path := fmt.Sprintf("/api/transactions/%d", tx.ID)
	w = doMultipart(t, router, "PATCH", path, adminToken,
		transactionForm(f), "proof_image", "bukti-baru.jpg", []byte("gambar baru"))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Transaction
	db.First(&updated, tx.ID)
	if updated.ProofImage == nil {
		t.Fatal("proof image not recorded on update")
	}
	assert.NotEqual(t, *tx.ProofImage, *updated.ProofImage)

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err), "old proof image should be deleted")

	newPath := filepath.Join("public", filepath.FromSlash(*updated.ProofImage))
	_, err = os.Stat(newPath)
	assert.NoError(t, err, "new proof image should exist on disk")
}
