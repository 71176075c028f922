package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanahberbagi/donation-app/models"
)

func TestGetDashboard(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	f.newTransaction(db, models.StatusValid)
	f.newTransaction(db, models.StatusPending)

	w := doJSON(t, router, "GET", "/api/dashboard?filter_type=all", tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["total_transactions"])
	assert.Equal(t, 2000000.0, data["total_donation"])

	byStatus := data["by_status"].(map[string]interface{})
	assert.Equal(t, 1.0, byStatus["valid"].(map[string]interface{})["count"])
	assert.Equal(t, 1.0, byStatus["pending"].(map[string]interface{})["count"])

	usersByRole := data["users_by_role"].(map[string]interface{})
	assert.Equal(t, 1.0, usersByRole["volunteer"])

	recent := data["recent_transactions"].([]interface{})
	assert.Len(t, recent, 2)
}

func TestDashboardForbiddenForVolunteer(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	w := doJSON(t, router, "GET", "/api/dashboard", tokenFor(t, f.budi), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBranchReportEndpoint(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	f.newTransaction(db, models.StatusValid)

	w := doJSON(t, router, "GET", "/api/reports/branches", tokenFor(t, f.validator), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	rows := response["data"].(map[string]interface{})["rows"].([]interface{})
	assert.Len(t, rows, 1)

	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Jakarta", row["name"])
	assert.Equal(t, 1000000.0, row["total_donation"])
	assert.Equal(t, 700000.0, row["branch_commission"])
}

func TestExportReport(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	router := setupRouterForTest(db)

	f.newTransaction(db, models.StatusValid)

	w := doJSON(t, router, "GET", "/api/reports/export?type=branches&date_preset=all",
		tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "laporan-cabang-semua.xlsx")
	assert.NotZero(t, w.Body.Len())

	w = doJSON(t, router, "GET", "/api/reports/export?type=unknown", tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
