package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/utils"
)

// Rate limiter harus terpasang sebelum registrasi route; kalau dipasang
// belakangan lewat r.Use di main, gin tidak akan pernah menjalankannya.
func TestSetupRouterAppliesRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:router_rate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	r := SetupRouter(db)

	limited := false
	for i := 0; i < 60; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, limited)
}
