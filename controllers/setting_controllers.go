package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

// GetSettings mengambil pengaturan aplikasi. Klien mengambil sekali per sesi;
// tidak ada state pengaturan global di server.
func (sc *SettingController) GetSettings(c *gin.Context) {
	var setting models.AppSetting
	if err := sc.DB.First(&setting).Error; err != nil {
		// Belum ada baris pengaturan: kembalikan default
		setting = models.AppSetting{AppName: "Amanah Berbagi", Theme: "light"}
	}
	utils.RespondJSON(c, http.StatusOK, "App settings", setting)
}

// UpdateSettings -> admin mengubah pengaturan aplikasi
func (sc *SettingController) UpdateSettings(c *gin.Context) {
	type request struct {
		AppName *string `json:"app_name"`
		Theme   *string `json:"theme"`
		LogoURL *string `json:"logo_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var setting models.AppSetting
	if err := sc.DB.First(&setting).Error; err != nil {
		setting = models.AppSetting{AppName: "Amanah Berbagi", Theme: "light"}
	}

	if req.AppName != nil {
		setting.AppName = *req.AppName
	}
	if req.Theme != nil {
		setting.Theme = *req.Theme
	}
	if req.LogoURL != nil {
		setting.LogoURL = *req.LogoURL
	}

	if err := sc.DB.Save(&setting).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settings updated", setting)
}
