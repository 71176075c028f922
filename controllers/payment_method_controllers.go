package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

type PaymentMethodController struct {
	DB *gorm.DB
}

func NewPaymentMethodController(db *gorm.DB) *PaymentMethodController {
	return &PaymentMethodController{DB: db}
}

func (pc *PaymentMethodController) GetAllPaymentMethods(c *gin.Context) {
	q := pc.DB.Order("name")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var methods []models.PaymentMethod
	if err := q.Find(&methods).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payment methods", methods)
}

func (pc *PaymentMethodController) CreatePaymentMethod(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	method := models.PaymentMethod{Name: req.Name, Description: req.Description, IsActive: true}
	if err := pc.DB.Create(&method).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment method created", method)
}

func (pc *PaymentMethodController) UpdatePaymentMethod(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("method_id"))

	var method models.PaymentMethod
	if err := pc.DB.First(&method, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("metode pembayaran tidak ditemukan"))
		return
	}

	type request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		method.Name = *req.Name
	}
	if req.Description != nil {
		method.Description = *req.Description
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&method).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment method updated", method)
}

func (pc *PaymentMethodController) DeletePaymentMethod(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("method_id"))

	var count int64
	pc.DB.Model(&models.Transaction{}).Where("payment_method_id = ?", id).Count(&count)
	if count > 0 {
		utils.RespondValidationError(c, map[string]string{
			"payment_method_id": "Metode pembayaran masih dipakai transaksi dan tidak dapat dihapus",
		})
		return
	}

	if err := pc.DB.Delete(&models.PaymentMethod{}, id).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment method deleted", gin.H{"method_id": id})
}
