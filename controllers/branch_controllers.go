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

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

func (bc *BranchController) GetAllBranches(c *gin.Context) {
	var branches []models.Branch
	if err := bc.DB.Order("name").Find(&branches).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of branches", branches)
}

func (bc *BranchController) GetBranchByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("branch_id"))

	var branch models.Branch
	if err := bc.DB.First(&branch, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cabang tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch detail", branch)
}

func (bc *BranchController) CreateBranch(c *gin.Context) {
	type request struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	branch := models.Branch{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := bc.DB.Create(&branch).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

func (bc *BranchController) UpdateBranch(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("branch_id"))

	var branch models.Branch
	if err := bc.DB.First(&branch, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cabang tidak ditemukan"))
		return
	}

	type request struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}

	if err := bc.DB.Save(&branch).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch updated", branch)
}

func (bc *BranchController) DeleteBranch(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("branch_id"))

	var count int64
	bc.DB.Model(&models.Transaction{}).Where("branch_id = ?", id).Count(&count)
	if count > 0 {
		utils.RespondValidationError(c, map[string]string{
			"branch_id": "Cabang masih memiliki transaksi dan tidak dapat dihapus",
		})
		return
	}

	if err := bc.DB.Delete(&models.Branch{}, id).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch deleted", gin.H{"branch_id": id})
}
