package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

type ProgramController struct {
	DB *gorm.DB
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db}
}

func (pc *ProgramController) GetAllPrograms(c *gin.Context) {
	q := pc.DB.Order("name")
	if programType := strings.ToUpper(c.Query("type")); programType != "" {
		q = q.Where("type = ?", programType)
	}

	var programs []models.Program
	if err := q.Find(&programs).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of programs", programs)
}

func (pc *ProgramController) GetProgramByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("program_id"))

	var program models.Program
	if err := pc.DB.First(&program, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("program tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Program detail", program)
}

func (pc *ProgramController) CreateProgram(c *gin.Context) {
	type request struct {
		Type          string  `json:"type" binding:"required"`
		Name          string  `json:"name" binding:"required"`
		Code          string  `json:"code" binding:"required"`
		Description   string  `json:"description"`
		VolunteerRate float64 `json:"volunteer_rate"`
		BranchRate    float64 `json:"branch_rate"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrors := validateProgramInput(strings.ToUpper(req.Type), req.VolunteerRate, req.BranchRate)
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	program := models.Program{
		Type:          strings.ToUpper(req.Type),
		Name:          req.Name,
		Code:          req.Code,
		Description:   req.Description,
		VolunteerRate: req.VolunteerRate,
		BranchRate:    req.BranchRate,
	}
	if err := pc.DB.Create(&program).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Program created", program)
}

// UpdateProgram mengubah data program. Perubahan rate hanya berlaku untuk
// transaksi yang dibuat sesudahnya; snapshot rate transaksi lama tidak ikut
// berubah.
func (pc *ProgramController) UpdateProgram(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("program_id"))

	var program models.Program
	if err := pc.DB.First(&program, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("program tidak ditemukan"))
		return
	}

	type request struct {
		Name          *string  `json:"name"`
		Code          *string  `json:"code"`
		Description   *string  `json:"description"`
		VolunteerRate *float64 `json:"volunteer_rate"`
		BranchRate    *float64 `json:"branch_rate"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Code != nil {
		program.Code = *req.Code
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.VolunteerRate != nil {
		program.VolunteerRate = *req.VolunteerRate
	}
	if req.BranchRate != nil {
		program.BranchRate = *req.BranchRate
	}

	fieldErrors := validateProgramInput(program.Type, program.VolunteerRate, program.BranchRate)
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	if err := pc.DB.Save(&program).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Program updated", program)
}

func (pc *ProgramController) DeleteProgram(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("program_id"))

	var count int64
	pc.DB.Model(&models.Transaction{}).
		Where("program_id = ? OR ziswaf_program_id = ?", id, id).
		Count(&count)
	if count > 0 {
		utils.RespondValidationError(c, map[string]string{
			"program_id": "Program masih memiliki transaksi dan tidak dapat dihapus",
		})
		return
	}

	if err := pc.DB.Delete(&models.Program{}, id).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Program deleted", gin.H{"program_id": id})
}

func validateProgramInput(programType string, volunteerRate, branchRate float64) map[string]string {
	fieldErrors := map[string]string{}
	if !models.IsValidProgramType(programType) {
		fieldErrors["type"] = "Tipe program harus ZISWAF atau QURBAN"
	}
	if volunteerRate < 0 || volunteerRate > 100 {
		fieldErrors["volunteer_rate"] = "Rate relawan harus di antara 0 dan 100"
	}
	if branchRate < 0 || branchRate > 100 {
		fieldErrors["branch_rate"] = "Rate cabang harus di antara 0 dan 100"
	}
	return fieldErrors
}
