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

type TeamController struct {
	DB *gorm.DB
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{DB: db}
}

func (tc *TeamController) GetAllTeams(c *gin.Context) {
	q := tc.DB.Preload("Branch")
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var teams []models.Team
	if err := q.Order("name").Find(&teams).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of teams", teams)
}

func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("team_id"))

	var team models.Team
	if err := tc.DB.Preload("Branch").First(&team, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("tim tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Team detail", team)
}

func (tc *TeamController) CreateTeam(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		BranchID uint   `json:"branch_id" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.First(&models.Branch{}, req.BranchID).Error; err != nil {
		utils.RespondValidationError(c, map[string]string{"branch_id": "Cabang tidak ditemukan"})
		return
	}

	team := models.Team{Name: req.Name, BranchID: req.BranchID}
	if err := tc.DB.Create(&team).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Team created", team)
}

func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("team_id"))

	var team models.Team
	if err := tc.DB.First(&team, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("tim tidak ditemukan"))
		return
	}

	type request struct {
		Name     *string `json:"name"`
		BranchID *uint   `json:"branch_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.BranchID != nil {
		if err := tc.DB.First(&models.Branch{}, *req.BranchID).Error; err != nil {
			utils.RespondValidationError(c, map[string]string{"branch_id": "Cabang tidak ditemukan"})
			return
		}
		team.BranchID = *req.BranchID
	}

	if err := tc.DB.Save(&team).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Team updated", team)
}

func (tc *TeamController) DeleteTeam(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("team_id"))

	var count int64
	tc.DB.Model(&models.Transaction{}).Where("team_id = ?", id).Count(&count)
	if count > 0 {
		utils.RespondValidationError(c, map[string]string{
			"team_id": "Tim masih memiliki transaksi dan tidak dapat dihapus",
		})
		return
	}

	if err := tc.DB.Delete(&models.Team{}, id).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Team deleted", gin.H{"team_id": id})
}
