package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
	"github.com/amanahberbagi/donation-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register user baru. Relawan dan akun cabang wajib terikat cabang;
// relawan juga wajib terikat tim.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"` // admin, validator, volunteer, branch
		BranchID *uint  `json:"branch_id"`
		TeamID   *uint  `json:"team_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fieldErrors := map[string]string{}
	if !models.IsValidRole(req.Role) {
		fieldErrors["role"] = "Role tidak dikenal"
	}
	if req.Role == models.RoleVolunteer || req.Role == models.RoleBranch {
		if req.BranchID == nil {
			fieldErrors["branch_id"] = "Cabang wajib diisi"
		} else if err := uc.DB.First(&models.Branch{}, *req.BranchID).Error; err != nil {
			fieldErrors["branch_id"] = "Cabang tidak ditemukan"
		}
	}
	if req.Role == models.RoleVolunteer {
		if req.TeamID == nil {
			fieldErrors["team_id"] = "Tim wajib diisi"
		} else if err := uc.DB.First(&models.Team{}, *req.TeamID).Error; err != nil {
			fieldErrors["team_id"] = "Tim tidak ditemukan"
		}
	}
	if len(fieldErrors) > 0 {
		utils.RespondValidationError(c, fieldErrors)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
		BranchID: req.BranchID,
		TeamID:   req.TeamID,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("User baru terdaftar: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
		"user_id":   user.ID,
		"branch_id": user.BranchID,
		"team_id":   user.TeamID,
	})
}

// Logout -> blacklist token sampai kadaluarsa
func (uc *UserController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" {
		utils.BlacklistToken(tokenString)
	}
	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}

// GetProfile -> data user dari JWT
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user tidak ditemukan di context"))
		return
	}

	var user models.User
	if err := uc.DB.Preload("Branch").Preload("Team").First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

// GetAllUsers -> khusus admin, bisa difilter per role/cabang
func (uc *UserController) GetAllUsers(c *gin.Context) {
	q := uc.DB.Preload("Branch").Preload("Team")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// UpdateUser -> admin mengubah data user
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("user_id"))

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	type request struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
		BranchID *uint   `json:"branch_id"`
		TeamID   *uint   `json:"team_id"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			utils.RespondValidationError(c, map[string]string{"role": "Role tidak dikenal"})
			return
		}
		user.Role = *req.Role
	}
	if req.BranchID != nil {
		if err := uc.DB.First(&models.Branch{}, *req.BranchID).Error; err != nil {
			utils.RespondValidationError(c, map[string]string{"branch_id": "Cabang tidak ditemukan"})
			return
		}
		user.BranchID = req.BranchID
	}
	if req.TeamID != nil {
		if err := uc.DB.First(&models.Team{}, *req.TeamID).Error; err != nil {
			utils.RespondValidationError(c, map[string]string{"team_id": "Tim tidak ditemukan"})
			return
		}
		user.TeamID = req.TeamID
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondInternalError(c, err)
			return
		}
		user.Password = string(hashed)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

// DeleteUser -> admin menghapus user yang tidak punya transaksi
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("user_id"))

	var count int64
	uc.DB.Model(&models.Transaction{}).Where("volunteer_id = ?", id).Count(&count)
	if count > 0 {
		utils.RespondValidationError(c, map[string]string{
			"user_id": "User masih memiliki transaksi dan tidak dapat dihapus",
		})
		return
	}

	if err := uc.DB.Delete(&models.User{}, id).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": id})
}
