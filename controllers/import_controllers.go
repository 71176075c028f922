package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/services"
	"github.com/amanahberbagi/donation-app/utils"
)

type ImportController struct {
	DB *gorm.DB
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{DB: db}
}

// DownloadTemplate mengunduh template impor transaksi beserta sheet petunjuk.
func (ic *ImportController) DownloadTemplate(c *gin.Context) {
	workbook, err := services.BuildImportTemplate()
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="template-impor-transaksi.xlsx"`)
	if err := workbook.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Gagal menulis template impor: %v", err)
	}
}

// ImportTransactions menerima file xlsx, memvalidasi tiap baris secara
// independen, dan menyimpan baris yang valid. Baris gagal dilaporkan per
// nomor baris; impor sebagian adalah hasil yang normal.
func (ic *ImportController) ImportTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file impor wajib diunggah"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file impor tidak dapat dibaca"))
		return
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file harus berupa workbook xlsx"))
		return
	}
	defer workbook.Close()

	result, err := services.ImportTransactions(ic.DB, workbook)
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	utils.InfoLogger.Printf("Impor transaksi selesai: %d berhasil, %d gagal",
		result.Success, len(result.Errors))

	utils.RespondJSON(c, http.StatusOK, "Import finished", result)
}
