package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondValidationError mengembalikan 422 dengan pesan per-field.
func RespondValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, JSONResponse{
		Status:  false,
		Message: "Validasi gagal",
		Data:    gin.H{"errors": fields},
	})
}

// RespondInternalError mencatat error asli ke log server dan mengembalikan
// pesan generik ke klien. Detail error tidak boleh bocor ke response body.
func RespondInternalError(c *gin.Context, err error) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(http.StatusInternalServerError, JSONResponse{
		Status:  false,
		Message: "Terjadi kesalahan pada server",
		Data:    nil,
	})
}
