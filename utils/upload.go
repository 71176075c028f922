package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxProofImageSize adalah batas ukuran bukti transfer (5MB).
const MaxProofImageSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateProofImage memeriksa tipe dan ukuran file bukti transfer.
func ValidateProofImage(file *multipart.FileHeader) error {
	if file.Size > MaxProofImageSize {
		return errors.New("ukuran bukti transfer maksimal 5MB")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return errors.New("bukti transfer harus berupa gambar (jpg, jpeg, png, gif, webp)")
	}
	return nil
}

// SaveProofImage menyimpan file ke uploadDir dengan nama acak dan
// mengembalikan path relatif yang dicatat di transaksi.
func SaveProofImage(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return fmt.Sprintf("uploads/proof_images/%s", filename), nil
}

// DeleteProofImage menghapus file bukti transfer lama. Path yang kosong atau
// file yang sudah tidak ada bukan error.
func DeleteProofImage(relPath string) {
	if relPath == "" {
		return
	}
	localPath := filepath.Join("public", filepath.FromSlash(relPath))
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		if ErrorLogger != nil {
			ErrorLogger.Printf("Gagal menghapus bukti transfer %s: %v", localPath, err)
		}
	}
}
