package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyIDR memformat nominal ke format Rupiah.
// Contoh: 1500000 -> "Rp 1.500.000", 15000.50 -> "Rp 15.000,50"
func FormatCurrencyIDR(amount float64) string {
	// Bulatkan dulu ke 2 desimal supaya pembulatan sen bisa ikut menaikkan
	// bagian bulat (1,999 -> 2,00)
	totalCents := int64(math.Round(amount * 100))
	integer := totalCents / 100
	cents := totalCents % 100

	integerStr := fmt.Sprintf("%d", integer)

	// Sisipkan pemisah ribuan
	var parts []string
	for i := len(integerStr); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{integerStr[start:i]}, parts...)
	}
	formatted := strings.Join(parts, ".")

	if cents > 0 {
		return fmt.Sprintf("Rp %s,%02d", formatted, cents)
	}
	return fmt.Sprintf("Rp %s", formatted)
}
