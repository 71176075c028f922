package services

import (
	"github.com/amanahberbagi/donation-app/models"
)

// Commission adalah hasil perhitungan komisi satu transaksi.
type Commission struct {
	Volunteer float64 `json:"volunteer_commission"`
	Branch    float64 `json:"branch_commission"`
}

// CalculateCommission menghitung komisi relawan dan cabang dari satu
// transaksi. Perhitungan hanya membaca kolom snapshot rate pada transaksi,
// tidak pernah membaca ulang rate Program, supaya perubahan rate program
// tidak mengubah transaksi lama.
//
//   - ZISWAF: basis = amount, rate memakai ziswaf_*_rate bila terisi,
//     jika tidak memakai snapshot rate utama.
//   - QURBAN dengan program ziswaf tambahan: komponen qurban
//     (qurban_amount x rate utama) dijumlahkan dengan komponen ziswaf
//     (amount x ziswaf_rate).
//   - QURBAN tanpa program ziswaf: basis = qurban_amount, rate utama.
//
// Tidak ada pembulatan di sini; pembulatan hanya terjadi saat formatting
// mata uang untuk tampilan/ekspor.
func CalculateCommission(t models.Transaction) Commission {
	switch t.ProgramType {
	case models.ProgramTypeQurban:
		if t.ZiswafProgramID != nil {
			return Commission{
				Volunteer: t.QurbanAmount*t.VolunteerRate/100 + t.Amount*rateOrZero(t.ZiswafVolunteerRate)/100,
				Branch:    t.QurbanAmount*t.BranchRate/100 + t.Amount*rateOrZero(t.ZiswafBranchRate)/100,
			}
		}
		return Commission{
			Volunteer: t.QurbanAmount * t.VolunteerRate / 100,
			Branch:    t.QurbanAmount * t.BranchRate / 100,
		}
	default: // ZISWAF
		volunteerRate := t.VolunteerRate
		if t.ZiswafVolunteerRate != nil {
			volunteerRate = *t.ZiswafVolunteerRate
		}
		branchRate := t.BranchRate
		if t.ZiswafBranchRate != nil {
			branchRate = *t.ZiswafBranchRate
		}
		return Commission{
			Volunteer: t.Amount * volunteerRate / 100,
			Branch:    t.Amount * branchRate / 100,
		}
	}
}

// TotalDonation adalah total donasi satu transaksi untuk laporan:
// amount + qurban_amount, apapun tipe programnya.
func TotalDonation(t models.Transaction) float64 {
	return t.Amount + t.QurbanAmount
}

func rateOrZero(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return *rate
}
