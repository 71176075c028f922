package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
)

// StatusBuckets memecah jumlah transaksi per status validasi.
type StatusBuckets struct {
	Pending      int64 `json:"pending"`
	Valid        int64 `json:"valid"`
	DoubleDuta   int64 `json:"double_duta"`
	DoubleInput  int64 `json:"double_input"`
	NotInAccount int64 `json:"not_in_account"`
	Other        int64 `json:"other"`
}

func (b *StatusBuckets) add(status string) {
	switch status {
	case models.StatusPending:
		b.Pending++
	case models.StatusValid:
		b.Valid++
	case models.StatusDoubleDuta:
		b.DoubleDuta++
	case models.StatusDoubleInput:
		b.DoubleInput++
	case models.StatusNotInAccount:
		b.NotInAccount++
	case models.StatusOther:
		b.Other++
	}
}

// ReportRow adalah satu baris laporan kinerja (per cabang atau per relawan).
type ReportRow struct {
	ID                  uint          `json:"id"`
	Name                string        `json:"name"`
	TransactionCount    int64         `json:"transaction_count"`
	TotalDonation       float64       `json:"total_donation"`
	VolunteerCommission float64       `json:"volunteer_commission"`
	BranchCommission    float64       `json:"branch_commission"`
	Statuses            StatusBuckets `json:"statuses"`
}

// ApplyWindow membatasi query transaksi ke rentang tanggal transaksi.
func ApplyWindow(q *gorm.DB, w DateWindow) *gorm.DB {
	if w.Start != nil {
		q = q.Where("transaction_date >= ?", *w.Start)
	}
	if w.End != nil {
		q = q.Where("transaction_date < ?", *w.End)
	}
	return q
}

// BranchReport menghitung rollup per cabang: total donasi, total komisi
// (jumlah berbobot rate snapshot per transaksi), dan jumlah transaksi per
// status. Diurutkan menurun berdasarkan total donasi.
func BranchReport(db *gorm.DB, w DateWindow) ([]ReportRow, error) {
	return buildReport(db, w, func(t models.Transaction) (uint, string) {
		name := t.Branch.Name
		if name == "" {
			name = "Unknown"
		}
		return t.BranchID, name
	})
}

// VolunteerReport menghitung rollup per relawan.
func VolunteerReport(db *gorm.DB, w DateWindow) ([]ReportRow, error) {
	return buildReport(db, w, func(t models.Transaction) (uint, string) {
		name := t.Volunteer.Name
		if name == "" {
			name = "Unknown"
		}
		return t.VolunteerID, name
	})
}

// BranchDetailReport adalah rollup relawan di dalam satu cabang.
func BranchDetailReport(db *gorm.DB, branchID uint, w DateWindow) ([]ReportRow, error) {
	scoped := db.Where("branch_id = ?", branchID)
	return VolunteerReport(scoped, w)
}

func buildReport(db *gorm.DB, w DateWindow, keyFn func(models.Transaction) (uint, string)) ([]ReportRow, error) {
	var transactions []models.Transaction
	q := ApplyWindow(db.Model(&models.Transaction{}), w).
		Preload("Branch").
		Preload("Volunteer")
	if err := q.Find(&transactions).Error; err != nil {
		return nil, err
	}

	byKey := make(map[uint]*ReportRow)
	for _, t := range transactions {
		id, name := keyFn(t)
		row, ok := byKey[id]
		if !ok {
			row = &ReportRow{ID: id, Name: name}
			byKey[id] = row
		}

		commission := CalculateCommission(t)
		row.TransactionCount++
		row.TotalDonation += TotalDonation(t)
		row.VolunteerCommission += commission.Volunteer
		row.BranchCommission += commission.Branch
		row.Statuses.add(t.Status)
	}

	rows := make([]ReportRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalDonation != rows[j].TotalDonation {
			return rows[i].TotalDonation > rows[j].TotalDonation
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}
