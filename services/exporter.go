package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/amanahberbagi/donation-app/utils"
)

// ExportFilename menurunkan nama file ekspor dari tab laporan aktif dan
// label rentang tanggal, mis. "laporan-cabang-2025-08.xlsx".
func ExportFilename(tab string, w DateWindow) string {
	return fmt.Sprintf("laporan-%s-%s.xlsx", tab, w.Label)
}

// BuildReportWorkbook menyusun workbook laporan: blok ringkasan di atas,
// lalu tabel detail per baris laporan.
func BuildReportWorkbook(title string, w DateWindow, rows []ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Laporan"
	f.SetSheetName("Sheet1", sheet)

	var totalDonation, totalVolunteer, totalBranch float64
	var totalCount int64
	for _, row := range rows {
		totalDonation += row.TotalDonation
		totalVolunteer += row.VolunteerCommission
		totalBranch += row.BranchCommission
		totalCount += row.TransactionCount
	}

	period := "Semua periode"
	if w.Start != nil && w.End != nil {
		period = fmt.Sprintf("%s s.d. %s",
			w.Start.Format("02/01/2006"),
			w.End.AddDate(0, 0, -1).Format("02/01/2006"))
	}

	// Blok ringkasan
	summary := [][]interface{}{
		{title},
		{"Periode", period},
		{"Jumlah Transaksi", totalCount},
		{"Total Donasi", utils.FormatCurrencyIDR(totalDonation)},
		{"Total Komisi Relawan", utils.FormatCurrencyIDR(totalVolunteer)},
		{"Total Komisi Cabang", utils.FormatCurrencyIDR(totalBranch)},
	}
	for i, cells := range summary {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &cells); err != nil {
			return nil, err
		}
	}

	// Tabel detail
	headerRow := len(summary) + 2
	header := []interface{}{
		"No", "Nama", "Jumlah Transaksi", "Total Donasi",
		"Komisi Relawan", "Komisi Cabang",
		"Pending", "Valid", "Double Duta", "Double Input", "Tidak Ada di Rekening", "Lainnya",
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow), &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := []interface{}{
			i + 1,
			row.Name,
			row.TransactionCount,
			row.TotalDonation,
			row.VolunteerCommission,
			row.BranchCommission,
			row.Statuses.Pending,
			row.Statuses.Valid,
			row.Statuses.DoubleDuta,
			row.Statuses.DoubleInput,
			row.Statuses.NotInAccount,
			row.Statuses.Other,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow+1+i), &cells); err != nil {
			return nil, err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheet, "A1", "A1", style)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("L%d", headerRow), style)
	}
	f.SetColWidth(sheet, "B", "F", 22)

	return f, nil
}
