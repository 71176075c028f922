package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/amanahberbagi/donation-app/models"
)

// MaxImportRows membatasi jumlah baris data satu file impor.
const MaxImportRows = 1000

const importSheet = "Transaksi"

// ImportColumns adalah template kolom impor transaksi (urutan tetap).
var ImportColumns = []string{
	"Nama Donatur",
	"Tipe Program",
	"Program",
	"Nominal",
	"Nominal Qurban",
	"Nama Pequrban",
	"Program Ziswaf",
	"Cabang",
	"Tim",
	"Relawan",
	"Metode Pembayaran",
	"Tanggal Transaksi",
	"Keterangan",
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult melaporkan hasil impor per baris: baris yang gagal validasi
// dicatat di Errors, baris valid tetap diproses (partial success).
type ImportResult struct {
	Success int        `json:"success"`
	Errors  []RowError `json:"errors"`
}

// importLookup menampung data referensi untuk pencocokan nama
// case-insensitive selama impor.
type importLookup struct {
	programs       []models.Program
	branches       []models.Branch
	teams          []models.Team
	volunteers     []models.User
	paymentMethods []models.PaymentMethod
}

func loadImportLookup(db *gorm.DB) (*importLookup, error) {
	l := &importLookup{}
	if err := db.Find(&l.programs).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&l.branches).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&l.teams).Error; err != nil {
		return nil, err
	}
	if err := db.Where("role = ?", models.RoleVolunteer).Find(&l.volunteers).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&l.paymentMethods).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (l *importLookup) program(name, programType string) *models.Program {
	for i := range l.programs {
		p := &l.programs[i]
		if p.Type != programType {
			continue
		}
		if strings.EqualFold(p.Code, name) || strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

func (l *importLookup) branch(name string) *models.Branch {
	for i := range l.branches {
		if strings.EqualFold(l.branches[i].Name, name) {
			return &l.branches[i]
		}
	}
	return nil
}

func (l *importLookup) team(name string, branchID uint) *models.Team {
	for i := range l.teams {
		if l.teams[i].BranchID == branchID && strings.EqualFold(l.teams[i].Name, name) {
			return &l.teams[i]
		}
	}
	return nil
}

func (l *importLookup) volunteer(name string) *models.User {
	for i := range l.volunteers {
		u := &l.volunteers[i]
		if strings.EqualFold(u.Name, name) || strings.EqualFold(u.Email, name) {
			return u
		}
	}
	return nil
}

func (l *importLookup) paymentMethod(name string) *models.PaymentMethod {
	for i := range l.paymentMethods {
		if strings.EqualFold(l.paymentMethods[i].Name, name) {
			return &l.paymentMethods[i]
		}
	}
	return nil
}

// ImportTransactions memvalidasi tiap baris secara independen lalu menyimpan
// hanya baris yang lolos. Baris gagal dicatat dengan nomor barisnya; impor
// tidak berhenti di error pertama.
func ImportTransactions(db *gorm.DB, f *excelize.File) (ImportResult, error) {
	sheet := importSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) <= 1 {
		return ImportResult{}, errors.New("file tidak berisi baris data")
	}
	if len(rows)-1 > MaxImportRows {
		return ImportResult{}, fmt.Errorf("maksimal %d baris per impor", MaxImportRows)
	}

	lookup, err := loadImportLookup(db)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: []RowError{}}
	for i, cells := range rows[1:] {
		rowNum := i + 2 // baris 1 adalah header
		if isEmptyRow(cells) {
			continue
		}

		tx, rowErr := parseImportRow(cells, lookup)
		if rowErr != "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: rowErr})
			continue
		}

		if err := db.Create(tx).Error; err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: "Gagal menyimpan baris"})
			continue
		}
		result.Success++
	}
	return result, nil
}

func parseImportRow(cells []string, lookup *importLookup) (*models.Transaction, string) {
	cell := func(idx int) string {
		if idx < len(cells) {
			return strings.TrimSpace(cells[idx])
		}
		return ""
	}

	donorName := cell(0)
	programType := strings.ToUpper(cell(1))
	programName := cell(2)
	amountStr := cell(3)
	qurbanAmountStr := cell(4)
	qurbanOwner := cell(5)
	ziswafProgramName := cell(6)
	branchName := cell(7)
	teamName := cell(8)
	volunteerName := cell(9)
	methodName := cell(10)
	dateStr := cell(11)
	note := cell(12)

	if donorName == "" || programType == "" || programName == "" ||
		branchName == "" || teamName == "" || volunteerName == "" ||
		methodName == "" || dateStr == "" {
		return nil, "Kolom wajib tidak boleh kosong"
	}

	if !models.IsValidProgramType(programType) {
		return nil, "Tipe program harus ZISWAF atau QURBAN"
	}

	tx := &models.Transaction{
		DonorName:    donorName,
		ProgramType:  programType,
		Status:       models.StatusPending,
		StatusReason: note,
	}

	if programType == models.ProgramTypeQurban {
		if qurbanAmountStr == "" || qurbanOwner == "" {
			return nil, "Kolom wajib tidak boleh kosong"
		}
		qurbanAmount, err := parseAmount(qurbanAmountStr)
		if err != nil {
			return nil, "Nominal qurban harus berupa angka"
		}
		tx.QurbanAmount = qurbanAmount
		tx.QurbanOwnerName = qurbanOwner
	}

	// Nominal wajib untuk ZISWAF, dan untuk QURBAN yang membawa program
	// ziswaf tambahan
	if programType == models.ProgramTypeZiswaf ||
		(programType == models.ProgramTypeQurban && ziswafProgramName != "") {
		if amountStr == "" {
			return nil, "Kolom wajib tidak boleh kosong"
		}
	}
	if amountStr != "" {
		amount, err := parseAmount(amountStr)
		if err != nil {
			return nil, "Nominal harus berupa angka"
		}
		tx.Amount = amount
	}

	program := lookup.program(programName, programType)
	if program == nil {
		return nil, fmt.Sprintf("Program '%s' tidak ditemukan", programName)
	}
	tx.ProgramID = program.ID
	tx.VolunteerRate = program.VolunteerRate
	tx.BranchRate = program.BranchRate

	if ziswafProgramName != "" {
		if programType != models.ProgramTypeQurban {
			return nil, "Program ziswaf tambahan hanya berlaku untuk transaksi QURBAN"
		}
		ziswafProgram := lookup.program(ziswafProgramName, models.ProgramTypeZiswaf)
		if ziswafProgram == nil {
			return nil, fmt.Sprintf("Program ziswaf '%s' tidak ditemukan", ziswafProgramName)
		}
		tx.ZiswafProgramID = &ziswafProgram.ID
		volunteerRate := ziswafProgram.VolunteerRate
		branchRate := ziswafProgram.BranchRate
		tx.ZiswafVolunteerRate = &volunteerRate
		tx.ZiswafBranchRate = &branchRate
	}

	branch := lookup.branch(branchName)
	if branch == nil {
		return nil, fmt.Sprintf("Cabang '%s' tidak ditemukan", branchName)
	}
	tx.BranchID = branch.ID

	team := lookup.team(teamName, branch.ID)
	if team == nil {
		return nil, fmt.Sprintf("Tim '%s' tidak ditemukan di cabang '%s'", teamName, branchName)
	}
	tx.TeamID = team.ID

	volunteer := lookup.volunteer(volunteerName)
	if volunteer == nil {
		return nil, fmt.Sprintf("Relawan '%s' tidak ditemukan", volunteerName)
	}
	tx.VolunteerID = volunteer.ID

	method := lookup.paymentMethod(methodName)
	if method == nil {
		return nil, fmt.Sprintf("Metode pembayaran '%s' tidak ditemukan", methodName)
	}
	tx.PaymentMethodID = method.ID

	txDate, err := parseImportDate(dateStr)
	if err != nil {
		return nil, "Format tanggal tidak valid (DD/MM/YYYY atau DD/MM/YYYY HH:MM:SS)"
	}
	tx.TransactionDate = txDate

	return tx, ""
}

func parseAmount(s string) (float64, error) {
	// Toleransi format "1.500.000" / "1500000,50" dari spreadsheet
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return 0, errors.New("nominal tidak valid")
	}
	return amount, nil
}

func parseImportDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("02/01/2006 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("02/01/2006", s, time.Local)
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// BuildImportTemplate membuat workbook template impor: sheet data dengan
// header kolom tetap plus sheet petunjuk pengisian.
func BuildImportTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", importSheet)

	header := make([]interface{}, len(ImportColumns))
	for i, col := range ImportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(importSheet, "A1", &header); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(importSheet, "A1", "M1", style)
	}
	f.SetColWidth(importSheet, "A", "M", 22)

	if _, err := f.NewSheet("Petunjuk"); err != nil {
		return nil, err
	}
	instructions := []string{
		"Petunjuk pengisian template impor transaksi:",
		"1. Maksimal 1000 baris data per file.",
		"2. Tipe Program diisi ZISWAF atau QURBAN.",
		"3. Program diisi kode atau nama program (tidak peka huruf besar/kecil).",
		"4. Nominal wajib untuk ZISWAF, dan untuk QURBAN yang membawa Program Ziswaf.",
		"5. Nominal Qurban dan Nama Pequrban wajib untuk QURBAN.",
		"6. Program Ziswaf hanya boleh diisi pada baris QURBAN.",
		"7. Cabang, Tim, Relawan, dan Metode Pembayaran dicocokkan berdasarkan nama.",
		"8. Tanggal Transaksi dalam format DD/MM/YYYY atau DD/MM/YYYY HH:MM:SS.",
		"9. Baris yang gagal validasi dilewati; baris lain tetap diimpor.",
	}
	for i, line := range instructions {
		f.SetCellValue("Petunjuk", fmt.Sprintf("A%d", i+1), line)
	}
	f.SetColWidth("Petunjuk", "A", "A", 90)

	return f, nil
}
