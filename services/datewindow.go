package services

import (
	"errors"
	"fmt"
	"time"
)

const (
	FilterCurrentMonth = "current_month"
	FilterOneMonthAgo  = "one_month_ago"
	FilterTwoMonthsAgo = "two_months_ago"
	FilterAll          = "all"
	FilterDateRange    = "date_range"
)

// DateWindow adalah rentang [Start, End) hasil resolusi filter tanggal.
// Start/End nil berarti tanpa batas (filter "all").
type DateWindow struct {
	Start *time.Time
	End   *time.Time
	Label string
}

// ResolveDateWindow menerjemahkan filter_type (+ start_date/end_date untuk
// date_range, format 2006-01-02) menjadi rentang waktu konkret. Label dipakai
// untuk nama file ekspor.
func ResolveDateWindow(filterType, startDate, endDate string, now time.Time) (DateWindow, error) {
	monthStart := func(offset int) time.Time {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)
	}

	switch filterType {
	case FilterCurrentMonth, "":
		start := monthStart(0)
		end := monthStart(1)
		return DateWindow{Start: &start, End: &end, Label: start.Format("2006-01")}, nil
	case FilterOneMonthAgo:
		start := monthStart(-1)
		end := monthStart(0)
		return DateWindow{Start: &start, End: &end, Label: start.Format("2006-01")}, nil
	case FilterTwoMonthsAgo:
		start := monthStart(-2)
		end := monthStart(-1)
		return DateWindow{Start: &start, End: &end, Label: start.Format("2006-01")}, nil
	case FilterAll:
		return DateWindow{Label: "semua"}, nil
	case FilterDateRange:
		if startDate == "" || endDate == "" {
			return DateWindow{}, errors.New("start_date dan end_date wajib diisi untuk date_range")
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
		if err != nil {
			return DateWindow{}, errors.New("format start_date tidak valid (YYYY-MM-DD)")
		}
		endDay, err := time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return DateWindow{}, errors.New("format end_date tidak valid (YYYY-MM-DD)")
		}
		if endDay.Before(start) {
			return DateWindow{}, errors.New("end_date tidak boleh sebelum start_date")
		}
		// End eksklusif: sampai akhir hari end_date
		end := endDay.AddDate(0, 0, 1)
		label := fmt.Sprintf("%s_sd_%s", start.Format("2006-01-02"), endDay.Format("2006-01-02"))
		return DateWindow{Start: &start, End: &end, Label: label}, nil
	default:
		return DateWindow{}, fmt.Errorf("filter_type tidak dikenal: %s", filterType)
	}
}
