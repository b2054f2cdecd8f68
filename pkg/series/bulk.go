package series

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/guregu/null/v5"
)

// DailyRow is one feed record for the requested symbol and session.
type DailyRow struct {
	Date          string // YYYY-MM-DD
	ContractMonth string
	Close         null.Float
	Volume        null.Float
}

// SelectMainByDate keeps the highest-volume row for each date and returns the
// dates newest first, truncated to count. Rows with a blank date or month, or
// a missing close or volume, are ignored. A row only replaces the current
// winner for its date on strictly greater volume. A non-zero anchor drops
// dates after it.
func SelectMainByDate(rows []DailyRow, count int, anchor time.Time) []ClosePoint {
	cutoff := ""
	if !anchor.IsZero() {
		cutoff = anchor.In(Taipei).Format(DateLayout)
	}

	best := make(map[string]DailyRow)
	for _, row := range rows {
		date := strings.TrimSpace(row.Date)
		month := strings.TrimSpace(row.ContractMonth)
		if date == "" || month == "" || !finite(row.Close) || !finite(row.Volume) {
			continue
		}
		if cutoff != "" && date > cutoff {
			continue
		}
		row.Date, row.ContractMonth = date, month
		if prev, ok := best[date]; !ok || row.Volume.Float64 > prev.Volume.Float64 {
			best[date] = row
		}
	}

	points := make([]ClosePoint, 0, len(best))
	for _, row := range best {
		points = append(points, ClosePoint{
			Date:          row.Date,
			Close:         row.Close.Float64,
			ContractMonth: row.ContractMonth,
			Volume:        int64(row.Volume.Float64),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date > points[j].Date })
	if count >= 0 && len(points) > count {
		points = points[:count]
	}
	return points
}

func finite(v null.Float) bool {
	return v.Valid && !math.IsNaN(v.Float64) && !math.IsInf(v.Float64, 0)
}
