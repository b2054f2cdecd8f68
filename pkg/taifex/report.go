package taifex

import (
	"regexp"
)

var tradingDatePattern = regexp.MustCompile(`日期[:：]\s*(\d{4}/\d{2}/\d{2})`)

// ReportDateLayout is the yyyy/mm/dd form used by queryDate and report banners.
const ReportDateLayout = "2006/01/02"

// MainContract is the most traded outright contract on one report.
type MainContract struct {
	TradingDate   string // yyyy/mm/dd as printed on the report
	Contract      string
	ContractMonth string
	Close         float64
	Volume        int64
}

// ParseTradingDate extracts the yyyy/mm/dd banner date from report markup.
// It returns "" when the report carries no date.
func ParseTradingDate(markup []byte) string {
	m := tradingDatePattern.FindSubmatch(markup)
	if m == nil {
		return ""
	}
	return string(m[1])
}
