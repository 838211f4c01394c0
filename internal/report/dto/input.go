package dto

import (
	"time"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
)

// DateLayout is the format of every report date accepted by the API.
const DateLayout = "2006-01-02"

type GenerateSalesReportInput struct {
	ReportDate string `json:"reportDate" binding:"required"`
}

type GeneratePerformanceReportInput struct {
	ReportDate string `json:"reportDate" binding:"required"`
	UserID     int64  `json:"userId" binding:"required"`
}

// ParseDate reads a YYYY-MM-DD report date.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.Validation("reportDate must be formatted as YYYY-MM-DD")
	}
	return d, nil
}
