package dto

// CreateHolidayRequest is_closed defaults to true
type CreateHolidayRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Date         string `json:"date"          binding:"required,datetime=2006-01-02"`
	IsClosed     *bool  `json:"is_closed"`
	RepeatYearly bool   `json:"repeat_yearly"`
}

// HolidayListRequest optional year filter
type HolidayListRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// HolidayResponse one holiday
type HolidayResponse struct {
	HolidayID    string `json:"holiday_id"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	IsClosed     bool   `json:"is_closed"`
	RepeatYearly bool   `json:"repeat_yearly"`
}

// HolidayImportResponse calendar import outcome
type HolidayImportResponse struct {
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportHolidayURLRequest calendar subscription link; webcal:// is accepted
type ImportHolidayURLRequest struct {
	URL string `json:"url" form:"url" binding:"required,max=2048"`
}
