package dto

// CreateTimeOffRequest employee asks for time off
type CreateTimeOffRequest struct {
	StartDate   string `json:"start_date"   binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"     binding:"required,datetime=2006-01-02"`
	Reason      string `json:"reason"       binding:"required,max=100"`
	OtherReason string `json:"other_reason" binding:"omitempty,max=500"`
	UsePTO      bool   `json:"use_pto"`
}

// TimeOffListRequest list filters
type TimeOffListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved denied called_out left_early"`
}

// TimeOffResponse one request
type TimeOffResponse struct {
	RequestID    string `json:"request_id"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	OtherReason  string `json:"other_reason,omitempty"`
	UsePTO       bool   `json:"use_pto"`
	Status       string `json:"status"`
	ReviewedBy   *int   `json:"reviewed_by,omitempty"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	ShiftsMarked int    `json:"shifts_marked,omitempty"`
	CreatedAt    string `json:"created_at"`
}
