package dto

// AssignDutyRequest assign the week containing week_start
type AssignDutyRequest struct {
	WeekStart string `json:"week_start" binding:"required,datetime=2006-01-02"`
}

// DutyListRequest list filters
type DutyListRequest struct {
	PaginationRequest
	EmployeeID int `form:"employee_id" binding:"omitempty,min=1"`
}

// DutyResponse one weekly assignment
type DutyResponse struct {
	DutyID       string `json:"duty_id"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	WeekStart    string `json:"week_start"`
	DutyDate     string `json:"duty_date"`
	Completed    bool   `json:"completed"`
	CompletedAt  string `json:"completed_at,omitempty"`
	Existing     bool   `json:"existing"` // assignment already existed for the week
}
