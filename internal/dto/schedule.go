package dto

// ── reference schedules ──

// UpsertReferenceScheduleRequest sets one weekday of an employee's template.
// Omitting both times marks the day off.
type UpsertReferenceScheduleRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime *string `json:"start_time"  binding:"omitempty,clock"`
	EndTime   *string `json:"end_time"    binding:"omitempty,clock"`
}

// ReferenceScheduleResponse one template day
type ReferenceScheduleResponse struct {
	ReferenceID string `json:"reference_id"`
	EmployeeID  int    `json:"employee_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}

// ── shifts ──

// GenerateShiftsRequest build N weeks of shifts from the templates
type GenerateShiftsRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	Weeks     int    `json:"weeks"      binding:"required,min=1,max=12"`
}

// GenerateShiftsResponse generation outcome
type GenerateShiftsResponse struct {
	WeekStart       string `json:"week_start"`
	Weeks           int    `json:"weeks"`
	Created         int    `json:"created"`
	SkippedHolidays int    `json:"skipped_holidays"`
}

// CreateShiftRequest add a single shift
type CreateShiftRequest struct {
	EmployeeID int    `json:"employee_id" binding:"required,min=1"`
	Date       string `json:"date"        binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time"  binding:"required,clock"`
	EndTime    string `json:"end_time"    binding:"required,clock"`
	Status     string `json:"status"      binding:"omitempty,oneof=scheduled added_day updated_shift"`
	Notes      string `json:"notes"       binding:"omitempty,max=500"`
}

// UpdateShiftRequest partial shift update
type UpdateShiftRequest struct {
	StartTime *string `json:"start_time" binding:"omitempty,clock"`
	EndTime   *string `json:"end_time"   binding:"omitempty,clock"`
	Status    *string `json:"status"     binding:"omitempty,oneof=scheduled added_day time_off called_out left_early updated_shift"`
	Notes     *string `json:"notes"      binding:"omitempty,max=500"`
}

// ShiftStatusRequest mark a call-out or early leave
type ShiftStatusRequest struct {
	Status  string  `json:"status"   binding:"required,oneof=called_out left_early"`
	EndTime *string `json:"end_time" binding:"omitempty,clock"`
	Notes   string  `json:"notes"    binding:"omitempty,max=500"`
}

// ShiftListRequest shifts of one employee in a range
type ShiftListRequest struct {
	EmployeeID int    `form:"employee_id" binding:"omitempty,min=1"`
	Start      string `form:"start"       binding:"required,datetime=2006-01-02"`
	End        string `form:"end"         binding:"required,datetime=2006-01-02"`
}

// ShiftResponse one dated shift
type ShiftResponse struct {
	ScheduleID   string `json:"schedule_id"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// ── calendar ──

// CalendarRequest week containing start (normalized to Monday)
type CalendarRequest struct {
	Start      string `form:"start"      binding:"required,datetime=2006-01-02"`
	Department string `form:"department" binding:"omitempty,max=50"`
}

// CalendarResponse week grid
type CalendarResponse struct {
	WeekStart string        `json:"week_start"`
	Days      []string      `json:"days"`
	Rows      []CalendarRow `json:"rows"`
}

// CalendarRow one employee across the 7 days
type CalendarRow struct {
	EmployeeID int            `json:"employee_id"`
	Name       string         `json:"name"`
	Department string         `json:"department"`
	Cells      []CalendarCell `json:"cells"`
}

// CalendarCell empty ScheduleID means not scheduled
type CalendarCell struct {
	Date       string `json:"date"`
	ScheduleID string `json:"schedule_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	Status     string `json:"status,omitempty"`
}
