package model

import "time"

// Shift status
const (
	ShiftScheduled    = "scheduled"
	ShiftAddedDay     = "added_day"
	ShiftTimeOff      = "time_off"
	ShiftCalledOut    = "called_out"
	ShiftLeftEarly    = "left_early"
	ShiftUpdatedShift = "updated_shift"
)

// IsWorkdayStatus reports whether a shift in this status means the employee works that day.
func IsWorkdayStatus(status string) bool {
	switch status {
	case ShiftScheduled, ShiftAddedDay, ShiftUpdatedShift, ShiftLeftEarly:
		return true
	}
	return false
}

// ReferenceSchedule weekly template. Table reference_schedules.
type ReferenceSchedule struct {
	ReferenceID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reference_id"`
	EmployeeID  int     `gorm:"not null"                                       json:"employee_id"`
	DayOfWeek   int     `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0=Sunday through 6=Saturday
	StartTime   *string `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime     *string `gorm:"type:time"                                      json:"end_time,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName maps to reference_schedules
func (ReferenceSchedule) TableName() string { return "reference_schedules" }

// Shift one dated shift. Table schedules.
type Shift struct {
	ScheduleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	EmployeeID   int       `gorm:"not null"                                       json:"employee_id"`
	ScheduleDate time.Time `gorm:"type:date;not null"                             json:"schedule_date"`
	DayOfWeek    int       `gorm:"type:smallint;not null"                         json:"day_of_week"`
	StartTime    *string   `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime      *string   `gorm:"type:time"                                      json:"end_time,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	Notes        string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName maps to schedules
func (Shift) TableName() string { return "schedules" }
