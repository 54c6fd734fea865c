package model

import "time"

// BreakRoomDuty weekly break-room cleaning assignment. Table break_room_duty.
type BreakRoomDuty struct {
	DutyID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"duty_id"`
	EmployeeID  int        `gorm:"not null"                                       json:"employee_id"`
	WeekStart   time.Time  `gorm:"type:date;not null;uniqueIndex"                 json:"week_start"`
	DutyDate    time.Time  `gorm:"type:date;not null"                             json:"duty_date"`
	Completed   bool       `gorm:"not null;default:false"                         json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName maps to break_room_duty
func (BreakRoomDuty) TableName() string { return "break_room_duty" }
