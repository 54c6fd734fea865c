package model

import "time"

// Time-off request status
const (
	TimeOffPending   = "pending"
	TimeOffApproved  = "approved"
	TimeOffDenied    = "denied"
	TimeOffCalledOut = "called_out"
	TimeOffLeftEarly = "left_early"
)

// TimeOffRequest maps time_off_requests
type TimeOffRequest struct {
	RequestID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	EmployeeID  int        `gorm:"not null"                                       json:"employee_id"`
	StartDate   time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	Reason      string     `gorm:"type:varchar(100);not null"                     json:"reason"`
	OtherReason string     `gorm:"type:varchar(500)"                              json:"other_reason,omitempty"`
	UsePTO      bool       `gorm:"column:use_pto;not null;default:false"          json:"use_pto"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ReviewedBy  *int       `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName maps to time_off_requests
func (TimeOffRequest) TableName() string { return "time_off_requests" }
