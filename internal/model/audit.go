package model

import "time"

// DrosCancellationCategory point-rule category charged for a cancelled DROS
const DrosCancellationCategory = "dros_cancellation"

// Audit one audited DROS error. Table audits.
type Audit struct {
	AuditID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_id"`
	DrosNumber    string    `gorm:"type:varchar(30);not null"                      json:"dros_number"`
	Lanid         string    `gorm:"type:varchar(50);not null;index"                json:"lanid"`
	AuditType     string    `gorm:"type:varchar(50);not null"                      json:"audit_type"`
	TransDate     time.Time `gorm:"type:date;not null;index"                       json:"trans_date"`
	AuditDate     time.Time `gorm:"type:date;not null"                             json:"audit_date"`
	ErrorLocation string    `gorm:"type:varchar(100)"                              json:"error_location,omitempty"`
	ErrorDetails  string    `gorm:"type:varchar(500)"                              json:"error_details,omitempty"`
	ErrorNotes    string    `gorm:"type:text"                                      json:"error_notes,omitempty"`
	DrosCancel    bool      `gorm:"not null;default:false"                         json:"dros_cancel"`
	SoftDeleteModel
}

// TableName maps to audits
func (Audit) TableName() string { return "audits" }

// PointRule fixed point deduction per error location. Table points_calculation.
type PointRule struct {
	RuleID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	Category       string `gorm:"type:varchar(50);not null"                      json:"category"`
	ErrorLocation  string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"error_location"`
	PointsDeducted int    `gorm:"not null"                                       json:"points_deducted"`
	BaseModel
}

// TableName maps to points_calculation
func (PointRule) TableName() string { return "points_calculation" }
