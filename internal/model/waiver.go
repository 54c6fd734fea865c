package model

import "time"

// Waiver status
const (
	WaiverCheckedIn  = "checked_in"
	WaiverCheckedOut = "checked_out"
)

// Waiver range-use waiver. Table waivers.
type Waiver struct {
	WaiverID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"waiver_id"`
	FirstName    string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Email        string     `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone        string     `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	DateOfBirth  time.Time  `gorm:"type:date;not null"                             json:"date_of_birth"`
	IDNumber     string     `gorm:"type:varchar(50);not null"                      json:"id_number"`
	Agreed       bool       `gorm:"not null"                                       json:"agreed"`
	VisitDate    time.Time  `gorm:"type:date;not null;index"                       json:"visit_date"`
	Status       string     `gorm:"type:varchar(20);not null;default:'checked_in'" json:"status"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName maps to waivers
func (Waiver) TableName() string { return "waivers" }
