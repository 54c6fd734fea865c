package model

import "time"

// Holiday maps holidays
type Holiday struct {
	HolidayID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	HolidayDate  time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"holiday_date"`
	IsClosed     bool      `gorm:"not null;default:true"                          json:"is_closed"`
	RepeatYearly bool      `gorm:"not null;default:false"                         json:"repeat_yearly"`
	BaseModel
}

// TableName maps to holidays
func (Holiday) TableName() string { return "holidays" }
