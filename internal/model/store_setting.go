package model

// StoreSetting single-row store settings. Table store_settings.
type StoreSetting struct {
	Singleton                  bool   `gorm:"primaryKey;default:true"                            json:"-"`
	DrosQualificationThreshold int    `gorm:"not null;default:20"                                json:"dros_qualification_threshold"`
	ExcludedDepartment         string `gorm:"type:varchar(50);not null;default:'Operations'"     json:"excluded_department"`
	StartingPoints             int    `gorm:"not null;default:300"                               json:"starting_points"`
	DutyDepartment             string `gorm:"type:varchar(50);not null;default:'Sales'"          json:"duty_department"`
	DutyPreferredWeekday       int    `gorm:"type:smallint;not null;default:5"                   json:"duty_preferred_weekday"` // 0=Sunday through 6=Saturday
	TimeOffMinNoticeDays       int    `gorm:"not null;default:0"                                 json:"time_off_min_notice_days"`
	BaseModel
}

// TableName maps to store_settings
func (StoreSetting) TableName() string { return "store_settings" }
