package dto

// UpdateStoreSettingsRequest partial update of the store-wide knobs
type UpdateStoreSettingsRequest struct {
	DrosQualificationThreshold *int    `json:"dros_qualification_threshold" binding:"omitempty,min=0,max=10000"`
	ExcludedDepartment         *string `json:"excluded_department"          binding:"omitempty,max=50"`
	StartingPoints             *int    `json:"starting_points"              binding:"omitempty,min=0,max=100000"`
	DutyDepartment             *string `json:"duty_department"              binding:"omitempty,min=1,max=50"`
	DutyPreferredWeekday       *int    `json:"duty_preferred_weekday"       binding:"omitempty,min=0,max=6"`
	TimeOffMinNoticeDays       *int    `json:"time_off_min_notice_days"     binding:"omitempty,min=0,max=365"`
}

// StoreSettingsResponse current settings
type StoreSettingsResponse struct {
	DrosQualificationThreshold int    `json:"dros_qualification_threshold"`
	ExcludedDepartment         string `json:"excluded_department"`
	StartingPoints             int    `json:"starting_points"`
	DutyDepartment             string `json:"duty_department"`
	DutyPreferredWeekday       int    `json:"duty_preferred_weekday"`
	TimeOffMinNoticeDays       int    `json:"time_off_min_notice_days"`
	UpdatedAt                  string `json:"updated_at"`
}
