package dto

// CreateWaiverRequest range-use waiver; visit_date defaults to today
type CreateWaiverRequest struct {
	FirstName   string `json:"first_name"    binding:"required,max=100"`
	LastName    string `json:"last_name"     binding:"required,max=100"`
	Email       string `json:"email"         binding:"omitempty,email"`
	Phone       string `json:"phone"         binding:"omitempty,max=30"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	IDNumber    string `json:"id_number"     binding:"required,max=50"`
	Agreed      bool   `json:"agreed"`
	VisitDate   string `json:"visit_date"    binding:"omitempty,datetime=2006-01-02"`
}

// WaiverListRequest waivers of one visit date (default today)
type WaiverListRequest struct {
	Date   string `form:"date"   binding:"omitempty,datetime=2006-01-02"`
	Status string `form:"status" binding:"omitempty,oneof=checked_in checked_out"`
}

// WaiverResponse one waiver
type WaiverResponse struct {
	WaiverID     string `json:"waiver_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DateOfBirth  string `json:"date_of_birth"`
	VisitDate    string `json:"visit_date"`
	Status       string `json:"status"`
	CheckedOutAt string `json:"checked_out_at,omitempty"`
}
