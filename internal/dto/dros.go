package dto

// CreateDrosRequest salesperson_id defaults to the caller
type CreateDrosRequest struct {
	DrosNumber         string `json:"dros_number"          binding:"required,max=30"`
	TransactionType    string `json:"transaction_type"     binding:"required,oneof=dealer_sale private_party_transfer loan return"`
	PurchaserFirstName string `json:"purchaser_first_name" binding:"required,max=100"`
	PurchaserLastName  string `json:"purchaser_last_name"  binding:"required,max=100"`
	FirearmMake        string `json:"firearm_make"         binding:"required,max=100"`
	FirearmModel       string `json:"firearm_model"        binding:"required,max=100"`
	FirearmSerial      string `json:"firearm_serial"       binding:"required,max=100"`
	FirearmCaliber     string `json:"firearm_caliber"      binding:"omitempty,max=50"`
	SalespersonID      *int   `json:"salesperson_id"       binding:"omitempty,min=1"`
}

// DrosListRequest list filters; range applies to submitted_at
type DrosListRequest struct {
	PaginationRequest
	DateRangeRequest
	Status string `form:"status" binding:"omitempty,oneof=submitted released cancelled"`
}

// CancelDrosRequest cancellation reason
type CancelDrosRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// DrosResponse one record
type DrosResponse struct {
	DrosID             string `json:"dros_id"`
	DrosNumber         string `json:"dros_number"`
	TransactionType    string `json:"transaction_type"`
	PurchaserFirstName string `json:"purchaser_first_name"`
	PurchaserLastName  string `json:"purchaser_last_name"`
	FirearmMake        string `json:"firearm_make"`
	FirearmModel       string `json:"firearm_model"`
	FirearmSerial      string `json:"firearm_serial"`
	FirearmCaliber     string `json:"firearm_caliber,omitempty"`
	SalespersonID      int    `json:"salesperson_id"`
	Status             string `json:"status"`
	SubmittedAt        string `json:"submitted_at"`
	ReleaseEligibleAt  string `json:"release_eligible_at"`
	ReleasedAt         string `json:"released_at,omitempty"`
	CancelledAt        string `json:"cancelled_at,omitempty"`
	CancelReason       string `json:"cancel_reason,omitempty"`
}
