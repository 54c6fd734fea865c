package dto

// CreateAcquisitionRequest acquire firearms from another licensee
type CreateAcquisitionRequest struct {
	FFLNumber           string                   `json:"ffl_number"            binding:"required,max=30"`
	FFLExpires          string                   `json:"ffl_expires"           binding:"omitempty,datetime=2006-01-02"`
	LicenseName         string                   `json:"license_name"          binding:"required,max=200"`
	TradeName           string                   `json:"trade_name"            binding:"omitempty,max=200"`
	PremiseAddress      string                   `json:"premise_address"       binding:"omitempty,max=200"`
	PremiseCity         string                   `json:"premise_city"          binding:"omitempty,max=100"`
	PremiseState        string                   `json:"premise_state"         binding:"omitempty,len=2"`
	PremiseZipCode      string                   `json:"premise_zip_code"      binding:"omitempty,max=10"`
	Phone               string                   `json:"phone"                 binding:"omitempty,max=30"`
	Email               string                   `json:"email"                 binding:"omitempty,email"`
	PurchaseOrderNumber string                   `json:"purchase_order_number" binding:"omitempty,max=50"`
	InvoiceNumber       string                   `json:"invoice_number"        binding:"omitempty,max=50"`
	Note                string                   `json:"note"                  binding:"omitempty,max=500"`
	Items               []AcquisitionItemRequest `json:"items"                 binding:"required,min=1,max=100,dive"`
}

// AcquisitionItemRequest one firearm
type AcquisitionItemRequest struct {
	Manufacturer string  `json:"manufacturer" binding:"required,max=100"`
	Importer     string  `json:"importer"     binding:"omitempty,max=100"`
	Model        string  `json:"model"        binding:"required,max=100"`
	Caliber      string  `json:"caliber"      binding:"required,max=50"`
	Type         string  `json:"type"         binding:"required,max=50"`
	Serial       string  `json:"serial"       binding:"required,max=100"`
	Condition    string  `json:"condition"    binding:"omitempty,oneof=New Used"`
	Cost         float64 `json:"cost"         binding:"omitempty,min=0"`
	Price        float64 `json:"price"        binding:"omitempty,min=0"`
}

// AcquisitionListRequest list paging
type AcquisitionListRequest struct {
	PaginationRequest
}

// AcquisitionResponse local acquisition record
type AcquisitionResponse struct {
	AcquisitionID         string `json:"acquisition_id"`
	ExternalContactID     string `json:"external_contact_id,omitempty"`
	ExternalAcquisitionID string `json:"external_acquisition_id,omitempty"`
	FFLNumber             string `json:"ffl_number"`
	LicenseName           string `json:"license_name"`
	ItemCount             int    `json:"item_count"`
	Status                string `json:"status"`
	ErrorMessage          string `json:"error_message,omitempty"`
	RequestedBy           int    `json:"requested_by"`
	CreatedAt             string `json:"created_at"`
}
