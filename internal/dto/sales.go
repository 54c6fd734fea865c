package dto

// SalesImportResponse spreadsheet import outcome
type SalesImportResponse struct {
	BatchID  string           `json:"batch_id"`
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// SalesListRequest list filters
type SalesListRequest struct {
	PaginationRequest
	DateRangeRequest
	Lanid string `form:"lanid" binding:"omitempty,max=50"`
}

// SalesRecordResponse one sales line
type SalesRecordResponse struct {
	SaleID           string  `json:"sale_id"`
	Lanid            string  `json:"lanid"`
	SaleDate         string  `json:"sale_date"`
	Description      string  `json:"description,omitempty"`
	CategoryLabel    string  `json:"category_label,omitempty"`
	SubcategoryLabel string  `json:"subcategory_label,omitempty"`
	Quantity         int     `json:"quantity"`
	Total            float64 `json:"total"`
}
