package dto

// ── audits ──

// CreateAuditRequest one audited DROS; one row is stored per error location
type CreateAuditRequest struct {
	DrosNumber     string   `json:"dros_number"     binding:"required,max=30"`
	Lanid          string   `json:"lanid"           binding:"required,max=50"`
	AuditType      string   `json:"audit_type"      binding:"required,max=50"`
	TransDate      string   `json:"trans_date"      binding:"required,datetime=2006-01-02"`
	AuditDate      string   `json:"audit_date"      binding:"required,datetime=2006-01-02"`
	ErrorLocations []string `json:"error_locations" binding:"omitempty,max=20,dive,max=100"`
	ErrorDetails   string   `json:"error_details"   binding:"omitempty,max=500"`
	ErrorNotes     string   `json:"error_notes"     binding:"omitempty,max=2000"`
	DrosCancel     bool     `json:"dros_cancel"`
}

// AuditListRequest list filters
type AuditListRequest struct {
	PaginationRequest
	DateRangeRequest
	Lanid string `form:"lanid" binding:"omitempty,max=50"`
}

// AuditResponse one audit row
type AuditResponse struct {
	AuditID       string `json:"audit_id"`
	DrosNumber    string `json:"dros_number"`
	Lanid         string `json:"lanid"`
	AuditType     string `json:"audit_type"`
	TransDate     string `json:"trans_date"`
	AuditDate     string `json:"audit_date"`
	ErrorLocation string `json:"error_location,omitempty"`
	ErrorDetails  string `json:"error_details,omitempty"`
	ErrorNotes    string `json:"error_notes,omitempty"`
	DrosCancel    bool   `json:"dros_cancel"`
}

// ── point table ──

// UpsertPointRuleRequest keyed by error_location
type UpsertPointRuleRequest struct {
	Category       string `json:"category"        binding:"required,max=50"`
	ErrorLocation  string `json:"error_location"  binding:"required,max=100"`
	PointsDeducted *int   `json:"points_deducted" binding:"required,min=0,max=1000"`
}

// PointRuleResponse one rule
type PointRuleResponse struct {
	RuleID         string `json:"rule_id"`
	Category       string `json:"category"`
	ErrorLocation  string `json:"error_location"`
	PointsDeducted int    `json:"points_deducted"`
}

// ── summary ──

// AuditSummaryRequest required inclusive range
type AuditSummaryRequest struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end"   binding:"required,datetime=2006-01-02"`
}

// AuditSummaryResponse per-employee scores for the range
type AuditSummaryResponse struct {
	Start               string            `json:"start"`
	End                 string            `json:"end"`
	StartingPoints      int               `json:"starting_points"`
	QualifyingThreshold int               `json:"qualifying_threshold"`
	Rows                []AuditSummaryRow `json:"rows"`
}

// AuditSummaryRow one lanid group
type AuditSummaryRow struct {
	Lanid             string `json:"lanid"`
	EmployeeID        int    `json:"employee_id,omitempty"`
	Name              string `json:"name"`
	Department        string `json:"department"`
	DrosCount         int    `json:"dros_count"`
	AuditCount        int    `json:"audit_count"`
	DrosCancellations int    `json:"dros_cancellations"`
	Deductions        int    `json:"deductions"`
	Points            int    `json:"points"`
	Qualified         bool   `json:"qualified"`
}
