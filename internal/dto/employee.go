package dto

// ── employees ──

// EmployeeListRequest list filters
type EmployeeListRequest struct {
	PaginationRequest
	Department string `form:"department" binding:"omitempty,max=50"`
	Status     string `form:"status"     binding:"omitempty,oneof=active inactive"`
	Keyword    string `form:"keyword"    binding:"omitempty,max=50"`
}

// CreateEmployeeRequest admin creates an employee with an initial password
type CreateEmployeeRequest struct {
	Name       string  `json:"name"       binding:"required,max=100"`
	LastName   string  `json:"last_name"  binding:"omitempty,max=100"`
	Email      string  `json:"email"      binding:"required,email"`
	Password   string  `json:"password"   binding:"required,min=8,max=72"`
	Lanid      *string `json:"lanid"      binding:"omitempty,max=50"`
	Phone      string  `json:"phone"      binding:"omitempty,max=30"`
	Department string  `json:"department" binding:"required,max=50"`
	Role       string  `json:"role"       binding:"omitempty,oneof=employee auditor admin super_admin"`
	Rank       *int    `json:"rank"       binding:"omitempty,min=0"`
	PayType    string  `json:"pay_type"   binding:"omitempty,oneof=hourly salary"`
	HireDate   string  `json:"hire_date"  binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest partial update
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"       binding:"omitempty,max=100"`
	LastName   *string `json:"last_name"  binding:"omitempty,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Lanid      *string `json:"lanid"      binding:"omitempty,max=50"`
	Phone      *string `json:"phone"      binding:"omitempty,max=30"`
	Department *string `json:"department" binding:"omitempty,max=50"`
	Role       *string `json:"role"       binding:"omitempty,oneof=employee auditor admin super_admin"`
	Rank       *int    `json:"rank"       binding:"omitempty,min=0"`
	PayType    *string `json:"pay_type"   binding:"omitempty,oneof=hourly salary"`
	HireDate   *string `json:"hire_date"  binding:"omitempty,datetime=2006-01-02"`
}

// EmployeeResponse employee without credentials
type EmployeeResponse struct {
	EmployeeID int    `json:"employee_id"`
	Name       string `json:"name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Lanid      string `json:"lanid,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Rank       *int   `json:"rank,omitempty"`
	PayType    string `json:"pay_type"`
	HireDate   string `json:"hire_date,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}
