package model

import "time"

// Employee roles
const (
	RoleEmployee   = "employee"
	RoleAuditor    = "auditor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Employee status
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee maps employees. The integer id orders the duty rotation ring.
type Employee struct {
	EmployeeID   int        `gorm:"primaryKey;autoIncrement"                    json:"employee_id"`
	Name         string     `gorm:"type:varchar(100);not null"                  json:"name"`
	LastName     string     `gorm:"type:varchar(100);not null;default:''"       json:"last_name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                  json:"-"`
	Lanid        *string    `gorm:"type:varchar(50);uniqueIndex"                json:"lanid,omitempty"`
	Phone        string     `gorm:"type:varchar(30)"                            json:"phone,omitempty"`
	Department   string     `gorm:"type:varchar(50);not null"                   json:"department"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Rank         *int       `json:"rank,omitempty"`
	PayType      string     `gorm:"type:varchar(20);not null;default:'hourly'"  json:"pay_type"` // hourly | salary
	HireDate     *time.Time `gorm:"type:date"                                   json:"hire_date,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"  json:"status"`
	BaseModel
}

// TableName maps to employees
func (Employee) TableName() string { return "employees" }

// FullName first and last name joined
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.Name
	}
	return e.Name + " " + e.LastName
}

// LanidValue the sales-system id or "" when not set
func (e *Employee) LanidValue() string {
	if e.Lanid == nil {
		return ""
	}
	return *e.Lanid
}
