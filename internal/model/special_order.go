package model

import "time"

// Special order status
const (
	OrderPending   = "pending"
	OrderContacted = "contacted"
	OrderOrdered   = "ordered"
	OrderArrived   = "arrived"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// SpecialOrder customer special order. Table orders.
type SpecialOrder struct {
	OrderID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_id"`
	CustomerName  string     `gorm:"type:varchar(100);not null"                     json:"customer_name"`
	CustomerPhone string     `gorm:"type:varchar(30)"                               json:"customer_phone,omitempty"`
	CustomerEmail string     `gorm:"type:varchar(255)"                              json:"customer_email,omitempty"`
	Item          string     `gorm:"type:varchar(255);not null"                     json:"item"`
	Manufacturer  string     `gorm:"type:varchar(100)"                              json:"manufacturer,omitempty"`
	Details       string     `gorm:"type:text"                                      json:"details,omitempty"`
	TakenBy       int        `gorm:"not null"                                       json:"taken_by"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ContactedAt   *time.Time `json:"contacted_at,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:TakenBy;references:EmployeeID" json:"employee,omitempty"`
}

// TableName maps to orders
func (SpecialOrder) TableName() string { return "orders" }
