package model

import "time"

// DROS transaction types
const (
	DrosDealerSale          = "dealer_sale"
	DrosPrivatePartyTransfer = "private_party_transfer"
	DrosLoan                = "loan"
	DrosReturn              = "return"
)

// DROS record status
const (
	DrosSubmitted = "submitted"
	DrosReleased  = "released"
	DrosCancelled = "cancelled"
)

// DrosWaitingPeriod mandatory delay between submission and release
const DrosWaitingPeriod = 10 * 24 * time.Hour

// DrosRecord firearm transfer record. Table dros_records.
type DrosRecord struct {
	DrosID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"dros_id"`
	DrosNumber         string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"dros_number"`
	TransactionType    string     `gorm:"type:varchar(30);not null"                      json:"transaction_type"`
	PurchaserFirstName string     `gorm:"type:varchar(100);not null"                     json:"purchaser_first_name"`
	PurchaserLastName  string     `gorm:"type:varchar(100);not null"                     json:"purchaser_last_name"`
	FirearmMake        string     `gorm:"type:varchar(100);not null"                     json:"firearm_make"`
	FirearmModel       string     `gorm:"type:varchar(100);not null"                     json:"firearm_model"`
	FirearmSerial      string     `gorm:"type:varchar(100);not null"                     json:"firearm_serial"`
	FirearmCaliber     string     `gorm:"type:varchar(50)"                               json:"firearm_caliber,omitempty"`
	SalespersonID      int        `gorm:"not null"                                       json:"salesperson_id"`
	Status             string     `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"`
	SubmittedAt        time.Time  `gorm:"not null"                                       json:"submitted_at"`
	ReleaseEligibleAt  time.Time  `gorm:"not null"                                       json:"release_eligible_at"`
	ReleasedAt         *time.Time `json:"released_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelReason       string     `gorm:"type:varchar(500)"                              json:"cancel_reason,omitempty"`
	VersionedModel

	Salesperson *Employee `gorm:"foreignKey:SalespersonID;references:EmployeeID" json:"salesperson,omitempty"`
}

// TableName maps to dros_records
func (DrosRecord) TableName() string { return "dros_records" }
