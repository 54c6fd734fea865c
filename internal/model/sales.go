package model

import "time"

// SalesRecord one imported point-of-sale line. Table sales_data.
type SalesRecord struct {
	SaleID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sale_id"`
	Lanid            string    `gorm:"type:varchar(50);not null;index"                json:"lanid"`
	SaleDate         time.Time `gorm:"type:date;not null;index"                       json:"sale_date"`
	Description      string    `gorm:"type:varchar(255)"                              json:"description,omitempty"`
	CategoryLabel    string    `gorm:"type:varchar(100)"                              json:"category_label,omitempty"`
	SubcategoryLabel string    `gorm:"type:varchar(100)"                              json:"subcategory_label,omitempty"`
	Quantity         int       `gorm:"not null;default:1"                             json:"quantity"`
	Total            float64   `gorm:"type:numeric(12,2);not null;default:0"          json:"total"`
	ImportBatch      string    `gorm:"type:uuid;not null;index"                       json:"import_batch"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName maps to sales_data
func (SalesRecord) TableName() string { return "sales_data" }

// IsDros reports whether this line is a DROS transaction.
func (s *SalesRecord) IsDros() bool {
	return s.SubcategoryLabel != ""
}
