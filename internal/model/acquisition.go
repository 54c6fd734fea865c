package model

import (
	"time"

	"gorm.io/datatypes"
)

// Acquisition status
const (
	AcquisitionCommitted = "committed"
	AcquisitionFailed    = "failed"
)

// Acquisition local record of an FFL acquisition pushed to FastBound. Table acquisitions.
type Acquisition struct {
	AcquisitionID         string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"acquisition_id"`
	ExternalContactID     string         `gorm:"type:varchar(64)"                               json:"external_contact_id,omitempty"`
	ExternalAcquisitionID string         `gorm:"type:varchar(64)"                               json:"external_acquisition_id,omitempty"`
	FFLNumber             string         `gorm:"column:ffl_number;type:varchar(30);not null"   json:"ffl_number"`
	LicenseName           string         `gorm:"type:varchar(200);not null"                     json:"license_name"`
	ItemCount             int            `gorm:"not null"                                       json:"item_count"`
	Status                string         `gorm:"type:varchar(20);not null"                      json:"status"`
	ErrorMessage          string         `gorm:"type:varchar(500)"                              json:"error_message,omitempty"`
	RequestPayload        datatypes.JSON `gorm:"type:jsonb"                                     json:"request_payload,omitempty"`
	ResponsePayload       datatypes.JSON `gorm:"type:jsonb"                                     json:"response_payload,omitempty"`
	RequestedBy           int            `gorm:"not null"                                       json:"requested_by"`
	CreatedAt             time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName maps to acquisitions
func (Acquisition) TableName() string { return "acquisitions" }
