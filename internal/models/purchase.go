// internal/models/purchase.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BusinessType string

const (
	BusinessTypeManufacturer BusinessType = "Manufacturer"
	BusinessTypeImporter     BusinessType = "Importer"
	BusinessTypeDistributor  BusinessType = "Distributor"
	BusinessTypeTrader       BusinessType = "Trader"
)

func (b BusinessType) Valid() bool {
	switch b {
	case BusinessTypeManufacturer, BusinessTypeImporter, BusinessTypeDistributor, BusinessTypeTrader:
		return true
	}
	return false
}

type Contact struct {
	ContactPerson string `json:"contactPerson"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail"`
}

// ContactList is stored as a JSONB column, mirroring the embedded-document
// shape the admin UI sends and receives.
type ContactList []Contact

func (c ContactList) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(ContactList{})
	}
	return json.Marshal(c)
}

func (c *ContactList) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported contact list column type %T", value)
	}
}

// Purchase is one vendor/purchase record. ID is assigned by the sequence
// allocator and never client-supplied. The fifteen grade columns hold
// per-grade price values with exact decimal storage.
type Purchase struct {
	ID           int64        `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Industries   string       `json:"industries"`
	Type         string       `json:"type"`
	Product      string       `json:"product" gorm:"not null"`
	VendorName   string       `json:"vendorName" gorm:"not null;index"`
	BusinessType BusinessType `json:"businessType" gorm:"type:varchar(20);not null"`
	SourceType   string       `json:"sourceType" gorm:"default:''"`
	Country      string       `json:"country" gorm:"default:''"`
	Make         string       `json:"make"`
	Address      string       `json:"address"`
	Contacts     ContactList  `json:"contacts" gorm:"type:jsonb"`
	Date         time.Time    `json:"date"`
	Remarks      string       `json:"remarks"`

	TECH           decimal.Decimal `json:"TECH" gorm:"type:decimal(18,4);not null;default:0"`
	LR             decimal.Decimal `json:"LR" gorm:"type:decimal(18,4);not null;default:0"`
	AR             decimal.Decimal `json:"AR" gorm:"type:decimal(18,4);not null;default:0"`
	ACS            decimal.Decimal `json:"ACS" gorm:"type:decimal(18,4);not null;default:0"`
	FOOD           decimal.Decimal `json:"FOOD" gorm:"type:decimal(18,4);not null;default:0"`
	COSMETIC       decimal.Decimal `json:"COSMETIC" gorm:"type:decimal(18,4);not null;default:0"`
	IH             decimal.Decimal `json:"IH" gorm:"type:decimal(18,4);not null;default:0"`
	IP             decimal.Decimal `json:"IP" gorm:"type:decimal(18,4);not null;default:0"`
	BP             decimal.Decimal `json:"BP" gorm:"type:decimal(18,4);not null;default:0"`
	USP            decimal.Decimal `json:"USP" gorm:"type:decimal(18,4);not null;default:0"`
	PHARMA         decimal.Decimal `json:"PHARMA" gorm:"type:decimal(18,4);not null;default:0"`
	ELECTROPLATING decimal.Decimal `json:"ELECTROPLATING" gorm:"type:decimal(18,4);not null;default:0"`
	FEED           decimal.Decimal `json:"FEED" gorm:"type:decimal(18,4);not null;default:0"`
	AGRI           decimal.Decimal `json:"AGRI" gorm:"type:decimal(18,4);not null;default:0"`
	IMPORTED       decimal.Decimal `json:"IMPORTED" gorm:"type:decimal(18,4);not null;default:0"`
}

func (Purchase) TableName() string {
	return "purchases"
}
