package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the immutable record created when an approved quote is converted.
// The unique index on QuoteID is the authoritative guard against a quote
// being converted twice.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"quote_id"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Code        string          `gorm:"size:40;uniqueIndex;not null" json:"code"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	SaleDate    time.Time       `gorm:"not null" json:"sale_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Items  []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a disconnected deep copy of a quote line item taken at
// conversion time. It is never re-derived from the quote or the catalog.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ServiceID uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sub_total"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
