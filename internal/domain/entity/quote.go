package entity

import (
	"time"

	"github.com/dsouzac/quotify-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote represents a price quote for a client. TotalAmount is always the
// exact decimal sum of its item subtotals.
type Quote struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ClientID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyID   *uuid.UUID       `gorm:"type:uuid;index" json:"company_id,omitempty"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status      enum.QuoteStatus `gorm:"default:0" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Client  *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	User    User        `gorm:"foreignKey:UserID" json:"-"`
	Company *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// ItemsTotal returns the exact decimal sum of the item subtotals
func (q *Quote) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.SubTotal)
	}
	return total
}

// QuoteItem represents a line item in a quote. The composite key
// (quote_id, service_id) guarantees a service appears at most once per quote.
// UnitPrice is the catalog price snapshot taken when the item was created.
type QuoteItem struct {
	QuoteID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"quote_id"`
	ServiceID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"service_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sub_total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Quote   Quote   `gorm:"foreignKey:QuoteID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}

// Recalculate recomputes the subtotal from quantity and the price snapshot
func (i *QuoteItem) Recalculate() {
	i.SubTotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
