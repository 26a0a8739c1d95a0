package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"

	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
)

// ValidOrderStatus reports whether s is one of the order status enum values.
// Transitions between them are deliberately unconstrained.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted:
		return true
	}
	return false
}

// OrderDealProduct freezes one deal constituent at order time, so the order
// stays interpretable after the deal is edited or deleted.
type OrderDealProduct struct {
	ProductID   uuid.UUID `json:"productId"`
	VariantName string    `json:"variantName"`
}

// OrderItem is a frozen snapshot of one cart line. Product items carry the
// resolved price at order time; deal items carry the deal price and the
// constituent identities.
type OrderItem struct {
	ItemType string `json:"itemType"`

	// Product items
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	VariantName string     `json:"variantName,omitempty"`
	Price       float64    `json:"price,omitempty"`

	// Deal items
	DealID       *uuid.UUID         `json:"dealId,omitempty"`
	DealPrice    float64            `json:"dealPrice,omitempty"`
	DealProducts []OrderDealProduct `json:"dealProducts,omitempty"`

	Quantity int `json:"quantity"`
}

// Total is the line's contribution to the order subtotal.
func (i OrderItem) Total() float64 {
	if i.ItemType == ItemTypeDeal {
		return i.DealPrice
	}
	return i.Price * float64(i.Quantity)
}

type OrderItemList []OrderItem

func (o OrderItemList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OrderItemList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan OrderItemList: not []byte")
	}
	return json.Unmarshal(bytes, o)
}

// Charges is the caller-supplied extra charges, frozen on the order.
type Charges struct {
	Delivery float64 `json:"delivery"`
	VAT      float64 `json:"vat"`
	Other    float64 `json:"other"`
	Total    float64 `json:"total"`
}

func (c Charges) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Charges) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Charges: not []byte")
	}
	return json.Unmarshal(bytes, c)
}

// Order is the immutable record of a completed checkout. Only Status is
// mutable after creation.
type Order struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index:idx_orders_user"`
	Items          OrderItemList `json:"items" gorm:"type:jsonb;not null"`
	Subtotal       float64       `json:"subtotal" gorm:"not null"`
	Charges        Charges       `json:"charges" gorm:"type:jsonb;not null"`
	Total          float64       `json:"total" gorm:"not null"`
	PaymentMethod  string        `json:"payment_method" gorm:"not null;check:payment_method IN ('cod', 'online')"`
	PaymentReceipt *string       `json:"payment_receipt,omitempty"`
	Status         string        `json:"status" gorm:"not null;default:'pending';check:status IN ('pending', 'processing', 'completed');index"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime;index"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// ItemCount returns the number of lines on the order.
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity sums line quantities; deal lines always count as 1.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		if item.ItemType == ItemTypeProduct {
			total += item.Quantity
		} else {
			total++
		}
	}
	return total
}

type OrderBreakdown struct {
	Products int `json:"products"`
	Deals    int `json:"deals"`
	Total    int `json:"total"`
}

// Breakdown counts product vs deal lines.
func (o *Order) Breakdown() OrderBreakdown {
	b := OrderBreakdown{}
	for _, item := range o.Items {
		if item.ItemType == ItemTypeProduct {
			b.Products++
		} else {
			b.Deals++
		}
	}
	b.Total = b.Products + b.Deals
	return b
}

// ═══════════════════════════════════════════════════════════
// Request / Response Models
// ═══════════════════════════════════════════════════════════

// ChargesInput is the caller-supplied charge components; each defaults to 0
// and must be non-negative.
type ChargesInput struct {
	Delivery float64 `json:"delivery"`
	VAT      float64 `json:"vat"`
	Other    float64 `json:"other"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderPlacedResponse is the summary returned from a successful checkout.
type OrderPlacedResponse struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Subtotal      float64        `json:"subtotal"`
	Charges       Charges        `json:"charges"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Breakdown     OrderBreakdown `json:"breakdown"`
}
