package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ItemTypeProduct = "product"
	ItemTypeDeal    = "deal"
)

// CartItem is one line of a user's cart. It is a tagged union: exactly one
// of ProductID/DealID is set, matching ItemType. Deal lines are pinned to
// quantity 1.
type CartItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_cart_items_user"`
	ItemType    string     `json:"item_type" gorm:"not null;check:item_type IN ('product', 'deal')"`
	ProductID   *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid"`
	VariantName *string    `json:"variant_name,omitempty"`
	DealID      *uuid.UUID `json:"deal_id,omitempty" gorm:"type:uuid"`
	Quantity    int        `json:"quantity" gorm:"not null;default:1;check:quantity >= 1"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type AddToCartRequest struct {
	ItemType    string `json:"itemType" binding:"required,oneof=product deal"`
	ProductID   string `json:"productId"`
	VariantName string `json:"variantName"`
	DealID      string `json:"dealId"`
	Quantity    int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ═══════════════════════════════════════════════════════════
// Cart views (detail-expanded, priced on read)
// ═══════════════════════════════════════════════════════════

type CartProductDetail struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Images ImageList `json:"images"`
	Brand  string    `json:"brand"`
}

type CartVariantDetail struct {
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	IsOnSale     bool     `json:"isOnSale"`
	SalePrice    *float64 `json:"salePrice,omitempty"`
	CurrentPrice float64  `json:"currentPrice"`
}

type CartDealProductDetail struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Images      ImageList `json:"images"`
	Brand       string    `json:"brand"`
	VariantName string    `json:"variantName"`
}

type CartDealDetail struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	BannerImage string                  `json:"bannerImage,omitempty"`
	Products    []CartDealProductDetail `json:"products,omitempty"`
	Discount    float64                 `json:"discount,omitempty"`
	ValidUntil  time.Time               `json:"validUntil,omitempty"`
	IsExpired   bool                    `json:"isExpired,omitempty"`
	DealPricing
}

// CartItemView is one priced line of the expanded cart. Lines whose
// backing product/variant/deal vanished are dropped from the view, not
// surfaced as errors.
type CartItemView struct {
	ID       uuid.UUID          `json:"id"`
	ItemType string             `json:"itemType"`
	Product  *CartProductDetail `json:"product,omitempty"`
	Variant  *CartVariantDetail `json:"variant,omitempty"`
	Deal     *CartDealDetail    `json:"deal,omitempty"`
	Quantity int                `json:"quantity"`
	Subtotal float64            `json:"subtotal"`
	Error    string             `json:"error,omitempty"`
}

type CartBreakdown struct {
	Products int `json:"products"`
	Deals    int `json:"deals"`
}

type CartSummary struct {
	ItemCount     int           `json:"itemCount"`
	TotalQuantity int           `json:"totalQuantity"`
	Total         float64       `json:"total"`
	Breakdown     CartBreakdown `json:"breakdown"`
}

type CartView struct {
	Cart    []CartItemView `json:"cart"`
	Summary CartSummary    `json:"summary"`
}

// QuickSummary is the lightweight cart overview (no detail expansion).
type QuickSummary struct {
	TotalItems   int     `json:"totalItems"`
	TotalPrice   float64 `json:"totalPrice"`
	ProductCount int     `json:"productCount"`
	DealCount    int     `json:"dealCount"`
	IsEmpty      bool    `json:"isEmpty"`
}
