package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealProduct references one constituent of a bundle by product and
// variant name.
type DealProduct struct {
	ProductID   uuid.UUID `json:"productId" binding:"required"`
	VariantName string    `json:"variantName" binding:"required"`
}

type DealProductList []DealProduct

func (d DealProductList) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *DealProductList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan DealProductList: not []byte")
	}
	return json.Unmarshal(bytes, d)
}

// Deal is an admin-curated bundle of at least 2 product variants sold at an
// absolute discount off their summed current prices, active only inside its
// validity window.
type Deal struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"not null"`
	BannerImage string          `json:"banner_image" gorm:"not null"`
	Products    DealProductList `json:"products" gorm:"type:jsonb;not null;default:'[]'"`
	Discount    float64         `json:"discount" gorm:"not null;check:discount >= 0"`
	IsActive    bool            `json:"is_active" gorm:"not null;default:true;index"`
	ValidFrom   time.Time       `json:"valid_from" gorm:"not null;index"`
	ValidUntil  time.Time       `json:"valid_until" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Deal) TableName() string {
	return "deals"
}

// IsValidAt reports whether the deal can be sold at the given instant.
// Validity is re-evaluated at every use (add-to-cart, cart view, checkout)
// and never cached, since it can flip between reads.
func (d *Deal) IsValidAt(now time.Time) bool {
	return d.IsActive && !now.Before(d.ValidFrom) && !now.After(d.ValidUntil)
}

// DealPricing is the price breakdown of a deal derived from the current
// prices of its constituents. Computed on read, never stored.
type DealPricing struct {
	OriginalPrice     float64 `json:"originalPrice"`
	DealPrice         float64 `json:"dealPrice"`
	Savings           float64 `json:"savings"`
	SavingsPercentage int     `json:"savingsPercentage"`
}

// Pricing derives the breakdown from the summed current price of the
// constituents. The deal price floors at 0 when the discount exceeds the
// sum; the percentage guards against a zero original price.
func (d *Deal) Pricing(originalPrice float64) DealPricing {
	dealPrice := math.Max(0, originalPrice-d.Discount)
	savings := originalPrice - dealPrice

	percentage := 0
	if originalPrice > 0 {
		percentage = int(math.Round(savings / originalPrice * 100))
	}

	return DealPricing{
		OriginalPrice:     originalPrice,
		DealPrice:         dealPrice,
		Savings:           savings,
		SavingsPercentage: percentage,
	}
}

// PricingFromProducts resolves every constituent variant against the
// supplied products and derives the breakdown. Fails if any referenced
// product or variant is missing; callers decide whether that skips the deal
// or aborts the request.
func (d *Deal) PricingFromProducts(products map[uuid.UUID]*Product) (DealPricing, error) {
	var original float64
	for _, dp := range d.Products {
		product, ok := products[dp.ProductID]
		if !ok {
			return DealPricing{}, errors.New("deal references a missing product")
		}
		price, err := product.ResolvePrice(dp.VariantName)
		if err != nil {
			return DealPricing{}, err
		}
		original += price
	}
	return d.Pricing(original), nil
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type DealRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	// JSON-encoded []DealProduct, sent alongside the banner file
	Products   string  `form:"products" binding:"required"`
	Discount   float64 `form:"discount" binding:"required,min=0"`
	ValidFrom  string  `form:"valid_from"`
	ValidUntil string  `form:"valid_until" binding:"required"`
}
