package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

// Variant is a purchasable option of a product (size/flavor/pack) with its
// own price. SalePrice applies only while IsOnSale is set.
type Variant struct {
	Name      string   `json:"name" binding:"required" example:"500ml"`
	Price     float64  `json:"price" binding:"required,min=0" example:"250"`
	IsOnSale  bool     `json:"isOnSale"`
	SalePrice *float64 `json:"salePrice,omitempty" binding:"omitempty,min=0"`
}

// CurrentPrice returns the sale price while the variant is on sale,
// otherwise the base price.
func (v Variant) CurrentPrice() float64 {
	if v.IsOnSale && v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

// Create custom types for slices (so we can add methods)
type (
	VariantList []Variant
	ImageList   []string
)

func (v VariantList) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *VariantList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan VariantList: not []byte")
	}
	return json.Unmarshal(bytes, v)
}

func (i ImageList) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *ImageList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ImageList: not []byte")
	}
	return json.Unmarshal(bytes, i)
}

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID           uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string      `json:"name" gorm:"not null;index"`
	Description  string      `json:"description" gorm:"not null"`
	Brand        string      `json:"brand" gorm:"not null;index"`
	CategoryID   uuid.UUID   `json:"category_id" gorm:"type:uuid;not null;index:idx_products_category"`
	CategorySub  string      `json:"category_sub" gorm:"not null"`
	Category     *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Images       ImageList   `json:"images" gorm:"type:jsonb;not null;default:'[]'"`
	Stock        int         `json:"stock" gorm:"not null;check:stock >= 0"`
	Variants     VariantList `json:"variants" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`

	// Computed pricing fields, populated by AfterFind
	PriceRange    string  `json:"price_range,omitempty" gorm:"-"`
	StartingPrice float64 `json:"starting_price,omitempty" gorm:"-"`
	BestPrice     float64 `json:"best_price,omitempty" gorm:"-"`
	HasActiveSale bool    `json:"has_active_sale" gorm:"-"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// AfterFind hook - populate derived pricing from variants
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.RefreshPricing()
	return nil
}

func (Product) TableName() string {
	return "products"
}

// ═══════════════════════════════════════════════════════════
// Variant resolution & derived pricing
// ═══════════════════════════════════════════════════════════

// VariantNotFoundError reports a failed variant lookup together with the
// variant names the product actually has, so the caller can surface them.
type VariantNotFoundError struct {
	ProductName string
	VariantName string
	Available   []string
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("variant %q not found for product %q", e.VariantName, e.ProductName)
}

// ResolveVariant finds a variant by name, case-insensitively.
func (p *Product) ResolveVariant(name string) (*Variant, error) {
	for i := range p.Variants {
		if strings.EqualFold(p.Variants[i].Name, name) {
			return &p.Variants[i], nil
		}
	}
	return nil, &VariantNotFoundError{
		ProductName: p.Name,
		VariantName: name,
		Available:   p.VariantNames(),
	}
}

// ResolvePrice returns the current effective price of the named variant.
func (p *Product) ResolvePrice(variantName string) (float64, error) {
	variant, err := p.ResolveVariant(variantName)
	if err != nil {
		return 0, err
	}
	return variant.CurrentPrice(), nil
}

func (p *Product) VariantNames() []string {
	names := make([]string, len(p.Variants))
	for i, v := range p.Variants {
		names[i] = v.Name
	}
	return names
}

// RefreshPricing recomputes the derived pricing fields from the variants.
// Prices are always derived on read, never stored, so variant edits can't
// leave stale values behind.
func (p *Product) RefreshPricing() {
	if len(p.Variants) == 0 {
		p.PriceRange = ""
		p.StartingPrice = 0
		p.BestPrice = 0
		p.HasActiveSale = false
		return
	}

	min := p.Variants[0].CurrentPrice()
	max := min
	hasSale := p.Variants[0].IsOnSale
	for _, v := range p.Variants[1:] {
		price := v.CurrentPrice()
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
		if v.IsOnSale {
			hasSale = true
		}
	}

	p.StartingPrice = min
	p.BestPrice = min
	p.HasActiveSale = hasSale
	if min == max {
		p.PriceRange = fmt.Sprintf("Rs %g", min)
	} else {
		p.PriceRange = fmt.Sprintf("Rs %g - Rs %g", min, max)
	}
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	Name        string    `form:"name" binding:"required"`
	Description string    `form:"description" binding:"required"`
	Brand       string    `form:"brand" binding:"required"`
	CategoryID  uuid.UUID `form:"category_id" binding:"required"`
	CategorySub string    `form:"category_sub" binding:"required"`
	Stock       int       `form:"stock" binding:"min=0"`
	// JSON-encoded []Variant, sent alongside the image files
	Variants string `form:"variants" binding:"required"`
}
