package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignProduct puts one product on a promotional sale price for the
// duration of the campaign.
type CampaignProduct struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	SalePrice float64   `json:"salePrice" binding:"required,min=0"`
}

type CampaignProductList []CampaignProduct

func (c CampaignProductList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CampaignProductList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan CampaignProductList: not []byte")
	}
	return json.Unmarshal(bytes, c)
}

// Campaign is a time-boxed promotional banner with per-product sale prices.
type Campaign struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string              `json:"title" gorm:"not null"`
	Banner    string              `json:"banner" gorm:"not null"`
	StartDate time.Time           `json:"start_date" gorm:"not null"`
	EndDate   time.Time           `json:"end_date" gorm:"not null"`
	IsActive  bool                `json:"is_active" gorm:"not null;default:false;index"`
	Products  CampaignProductList `json:"products" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Campaign) TableName() string {
	return "campaigns"
}

type CampaignRequest struct {
	Title     string `form:"title" binding:"required"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

type AddCampaignProductsRequest struct {
	Products []CampaignProduct `json:"products" binding:"required,min=1,dive"`
}
