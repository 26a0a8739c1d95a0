package deal_controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// DealWithPricing is a deal plus its live computed pricing. Pricing is nil
// when a constituent product has vanished and the bundle can no longer be
// priced.
type DealWithPricing struct {
	models.Deal
	Pricing *models.DealPricing `json:"pricing,omitempty"`
}

// GetDeals godoc
// @Summary List currently valid deals
// @Description Active deals inside their validity window, each with computed pricing (original price, deal price, savings).
// @Tags Store - Deals
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/deals [get]
func GetDeals(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	now := time.Now().UTC()

	var deals []models.Deal
	if err := config.StoreGorm.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("created_at DESC").
		Find(&deals).Error; err != nil {
		log.Printf("[store.deals] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	result := make([]DealWithPricing, 0, len(deals))
	for i := range deals {
		result = append(result, withPricing(ctx, &deals[i]))
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deals fetched successfully", result))
}

func withPricing(ctx context.Context, deal *models.Deal) DealWithPricing {
	view := DealWithPricing{Deal: *deal}

	products, err := dealConstituents(ctx, deal)
	if err != nil {
		log.Printf("[store.deals] ⚠️ Failed to load products for deal %s: %v", deal.ID, err)
		return view
	}

	pricing, err := deal.PricingFromProducts(products)
	if err != nil {
		log.Printf("[store.deals] ⚠️ Cannot price deal %s: %v", deal.ID, err)
		return view
	}

	view.Pricing = &pricing
	return view
}

func dealConstituents(ctx context.Context, deal *models.Deal) (map[uuid.UUID]*models.Product, error) {
	ids := make([]uuid.UUID, 0, len(deal.Products))
	for _, dp := range deal.Products {
		ids = append(ids, dp.ProductID)
	}

	var products []models.Product
	if err := config.StoreGorm.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
