package deal_controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

const uploadTimeout = 30 * time.Second

// parseDealProducts decodes the JSON-encoded constituent list and verifies
// every referenced product and variant actually exists, so a deal can never
// be created pointing at nothing.
func parseDealProducts(ctx context.Context, raw string) (models.DealProductList, error) {
	var constituents []models.DealProduct
	if err := json.Unmarshal([]byte(raw), &constituents); err != nil {
		return nil, errors.New("products must be a JSON array")
	}
	if len(constituents) < 2 {
		return nil, errors.New("a deal needs at least 2 products")
	}

	for _, dp := range constituents {
		var product models.Product
		if err := config.StoreGorm.WithContext(ctx).First(&product, "id = ?", dp.ProductID).Error; err != nil {
			return nil, fmt.Errorf("product %s not found", dp.ProductID)
		}
		if _, err := product.ResolveVariant(dp.VariantName); err != nil {
			return nil, fmt.Errorf("product %q has no variant %q", product.Name, dp.VariantName)
		}
	}

	return models.DealProductList(constituents), nil
}

// parseValidity parses the validity window. valid_from defaults to now when
// omitted; the window must not be inverted.
func parseValidity(fromRaw, untilRaw string) (time.Time, time.Time, error) {
	until, err := time.Parse(time.RFC3339, untilRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("valid_until must be an RFC3339 timestamp")
	}

	from := time.Now().UTC()
	if fromRaw != "" {
		from, err = time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("valid_from must be an RFC3339 timestamp")
		}
	}

	if !until.After(from) {
		return time.Time{}, time.Time{}, errors.New("valid_until must be after valid_from")
	}
	return from, until, nil
}
