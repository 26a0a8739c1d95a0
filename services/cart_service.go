package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// CartService owns the per-user cart aggregate: add with de-duplication,
// quantity updates, removal, and the priced detail views.
type CartService struct {
	db  *gorm.DB
	now func() time.Time
}

var cartService *CartService

func InitCartService(db *gorm.DB) {
	cartService = NewCartService(db)
}

func GetCartService() *CartService {
	return cartService
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db, now: time.Now}
}

// AddItemInput is the validated shape of an add-to-cart request.
type AddItemInput struct {
	ItemType    string
	ProductID   uuid.UUID
	VariantName string
	DealID      uuid.UUID
	Quantity    int
}

// AddItem validates the referenced product/variant or deal and merges the
// line into the cart. An existing line with the same identity has its
// quantity incremented instead of being duplicated; deal lines stay at
// quantity 1 no matter how often they are re-added.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*models.CartItem, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if in.ItemType == models.ItemTypeProduct {
		return s.addProductItem(ctx, userID, in)
	}
	return s.addDealItem(ctx, userID, in)
}

func (s *CartService) addProductItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*models.CartItem, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variant, err := product.ResolveVariant(in.VariantName)
	if err != nil {
		return nil, err
	}

	// Lookup-then-mutate: same product+variant merges into one line
	var existing models.CartItem
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND product_id = ? AND LOWER(variant_name) = LOWER(?)",
			userID, models.ItemTypeProduct, product.ID, variant.Name).
		First(&existing).Error
	if err == nil {
		existing.Quantity += in.Quantity
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		UserID:      userID,
		ItemType:    models.ItemTypeProduct,
		ProductID:   &product.ID,
		VariantName: &variant.Name,
		Quantity:    in.Quantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) addDealItem(ctx context.Context, userID uuid.UUID, in AddItemInput) (*models.CartItem, error) {
	var deal models.Deal
	if err := s.db.WithContext(ctx).First(&deal, "id = ?", in.DealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}

	if !deal.IsValidAt(s.now()) {
		reason := "expired"
		if !deal.IsActive {
			reason = "inactive"
		}
		return nil, &InvalidDealError{Reason: reason}
	}

	// Re-adding a deal is a quantity no-op, not an error
	var existing models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND deal_id = ?", userID, models.ItemTypeDeal, deal.ID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		UserID:   userID,
		ItemType: models.ItemTypeDeal,
		DealID:   &deal.ID,
		Quantity: 1, // deals are always quantity 1
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity changes a product line's quantity. Deal lines are fixed
// bundles and reject updates.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if item.ItemType == models.ItemTypeDeal {
		return nil, ErrDealQuantityFixed
	}

	item.Quantity = quantity
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one line from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (string, error) {
	var item models.CartItem
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCartItemNotFound
		}
		return "", err
	}

	if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
		return "", err
	}
	return item.ItemType, nil
}

// Clear empties the user's cart unconditionally.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// Items returns the raw cart lines, oldest first.
func (s *CartService) Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// GetCart builds the priced, detail-expanded cart view. Lines whose backing
// product, variant, or deal no longer exists are silently dropped; deal
// lines that exist but no longer validate are kept, flagged, and excluded
// from totals (so the shopper sees why the line died).
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	view := &models.CartView{Cart: []models.CartItemView{}}

	for _, item := range items {
		switch item.ItemType {
		case models.ItemTypeProduct:
			line, ok := s.productLine(ctx, item)
			if !ok {
				continue // product or variant gone, skip silently
			}
			view.Cart = append(view.Cart, *line)
			view.Summary.Total += line.Subtotal
			view.Summary.TotalQuantity += line.Quantity
			view.Summary.Breakdown.Products++

		case models.ItemTypeDeal:
			line, ok := s.dealLine(ctx, item, now)
			if !ok {
				continue // deal gone, skip silently
			}
			view.Cart = append(view.Cart, *line)
			view.Summary.Total += line.Subtotal
			view.Summary.TotalQuantity += line.Quantity
			view.Summary.Breakdown.Deals++
		}
	}

	view.Summary.ItemCount = len(view.Cart)
	return view, nil
}

func (s *CartService) productLine(ctx context.Context, item models.CartItem) (*models.CartItemView, bool) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
		return nil, false
	}

	variant, err := product.ResolveVariant(*item.VariantName)
	if err != nil {
		return nil, false
	}

	price := variant.CurrentPrice()
	return &models.CartItemView{
		ID:       item.ID,
		ItemType: models.ItemTypeProduct,
		Product: &models.CartProductDetail{
			ID:     product.ID,
			Name:   product.Name,
			Images: product.Images,
			Brand:  product.Brand,
		},
		Variant: &models.CartVariantDetail{
			Name:         variant.Name,
			Price:        variant.Price,
			IsOnSale:     variant.IsOnSale,
			SalePrice:    variant.SalePrice,
			CurrentPrice: price,
		},
		Quantity: item.Quantity,
		Subtotal: price * float64(item.Quantity),
	}, true
}

func (s *CartService) dealLine(ctx context.Context, item models.CartItem, now time.Time) (*models.CartItemView, bool) {
	var deal models.Deal
	if err := s.db.WithContext(ctx).First(&deal, "id = ?", item.DealID).Error; err != nil {
		return nil, false
	}

	if !deal.IsValidAt(now) {
		return &models.CartItemView{
			ID:       item.ID,
			ItemType: models.ItemTypeDeal,
			Deal: &models.CartDealDetail{
				ID:        deal.ID,
				Title:     deal.Title,
				IsExpired: true,
			},
			Quantity: 1,
			Subtotal: 0,
			Error:    "Deal has expired or is no longer active",
		}, true
	}

	products, err := s.dealConstituents(ctx, &deal)
	if err != nil {
		return nil, false
	}

	pricing, err := deal.PricingFromProducts(products)
	if err != nil {
		return nil, false // a constituent vanished, skip the line
	}

	detailProducts := make([]models.CartDealProductDetail, 0, len(deal.Products))
	for _, dp := range deal.Products {
		p := products[dp.ProductID]
		detailProducts = append(detailProducts, models.CartDealProductDetail{
			ID:          p.ID,
			Name:        p.Name,
			Images:      p.Images,
			Brand:       p.Brand,
			VariantName: dp.VariantName,
		})
	}

	return &models.CartItemView{
		ID:       item.ID,
		ItemType: models.ItemTypeDeal,
		Deal: &models.CartDealDetail{
			ID:          deal.ID,
			Title:       deal.Title,
			Description: deal.Description,
			BannerImage: deal.BannerImage,
			Products:    detailProducts,
			Discount:    deal.Discount,
			ValidUntil:  deal.ValidUntil,
			DealPricing: pricing,
		},
		Quantity: 1,
		Subtotal: pricing.DealPrice,
	}, true
}

// dealConstituents loads every product a deal references, keyed by id.
func (s *CartService) dealConstituents(ctx context.Context, deal *models.Deal) (map[uuid.UUID]*models.Product, error) {
	ids := make([]uuid.UUID, 0, len(deal.Products))
	for _, dp := range deal.Products {
		ids = append(ids, dp.ProductID)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// Summary is the quick cart overview without full detail expansion.
func (s *CartService) Summary(ctx context.Context, userID uuid.UUID) (*models.QuickSummary, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &models.QuickSummary{IsEmpty: len(items) == 0}

	for _, item := range items {
		switch item.ItemType {
		case models.ItemTypeProduct:
			var product models.Product
			if err := s.db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				continue
			}
			variant, err := product.ResolveVariant(*item.VariantName)
			if err != nil {
				continue
			}
			summary.TotalPrice += variant.CurrentPrice() * float64(item.Quantity)
			summary.TotalItems += item.Quantity
			summary.ProductCount++

		case models.ItemTypeDeal:
			var deal models.Deal
			if err := s.db.WithContext(ctx).First(&deal, "id = ?", item.DealID).Error; err != nil {
				continue
			}
			if !deal.IsValidAt(now) {
				continue
			}
			products, err := s.dealConstituents(ctx, &deal)
			if err != nil {
				continue
			}
			pricing, err := deal.PricingFromProducts(products)
			if err != nil {
				continue
			}
			summary.TotalPrice += pricing.DealPrice
			summary.TotalItems++
			summary.DealCount++
		}
	}

	return summary, nil
}
