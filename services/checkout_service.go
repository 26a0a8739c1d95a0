package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// CheckoutService converts a cart into an immutable order: validate stock
// and deal availability, freeze prices, then commit the order insert, the
// stock decrements, and the cart clear as one transaction.
type CheckoutService struct {
	db       *gorm.DB
	uploader Uploader
	notifier Notifier
	now      func() time.Time
}

var checkoutService *CheckoutService

func InitCheckoutService(db *gorm.DB, uploader Uploader, notifier Notifier) {
	checkoutService = NewCheckoutService(db, uploader, notifier)
}

func GetCheckoutService() *CheckoutService {
	return checkoutService
}

func NewCheckoutService(db *gorm.DB, uploader Uploader, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		db:       db,
		uploader: uploader,
		notifier: notifier,
		now:      time.Now,
	}
}

// CheckoutInput carries the caller-supplied half of an order: how it is
// paid, the extra charges, and the receipt image for online payments.
type CheckoutInput struct {
	PaymentMethod string
	Charges       models.ChargesInput
	Receipt       *multipart.FileHeader
}

// Checkout runs the full validate → price → commit sequence for one user.
// On any failure nothing is mutated: the cart, stock, and order table are
// exactly as before and the checkout is safe to retry.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*models.Order, error) {
	if in.PaymentMethod != models.PaymentMethodCOD && in.PaymentMethod != models.PaymentMethodOnline {
		return nil, ErrInvalidPaymentMethod
	}

	var cart []models.CartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cart).Error; err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// ── Validating ──
	// Stock and deal validity are read fresh here, but the authoritative
	// guard is the conditional decrement at commit time: this pass exists to
	// report every violation at once instead of failing on the first.
	lines, err := s.validateCart(ctx, cart)
	if err != nil {
		return nil, err
	}

	// ── Pricing ──
	orderItems, subtotal, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	charges, err := buildCharges(in.Charges)
	if err != nil {
		return nil, err
	}
	total := subtotal + charges.Total

	var receiptURL *string
	if in.PaymentMethod == models.PaymentMethodOnline {
		if in.Receipt == nil {
			return nil, ErrReceiptRequired
		}
		url, err := s.uploadReceipt(ctx, userID, in.Receipt)
		if err != nil {
			return nil, fmt.Errorf("failed to store payment receipt: %w", err)
		}
		receiptURL = &url
	}

	// ── Committing ──
	order := &models.Order{
		UserID:         userID,
		Items:          orderItems,
		Subtotal:       subtotal,
		Charges:        charges,
		Total:          total,
		PaymentMethod:  in.PaymentMethod,
		PaymentReceipt: receiptURL,
		Status:         models.OrderStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			if line.item.ItemType == models.ItemTypeProduct {
				if err := s.decrementStock(tx, line.product.ID, line.item.Quantity); err != nil {
					return err
				}
				continue
			}
			// A deal consumes exactly 1 unit of each constituent product,
			// regardless of the line's (always 1) quantity.
			for _, dp := range line.deal.Products {
				if err := s.decrementStock(tx, dp.ProductID, 1); err != nil {
					return err
				}
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	// ── Committed ──
	// Best-effort admin push, decoupled from the response.
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		NotifyAdmins(notifyCtx, s.notifier, "New Order",
			fmt.Sprintf("Order placed - Total: Rs %.2f", total))
	}()

	log.Printf("✅ Order %s placed for user %s - Total: Rs %.2f", order.ID, userID, total)
	return order, nil
}

// cartLine pairs a cart item with its resolved backing entity.
type cartLine struct {
	item    models.CartItem
	product *models.Product
	deal    *models.Deal
}

// validateCart collects every stock shortfall and invalid deal before
// reporting, so one fix-and-resubmit round trip covers the whole cart.
func (s *CheckoutService) validateCart(ctx context.Context, cart []models.CartItem) ([]cartLine, error) {
	now := s.now()
	availability := &AvailabilityError{}
	lines := make([]cartLine, 0, len(cart))

	for _, item := range cart {
		switch item.ItemType {
		case models.ItemTypeProduct:
			var product models.Product
			if err := s.db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					availability.InsufficientStock = append(availability.InsufficientStock, StockShortfall{
						ProductName:       "Unknown Product",
						VariantName:       derefString(item.VariantName),
						RequestedQuantity: item.Quantity,
					})
					continue
				}
				return nil, err
			}

			if product.Stock < item.Quantity {
				availability.InsufficientStock = append(availability.InsufficientStock, StockShortfall{
					ProductName:       product.Name,
					VariantName:       derefString(item.VariantName),
					RequestedQuantity: item.Quantity,
					AvailableStock:    product.Stock,
				})
				continue
			}

			lines = append(lines, cartLine{item: item, product: &product})

		case models.ItemTypeDeal:
			var deal models.Deal
			if err := s.db.WithContext(ctx).First(&deal, "id = ?", item.DealID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					availability.InvalidDeals = append(availability.InvalidDeals, InvalidDealItem{
						DealTitle: "Unknown Deal",
						Issue:     DealIssueMissing,
					})
					continue
				}
				return nil, err
			}

			if !deal.IsValidAt(now) {
				availability.InvalidDeals = append(availability.InvalidDeals, InvalidDealItem{
					DealTitle: deal.Title,
					Issue:     DealIssueInvalid,
				})
				continue
			}

			lines = append(lines, cartLine{item: item, deal: &deal})
		}
	}

	if availability.HasViolations() {
		return nil, availability
	}
	return lines, nil
}

// priceLines freezes each line's price at this moment. Deal lines also
// snapshot their constituent identities so the order stays interpretable if
// the deal is later edited or deleted.
func (s *CheckoutService) priceLines(ctx context.Context, lines []cartLine) (models.OrderItemList, float64, error) {
	var subtotal float64
	items := make(models.OrderItemList, 0, len(lines))

	for _, line := range lines {
		if line.item.ItemType == models.ItemTypeProduct {
			price, err := line.product.ResolvePrice(*line.item.VariantName)
			if err != nil {
				return nil, 0, err
			}
			subtotal += price * float64(line.item.Quantity)

			items = append(items, models.OrderItem{
				ItemType:    models.ItemTypeProduct,
				ProductID:   &line.product.ID,
				VariantName: *line.item.VariantName,
				Price:       price,
				Quantity:    line.item.Quantity,
			})
			continue
		}

		constituents, err := s.dealConstituents(ctx, line.deal)
		if err != nil {
			return nil, 0, err
		}
		pricing, err := line.deal.PricingFromProducts(constituents)
		if err != nil {
			return nil, 0, err
		}
		subtotal += pricing.DealPrice

		dealProducts := make([]models.OrderDealProduct, 0, len(line.deal.Products))
		for _, dp := range line.deal.Products {
			dealProducts = append(dealProducts, models.OrderDealProduct{
				ProductID:   dp.ProductID,
				VariantName: dp.VariantName,
			})
		}

		items = append(items, models.OrderItem{
			ItemType:     models.ItemTypeDeal,
			DealID:       &line.deal.ID,
			DealPrice:    pricing.DealPrice,
			DealProducts: dealProducts,
			Quantity:     1,
		})
	}

	return items, subtotal, nil
}

func (s *CheckoutService) dealConstituents(ctx context.Context, deal *models.Deal) (map[uuid.UUID]*models.Product, error) {
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

// decrementStock is the oversell guard: the decrement only applies when
// enough stock is still there, so two checkouts racing the same last unit
// cannot both pass. RowsAffected == 0 means this checkout lost the race (or
// stock moved since validation) and the whole transaction rolls back.
func (s *CheckoutService) decrementStock(tx *gorm.DB, productID uuid.UUID, qty int) error {
	res := tx.Exec(`
UPDATE products
SET stock = stock - @q,
    updated_at = now()
WHERE id = @pid
  AND stock >= @q
`, map[string]any{
		"pid": productID,
		"q":   qty,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		shortfall := StockShortfall{ProductName: "Unknown Product", RequestedQuantity: qty}
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err == nil {
			shortfall.ProductName = product.Name
			shortfall.AvailableStock = product.Stock
		}
		return &AvailabilityError{InsufficientStock: []StockShortfall{shortfall}}
	}
	return nil
}

func (s *CheckoutService) uploadReceipt(ctx context.Context, userID uuid.UUID, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	filename := fmt.Sprintf("receipt_%s_%d", userID, s.now().UnixMilli())
	return s.uploader.UploadImage(ctx, file, filename, "receipts")
}

// buildCharges normalizes the caller-supplied charge components. Each
// defaults to 0; negatives are rejected rather than clamped.
func buildCharges(in models.ChargesInput) (models.Charges, error) {
	if in.Delivery < 0 || in.VAT < 0 || in.Other < 0 {
		return models.Charges{}, ErrInvalidCharges
	}
	return models.Charges{
		Delivery: in.Delivery,
		VAT:      in.VAT,
		Other:    in.Other,
		Total:    in.Delivery + in.VAT + in.Other,
	}, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
