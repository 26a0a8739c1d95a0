package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/testutil"
)

func mustAddToCart(t *testing.T, svc *CartService, userID uuid.UUID, in AddItemInput) {
	t.Helper()
	if _, err := svc.AddItem(context.Background(), userID, in); err != nil {
		t.Fatalf("add to cart %+v: %v", in, err)
	}
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.Stock
}

func cartLineCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()
	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count cart lines: %v", err)
	}
	return int(count)
}

func orderCount(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return int(count)
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCheckoutService(db, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.Must(uuid.NewV7()), CheckoutInput{
		PaymentMethod: models.PaymentMethodCOD,
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("got %v, want ErrEmptyCart", err)
	}
}

func TestCheckout_RejectsUnknownPaymentMethod(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCheckoutService(db, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.Must(uuid.NewV7()), CheckoutInput{
		PaymentMethod: "cheque",
	})
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("got %v, want ErrInvalidPaymentMethod", err)
	}
}

func TestCheckout_ProductOrderTotals(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	juice := seedProduct(t, db, "Apple Juice", 10, models.Variant{Name: "250ml", Price: 10})
	chips := seedProduct(t, db, "Potato Chips", 8, models.Variant{Name: "Large", Price: 15})

	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: juice.ID, VariantName: "250ml", Quantity: 2})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: chips.ID, VariantName: "Large", Quantity: 1})

	order, err := svc.Checkout(ctx, userID, CheckoutInput{
		PaymentMethod: models.PaymentMethodCOD,
		Charges:       models.ChargesInput{Delivery: 5, VAT: 2},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.Subtotal != 35 {
		t.Fatalf("Subtotal = %v, want 35", order.Subtotal)
	}
	if order.Charges.Total != 7 || order.Total != 42 {
		t.Fatalf("Charges.Total = %v, Total = %v, want 7 and 42", order.Charges.Total, order.Total)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("Status = %q, want pending", order.Status)
	}
	if order.PaymentReceipt != nil {
		t.Fatalf("cod order should have no receipt, got %v", *order.PaymentReceipt)
	}
	if len(order.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(order.Items))
	}

	if got := productStock(t, db, juice.ID); got != 8 {
		t.Fatalf("juice stock = %d, want 8", got)
	}
	if got := productStock(t, db, chips.ID); got != 7 {
		t.Fatalf("chips stock = %d, want 7", got)
	}
	if got := cartLineCount(t, db, userID); got != 0 {
		t.Fatalf("cart lines after checkout = %d, want 0", got)
	}

	// The order is durable, not just returned
	var persisted models.Order
	if err := db.First(&persisted, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("load persisted order: %v", err)
	}
	if persisted.Total != 42 {
		t.Fatalf("persisted Total = %v, want 42", persisted.Total)
	}
}

func TestCheckout_DealConsumesOneUnitPerConstituent(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 5, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 5, models.Variant{Name: "Family Pack", Price: 180})
	deal := seedDeal(t, db, 80, true, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1})

	order, err := svc.Checkout(ctx, userID, CheckoutInput{PaymentMethod: models.PaymentMethodCOD})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	// (260 + 180) - 80
	if order.Subtotal != 360 || order.Total != 360 {
		t.Fatalf("Subtotal = %v, Total = %v, want 360", order.Subtotal, order.Total)
	}

	if len(order.Items) != 1 {
		t.Fatalf("Items = %d, want 1", len(order.Items))
	}
	item := order.Items[0]
	if item.ItemType != models.ItemTypeDeal || item.Quantity != 1 || item.DealPrice != 360 {
		t.Fatalf("deal item = %+v", item)
	}
	if len(item.DealProducts) != 2 {
		t.Fatalf("DealProducts = %d, want 2 frozen constituents", len(item.DealProducts))
	}

	if got := productStock(t, db, milk.ID); got != 4 {
		t.Fatalf("milk stock = %d, want 4", got)
	}
	if got := productStock(t, db, biscuits.ID); got != 4 {
		t.Fatalf("biscuits stock = %d, want 4", got)
	}
}

func TestCheckout_OnlineRequiresReceipt(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	juice := seedProduct(t, db, "Apple Juice", 10, models.Variant{Name: "250ml", Price: 10})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: juice.ID, VariantName: "250ml", Quantity: 2})

	_, err := svc.Checkout(ctx, userID, CheckoutInput{PaymentMethod: models.PaymentMethodOnline})
	if !errors.Is(err, ErrReceiptRequired) {
		t.Fatalf("got %v, want ErrReceiptRequired", err)
	}

	// Nothing committed
	if got := productStock(t, db, juice.ID); got != 10 {
		t.Fatalf("stock changed to %d on failed checkout", got)
	}
	if got := cartLineCount(t, db, userID); got != 1 {
		t.Fatalf("cart lines = %d, want 1", got)
	}
	if got := orderCount(t, db); got != 0 {
		t.Fatalf("orders = %d, want 0", got)
	}
}

func TestCheckout_RejectsNegativeCharges(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	juice := seedProduct(t, db, "Apple Juice", 10, models.Variant{Name: "250ml", Price: 10})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: juice.ID, VariantName: "250ml", Quantity: 1})

	_, err := svc.Checkout(ctx, userID, CheckoutInput{
		PaymentMethod: models.PaymentMethodCOD,
		Charges:       models.ChargesInput{Delivery: -5},
	})
	if !errors.Is(err, ErrInvalidCharges) {
		t.Fatalf("got %v, want ErrInvalidCharges", err)
	}
}

func TestCheckout_CollectsAllViolations(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 1, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 0, models.Variant{Name: "Family Pack", Price: 180})
	deal := seedDeal(t, db, 80, true, time.Now().UTC().Add(time.Minute),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 3})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: biscuits.ID, VariantName: "Family Pack", Quantity: 1})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1})

	// The deal expires after it was added
	if err := db.Model(&models.Deal{}).Where("id = ?", deal.ID).
		Update("valid_until", time.Now().UTC().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire deal: %v", err)
	}

	_, err := svc.Checkout(ctx, userID, CheckoutInput{PaymentMethod: models.PaymentMethodCOD})

	var availability *AvailabilityError
	if !errors.As(err, &availability) {
		t.Fatalf("got %v, want *AvailabilityError", err)
	}
	if len(availability.InsufficientStock) != 2 {
		t.Fatalf("InsufficientStock = %d, want both shortfalls reported at once", len(availability.InsufficientStock))
	}
	if len(availability.InvalidDeals) != 1 {
		t.Fatalf("InvalidDeals = %d, want 1", len(availability.InvalidDeals))
	}
	if availability.InvalidDeals[0].Issue != DealIssueInvalid {
		t.Fatalf("deal issue = %q", availability.InvalidDeals[0].Issue)
	}

	if got := productStock(t, db, milk.ID); got != 1 {
		t.Fatalf("milk stock changed to %d on failed checkout", got)
	}
	if got := cartLineCount(t, db, userID); got != 3 {
		t.Fatalf("cart lines = %d, want 3", got)
	}
	if got := orderCount(t, db); got != 0 {
		t.Fatalf("orders = %d, want 0", got)
	}
}

func TestCheckout_RollsBackOnDecrementFailure(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	juice := seedProduct(t, db, "Apple Juice", 10, models.Variant{Name: "250ml", Price: 10})
	chips := seedProduct(t, db, "Potato Chips", 8, models.Variant{Name: "Large", Price: 15})

	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: juice.ID, VariantName: "250ml", Quantity: 2})
	mustAddToCart(t, cart, userID, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: chips.ID, VariantName: "Large", Quantity: 1})

	// Force the second decrement to fail mid-transaction
	if err := db.Exec(`
		CREATE FUNCTION block_stock_update() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'stock update blocked';
		END;
		$$ LANGUAGE plpgsql
	`).Error; err != nil {
		t.Fatalf("create trigger function: %v", err)
	}
	if err := db.Exec(fmt.Sprintf(`
		CREATE TRIGGER block_stock BEFORE UPDATE OF stock ON products
		FOR EACH ROW WHEN (NEW.id = '%s')
		EXECUTE FUNCTION block_stock_update()
	`, chips.ID)).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	_, err := svc.Checkout(ctx, userID, CheckoutInput{PaymentMethod: models.PaymentMethodCOD})
	if err == nil {
		t.Fatal("expected checkout to fail")
	}

	// The earlier order insert and juice decrement rolled back with it
	if got := orderCount(t, db); got != 0 {
		t.Fatalf("orders = %d, want 0 after rollback", got)
	}
	if got := productStock(t, db, juice.ID); got != 10 {
		t.Fatalf("juice stock = %d, want 10 after rollback", got)
	}
	if got := cartLineCount(t, db, userID); got != 2 {
		t.Fatalf("cart lines = %d, want 2 after rollback", got)
	}
}

func TestCheckout_ConcurrentOversell(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db, nil, nil)
	ctx := context.Background()

	lastUnit := seedProduct(t, db, "Last Unit", 1, models.Variant{Name: "Single", Price: 99})

	userA := uuid.Must(uuid.NewV7())
	userB := uuid.Must(uuid.NewV7())
	mustAddToCart(t, cart, userA, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: lastUnit.ID, VariantName: "Single", Quantity: 1})
	mustAddToCart(t, cart, userB, AddItemInput{ItemType: models.ItemTypeProduct, ProductID: lastUnit.ID, VariantName: "Single", Quantity: 1})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userID := range []uuid.UUID{userA, userB} {
		wg.Add(1)
		go func(i int, userID uuid.UUID) {
			defer wg.Done()
			_, results[i] = svc.Checkout(ctx, userID, CheckoutInput{PaymentMethod: models.PaymentMethodCOD})
		}(i, userID)
	}
	wg.Wait()

	var successes, losses int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var availability *AvailabilityError
		if !errors.As(err, &availability) {
			t.Fatalf("loser got %v, want *AvailabilityError", err)
		}
		losses++
	}
	if successes != 1 || losses != 1 {
		t.Fatalf("successes = %d, losses = %d, want exactly one of each", successes, losses)
	}

	if got := productStock(t, db, lastUnit.ID); got != 0 {
		t.Fatalf("final stock = %d, want 0", got)
	}
	if got := orderCount(t, db); got != 1 {
		t.Fatalf("orders = %d, want 1", got)
	}
}
