package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/testutil"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int, variants ...models.Variant) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Category for " + name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := &models.Product{
		Name:        name,
		Description: "test product",
		Brand:       "TestBrand",
		CategoryID:  category.ID,
		CategorySub: "Test",
		Stock:       stock,
		Variants:    models.VariantList(variants),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedDeal(t *testing.T, db *gorm.DB, discount float64, active bool, until time.Time, constituents ...models.DealProduct) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		Title:       "Test Bundle",
		Description: "test deal",
		BannerImage: "https://example.com/banner.jpg",
		Products:    models.DealProductList(constituents),
		Discount:    discount,
		IsActive:    active,
		ValidFrom:   time.Now().UTC().Add(-time.Hour),
		ValidUntil:  until,
	}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}
	return deal
}

func TestAddItem_MergesDuplicateProductLines(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})

	if _, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 2,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Different case, same identity
	item, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 litre", Quantity: 3,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("merged quantity = %d, want 5", item.Quantity)
	}

	items, err := svc.Items(ctx, userID)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(items))
	}
}

func TestAddItem_DealReAddIsNoOp(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 50, models.Variant{Name: "Family Pack", Price: 180})
	deal := seedDeal(t, db, 30, true, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	first, err := svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}

	second, err := svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if second.ID != first.ID || second.Quantity != 1 {
		t.Fatalf("re-add should return the original line at quantity 1, got %+v", second)
	}

	items, _ := svc.Items(ctx, userID)
	if len(items) != 1 {
		t.Fatalf("expected 1 deal line, got %d", len(items))
	}
}

func TestAddItem_RejectsInvalidDeal(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 50, models.Variant{Name: "Family Pack", Price: 180})

	inactive := seedDeal(t, db, 30, false, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})
	expired := seedDeal(t, db, 30, true, time.Now().UTC().Add(-time.Minute),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	var dealErr *InvalidDealError

	_, err := svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: inactive.ID, Quantity: 1})
	if !errors.As(err, &dealErr) || dealErr.Reason != "inactive" {
		t.Fatalf("inactive deal: got %v", err)
	}

	_, err = svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: expired.ID, Quantity: 1})
	if !errors.As(err, &dealErr) || dealErr.Reason != "expired" {
		t.Fatalf("expired deal: got %v", err)
	}

	_, err = svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: uuid.Must(uuid.NewV7()), Quantity: 1})
	if !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("missing deal: got %v", err)
	}
}

func TestAddItem_UnknownProductAndVariant(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50,
		models.Variant{Name: "1 Litre", Price: 260},
		models.Variant{Name: "500ml", Price: 140})

	_, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: uuid.Must(uuid.NewV7()), VariantName: "1 Litre", Quantity: 1,
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product: got %v", err)
	}

	_, err = svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "2 Litre", Quantity: 1,
	})
	var notFound *models.VariantNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("missing variant: got %v", err)
	}
	if len(notFound.Available) != 2 {
		t.Fatalf("expected available variants in error, got %v", notFound.Available)
	}
}

func TestUpdateQuantity(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 50, models.Variant{Name: "Family Pack", Price: 180})
	deal := seedDeal(t, db, 30, true, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	productLine, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	dealLine, err := svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add deal: %v", err)
	}

	updated, err := svc.UpdateQuantity(ctx, userID, productLine.ID, 7)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", updated.Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, userID, productLine.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity: got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, userID, dealLine.ID, 3); !errors.Is(err, ErrDealQuantityFixed) {
		t.Fatalf("deal quantity update: got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, userID, uuid.Must(uuid.NewV7()), 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing line: got %v", err)
	}

	// Ownership: another user cannot touch this line
	if _, err := svc.UpdateQuantity(ctx, uuid.Must(uuid.NewV7()), productLine.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("cross-user update: got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})

	line, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	itemType, err := svc.RemoveItem(ctx, userID, line.ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if itemType != models.ItemTypeProduct {
		t.Fatalf("removed item type = %q", itemType)
	}
	if _, err := svc.RemoveItem(ctx, userID, line.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("double remove: got %v", err)
	}

	if _, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 1,
	}); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, _ := svc.Items(ctx, userID)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}

	// Clearing an already-empty cart is fine
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear empty: %v", err)
	}
}

func TestGetCart_DefensiveView(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	sale := 200.0
	milk := seedProduct(t, db, "Fresh Milk", 50,
		models.Variant{Name: "1 Litre", Price: 260, IsOnSale: true, SalePrice: &sale})
	biscuits := seedProduct(t, db, "Biscuits", 50, models.Variant{Name: "Family Pack", Price: 180})
	doomed := seedProduct(t, db, "Doomed", 50, models.Variant{Name: "Pack", Price: 90})

	deal := seedDeal(t, db, 80, true, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})
	expiring := seedDeal(t, db, 10, true, time.Now().UTC().Add(time.Minute),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	mustAdd := func(in AddItemInput) {
		t.Helper()
		if _, err := svc.AddItem(ctx, userID, in); err != nil {
			t.Fatalf("add %+v: %v", in, err)
		}
	}
	mustAdd(AddItemInput{ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 2})
	mustAdd(AddItemInput{ItemType: models.ItemTypeProduct, ProductID: doomed.ID, VariantName: "Pack", Quantity: 1})
	mustAdd(AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1})
	mustAdd(AddItemInput{ItemType: models.ItemTypeDeal, DealID: expiring.ID, Quantity: 1})

	// The product vanishes, the second deal expires
	if err := db.Delete(&models.Product{}, "id = ?", doomed.ID).Error; err != nil {
		t.Fatalf("delete product: %v", err)
	}
	svc.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }

	view, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}

	// doomed line dropped, expired deal kept but flagged
	if len(view.Cart) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(view.Cart))
	}

	var expiredLine *models.CartItemView
	for i := range view.Cart {
		if view.Cart[i].Deal != nil && view.Cart[i].Deal.IsExpired {
			expiredLine = &view.Cart[i]
		}
	}
	if expiredLine == nil {
		t.Fatal("expected an expired deal line in the view")
	}
	if expiredLine.Subtotal != 0 || expiredLine.Error == "" {
		t.Fatalf("expired line should be flagged with zero subtotal, got %+v", expiredLine)
	}

	// milk on sale: 2 x 200 = 400; valid deal: (200 + 180) - 80 = 300
	if view.Summary.Total != 700 {
		t.Fatalf("Total = %v, want 700", view.Summary.Total)
	}
	if view.Summary.Breakdown.Products != 1 || view.Summary.Breakdown.Deals != 2 {
		t.Fatalf("Breakdown = %+v", view.Summary.Breakdown)
	}
}

func TestSummary(t *testing.T) {
	db := testutil.SetupTestPostgres(t)
	svc := NewCartService(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	empty, err := svc.Summary(ctx, userID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !empty.IsEmpty {
		t.Fatal("expected empty summary")
	}

	milk := seedProduct(t, db, "Fresh Milk", 50, models.Variant{Name: "1 Litre", Price: 260})
	biscuits := seedProduct(t, db, "Biscuits", 50, models.Variant{Name: "Family Pack", Price: 180})
	deal := seedDeal(t, db, 60, true, time.Now().UTC().Add(24*time.Hour),
		models.DealProduct{ProductID: milk.ID, VariantName: "1 Litre"},
		models.DealProduct{ProductID: biscuits.ID, VariantName: "Family Pack"})

	if _, err := svc.AddItem(ctx, userID, AddItemInput{
		ItemType: models.ItemTypeProduct, ProductID: milk.ID, VariantName: "1 Litre", Quantity: 3,
	}); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := svc.AddItem(ctx, userID, AddItemInput{ItemType: models.ItemTypeDeal, DealID: deal.ID, Quantity: 1}); err != nil {
		t.Fatalf("add deal: %v", err)
	}

	summary, err := svc.Summary(ctx, userID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.IsEmpty {
		t.Fatal("expected non-empty summary")
	}
	// 3 x 260 + ((260 + 180) - 60)
	if summary.TotalPrice != 1160 {
		t.Fatalf("TotalPrice = %v, want 1160", summary.TotalPrice)
	}
	if summary.TotalItems != 4 || summary.ProductCount != 1 || summary.DealCount != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}
