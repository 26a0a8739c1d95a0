package models

import "testing"

func TestOrderAggregates(t *testing.T) {
	t.Parallel()

	order := Order{Items: OrderItemList{
		{ItemType: ItemTypeProduct, VariantName: "1 Litre", Price: 260, Quantity: 2},
		{ItemType: ItemTypeProduct, VariantName: "500ml", Price: 140, Quantity: 1},
		{ItemType: ItemTypeDeal, DealPrice: 360, Quantity: 1},
	}}

	if got := order.ItemCount(); got != 3 {
		t.Fatalf("ItemCount() = %d, want 3", got)
	}
	if got := order.TotalQuantity(); got != 4 {
		t.Fatalf("TotalQuantity() = %d, want 4", got)
	}

	breakdown := order.Breakdown()
	if breakdown.Products != 2 || breakdown.Deals != 1 || breakdown.Total != 3 {
		t.Fatalf("Breakdown() = %+v", breakdown)
	}
}

func TestOrderItemTotal(t *testing.T) {
	t.Parallel()

	product := OrderItem{ItemType: ItemTypeProduct, Price: 140, Quantity: 3}
	if got := product.Total(); got != 420 {
		t.Fatalf("product Total() = %v, want 420", got)
	}

	// Deal lines are priced per bundle, not per quantity
	deal := OrderItem{ItemType: ItemTypeDeal, DealPrice: 360, Quantity: 1}
	if got := deal.Total(); got != 360 {
		t.Fatalf("deal Total() = %v, want 360", got)
	}
}

func TestValidOrderStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted} {
		if !ValidOrderStatus(status) {
			t.Fatalf("ValidOrderStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"cancelled", "shipped", "", "PENDING"} {
		if ValidOrderStatus(status) {
			t.Fatalf("ValidOrderStatus(%q) = true", status)
		}
	}
}
