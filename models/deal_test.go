package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDealPricing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		original       float64
		discount       float64
		wantDealPrice  float64
		wantSavings    float64
		wantPercentage int
	}{
		{name: "regular discount", original: 100, discount: 30, wantDealPrice: 70, wantSavings: 30, wantPercentage: 30},
		{name: "discount exceeds price floors at zero", original: 100, discount: 150, wantDealPrice: 0, wantSavings: 100, wantPercentage: 100},
		{name: "zero original price", original: 0, discount: 50, wantDealPrice: 0, wantSavings: 0, wantPercentage: 0},
		{name: "percentage rounds", original: 300, discount: 100, wantDealPrice: 200, wantSavings: 100, wantPercentage: 33},
		{name: "no discount", original: 250, discount: 0, wantDealPrice: 250, wantSavings: 0, wantPercentage: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deal := Deal{Discount: tt.discount}
			pricing := deal.Pricing(tt.original)

			if pricing.OriginalPrice != tt.original {
				t.Fatalf("OriginalPrice = %v, want %v", pricing.OriginalPrice, tt.original)
			}
			if pricing.DealPrice != tt.wantDealPrice {
				t.Fatalf("DealPrice = %v, want %v", pricing.DealPrice, tt.wantDealPrice)
			}
			if pricing.Savings != tt.wantSavings {
				t.Fatalf("Savings = %v, want %v", pricing.Savings, tt.wantSavings)
			}
			if pricing.SavingsPercentage != tt.wantPercentage {
				t.Fatalf("SavingsPercentage = %v, want %v", pricing.SavingsPercentage, tt.wantPercentage)
			}
		})
	}
}

func TestDealIsValidAt(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	deal := Deal{
		IsActive:   true,
		ValidFrom:  base.AddDate(0, 0, -1),
		ValidUntil: base.AddDate(0, 0, 1),
	}

	tests := []struct {
		name string
		deal Deal
		at   time.Time
		want bool
	}{
		{name: "inside window", deal: deal, at: base, want: true},
		{name: "at window start", deal: deal, at: deal.ValidFrom, want: true},
		{name: "at window end", deal: deal, at: deal.ValidUntil, want: true},
		{name: "before window", deal: deal, at: base.AddDate(0, 0, -2), want: false},
		{name: "after window", deal: deal, at: base.AddDate(0, 0, 2), want: false},
		{name: "inactive inside window", deal: Deal{IsActive: false, ValidFrom: deal.ValidFrom, ValidUntil: deal.ValidUntil}, at: base, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.deal.IsValidAt(tt.at); got != tt.want {
				t.Fatalf("IsValidAt(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestPricingFromProducts(t *testing.T) {
	t.Parallel()

	milkID := uuid.Must(uuid.NewV7())
	biscuitsID := uuid.Must(uuid.NewV7())

	milk := &Product{Name: "Fresh Milk", ID: milkID, Variants: VariantList{{Name: "1 Litre", Price: 260}}}
	biscuits := &Product{Name: "Biscuits", ID: biscuitsID, Variants: VariantList{{Name: "Family Pack", Price: 180}}}

	deal := Deal{
		Discount: 80,
		Products: DealProductList{
			{ProductID: milkID, VariantName: "1 Litre"},
			{ProductID: biscuitsID, VariantName: "Family Pack"},
		},
	}

	t.Run("sums constituent prices", func(t *testing.T) {
		t.Parallel()

		pricing, err := deal.PricingFromProducts(map[uuid.UUID]*Product{milkID: milk, biscuitsID: biscuits})
		if err != nil {
			t.Fatalf("PricingFromProducts: %v", err)
		}
		if pricing.OriginalPrice != 440 || pricing.DealPrice != 360 {
			t.Fatalf("got %+v, want original 440 deal 360", pricing)
		}
	})

	t.Run("missing constituent fails", func(t *testing.T) {
		t.Parallel()

		if _, err := deal.PricingFromProducts(map[uuid.UUID]*Product{milkID: milk}); err == nil {
			t.Fatal("expected error for missing constituent")
		}
	})

	t.Run("missing variant fails", func(t *testing.T) {
		t.Parallel()

		wrongVariant := &Product{Name: "Biscuits", ID: biscuitsID, Variants: VariantList{{Name: "Snack Pack", Price: 60}}}
		if _, err := deal.PricingFromProducts(map[uuid.UUID]*Product{milkID: milk, biscuitsID: wrongVariant}); err == nil {
			t.Fatal("expected error for missing variant")
		}
	})
}
