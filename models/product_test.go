package models

import (
	"errors"
	"testing"
)

func TestResolveVariant(t *testing.T) {
	t.Parallel()

	sale := 200.0
	product := Product{
		Name: "Fresh Milk",
		Variants: VariantList{
			{Name: "1 Litre", Price: 260, IsOnSale: true, SalePrice: &sale},
			{Name: "500ml", Price: 140},
		},
	}

	tests := []struct {
		name      string
		lookup    string
		wantPrice float64
		wantErr   bool
	}{
		{name: "exact match", lookup: "1 Litre", wantPrice: 200},
		{name: "case insensitive", lookup: "1 litre", wantPrice: 200},
		{name: "upper case", lookup: "500ML", wantPrice: 140},
		{name: "unknown variant", lookup: "2 Litre", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			price, err := product.ResolvePrice(tt.lookup)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolvePrice(%q) expected error, got %v", tt.lookup, price)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePrice(%q): %v", tt.lookup, err)
			}
			if price != tt.wantPrice {
				t.Fatalf("ResolvePrice(%q) = %v, want %v", tt.lookup, price, tt.wantPrice)
			}
		})
	}
}

func TestResolveVariant_NotFoundCarriesAvailable(t *testing.T) {
	t.Parallel()

	product := Product{
		Name: "Fresh Milk",
		Variants: VariantList{
			{Name: "1 Litre", Price: 260},
			{Name: "500ml", Price: 140},
		},
	}

	_, err := product.ResolveVariant("2 Litre")
	var notFound *VariantNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VariantNotFoundError, got %v", err)
	}
	if notFound.ProductName != "Fresh Milk" || notFound.VariantName != "2 Litre" {
		t.Fatalf("unexpected error contents: %+v", notFound)
	}
	if len(notFound.Available) != 2 || notFound.Available[0] != "1 Litre" || notFound.Available[1] != "500ml" {
		t.Fatalf("expected available variants, got %v", notFound.Available)
	}
}

func TestVariantCurrentPrice(t *testing.T) {
	t.Parallel()

	sale := 200.0
	tests := []struct {
		name    string
		variant Variant
		want    float64
	}{
		{name: "regular price", variant: Variant{Price: 260}, want: 260},
		{name: "on sale", variant: Variant{Price: 260, IsOnSale: true, SalePrice: &sale}, want: 200},
		{name: "sale flag without price", variant: Variant{Price: 260, IsOnSale: true}, want: 260},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.variant.CurrentPrice(); got != tt.want {
				t.Fatalf("CurrentPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefreshPricing(t *testing.T) {
	t.Parallel()

	sale := 200.0

	t.Run("multiple variants", func(t *testing.T) {
		t.Parallel()

		product := Product{Variants: VariantList{
			{Name: "1 Litre", Price: 260, IsOnSale: true, SalePrice: &sale},
			{Name: "500ml", Price: 140},
		}}
		product.RefreshPricing()

		if product.PriceRange != "Rs 140 - Rs 200" {
			t.Fatalf("PriceRange = %q", product.PriceRange)
		}
		if product.StartingPrice != 140 || product.BestPrice != 140 {
			t.Fatalf("StartingPrice=%v BestPrice=%v", product.StartingPrice, product.BestPrice)
		}
		if !product.HasActiveSale {
			t.Fatal("expected HasActiveSale")
		}
	})

	t.Run("single variant collapses range", func(t *testing.T) {
		t.Parallel()

		product := Product{Variants: VariantList{{Name: "Pack", Price: 180}}}
		product.RefreshPricing()

		if product.PriceRange != "Rs 180" {
			t.Fatalf("PriceRange = %q", product.PriceRange)
		}
		if product.HasActiveSale {
			t.Fatal("unexpected HasActiveSale")
		}
	})

	t.Run("no variants", func(t *testing.T) {
		t.Parallel()

		product := Product{}
		product.RefreshPricing()

		if product.PriceRange != "" || product.StartingPrice != 0 || product.BestPrice != 0 {
			t.Fatalf("expected zeroed pricing, got %+v", product)
		}
	})
}
