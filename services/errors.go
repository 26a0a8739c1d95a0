package services

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDealNotFound     = errors.New("deal not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrDealQuantityFixed    = errors.New("deal quantities cannot be updated, deals are fixed bundles")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrReceiptRequired      = errors.New("receipt image required for online payment")
	ErrInvalidCharges       = errors.New("charges must be non-negative numbers")
	ErrInvalidPaymentMethod = errors.New("payment method must be cod or online")
)

const (
	DealIssueMissing = "Deal not found"
	DealIssueInvalid = "Deal has expired or is inactive"
)

// InvalidDealError reports why a deal cannot be added to or kept in a cart.
type InvalidDealError struct {
	Reason string // missing | inactive | expired
}

func (e *InvalidDealError) Error() string {
	return fmt.Sprintf("deal is not currently available: %s", e.Reason)
}

// StockShortfall is one product line that cannot be fulfilled.
type StockShortfall struct {
	ProductName       string `json:"productName"`
	VariantName       string `json:"variantName"`
	RequestedQuantity int    `json:"requestedQuantity"`
	AvailableStock    int    `json:"availableStock"`
}

// InvalidDealItem is one deal line that no longer validates.
type InvalidDealItem struct {
	DealTitle string `json:"dealTitle"`
	Issue     string `json:"issue"`
}

// AvailabilityError aggregates every stock shortfall and invalid deal found
// while validating a checkout. It is never raised for a single item early:
// the caller gets the full list and fixes the cart in one pass.
type AvailabilityError struct {
	InsufficientStock []StockShortfall  `json:"insufficientStock"`
	InvalidDeals      []InvalidDealItem `json:"invalidDeals"`
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("some items are not available: %d stock shortfalls, %d invalid deals",
		len(e.InsufficientStock), len(e.InvalidDeals))
}

func (e *AvailabilityError) HasViolations() bool {
	return len(e.InsufficientStock) > 0 || len(e.InvalidDeals) > 0
}
