package order_controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// Checkout godoc
// @Summary Convert the cart into an order
// @Description Validates stock and deal availability for the whole cart, freezes prices, then commits the order, the stock decrements, and the cart clear atomically. Online payments require a receipt image; cod does not.
// @Tags Store - Orders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param payment_method formData string true "Payment method" Enums(cod, online)
// @Param delivery formData number false "Delivery charge" default(0)
// @Param vat formData number false "VAT charge" default(0)
// @Param other formData number false "Other charge" default(0)
// @Param receipt formData file false "Payment receipt image (required for online)"
// @Success 201 {object} models.ApiResponse{data=models.OrderPlacedResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Stock shortfalls or invalid deals"
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/orders/checkout [post]
func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	in := services.CheckoutInput{
		PaymentMethod: c.PostForm("payment_method"),
	}

	charges, err := parseCharges(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Charges must be numbers"))
		return
	}
	in.Charges = charges

	if file, err := c.FormFile("receipt"); err == nil {
		in.Receipt = file
	}

	// Checkout gets a longer window: it may upload a receipt and run the
	// commit transaction.
	ctx, cancel := config.WithCustomTimeout(checkoutTimeout)
	defer cancel()

	order, err := services.GetCheckoutService().Checkout(ctx, userID, in)
	if err != nil {
		respondCheckoutError(c, userID, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed successfully", models.OrderPlacedResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Subtotal:      order.Subtotal,
		Charges:       order.Charges,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		Breakdown:     order.Breakdown(),
	}))
}

func parseCharges(c *gin.Context) (models.ChargesInput, error) {
	var charges models.ChargesInput
	for field, dst := range map[string]*float64{
		"delivery": &charges.Delivery,
		"vat":      &charges.VAT,
		"other":    &charges.Other,
	} {
		raw := c.PostForm(field)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return charges, err
		}
		*dst = v
	}
	return charges, nil
}

func respondCheckoutError(c *gin.Context, userID any, err error) {
	var availability *services.AvailabilityError
	var variantErr *models.VariantNotFoundError

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cart is empty"))
	case errors.Is(err, services.ErrReceiptRequired):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Receipt image is required for online payment"))
	case errors.Is(err, services.ErrInvalidCharges):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Charges must be non-negative numbers"))
	case errors.Is(err, services.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Payment method must be cod or online"))
	case errors.As(err, &availability):
		resp := models.ErrorResponse(c, "Some items in your cart are no longer available")
		resp.Data = availability
		c.JSON(http.StatusConflict, resp)
	case errors.As(err, &variantErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, variantErr.Error()))
	default:
		log.Printf("[store.checkout] ❌ user=%v err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to place order"))
	}
}
