package cart_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

func TestRespondCartErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"product missing", services.ErrProductNotFound, http.StatusNotFound},
		{"deal missing", services.ErrDealNotFound, http.StatusNotFound},
		{"cart item missing", services.ErrCartItemNotFound, http.StatusNotFound},
		{"variant missing", &models.VariantNotFoundError{
			ProductName: "Fresh Milk",
			VariantName: "2 Litre",
			Available:   []string{"1 Litre", "500ml"},
		}, http.StatusNotFound},
		{"zero quantity", services.ErrInvalidQuantity, http.StatusBadRequest},
		{"deal quantity update", services.ErrDealQuantityFixed, http.StatusBadRequest},
		{"invalid deal", &services.InvalidDealError{Reason: "expired"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/cart", nil)

			respondCartError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRespondCartErrorVariantPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cart", nil)

	respondCartError(c, &models.VariantNotFoundError{
		ProductName: "Fresh Milk",
		VariantName: "2 Litre",
		Available:   []string{"1 Litre", "500ml"},
	})

	var body struct {
		Data struct {
			AvailableVariants []string `json:"available_variants"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data.AvailableVariants) != 2 {
		t.Fatalf("available_variants = %v, want the product's variant names", body.Data.AvailableVariants)
	}
}
