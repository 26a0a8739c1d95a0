package order_controller

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetOrderInvoicePDF godoc
// @Summary Download an order invoice PDF
// @Description Generates an invoice PDF in memory from the order's frozen item snapshots.
// @Tags Admin - Orders
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/{id}/invoice [get]
func GetOrderInvoicePDF(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.StoreGorm.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		log.Printf("[admin.order.invoice] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var customer struct {
		Name  string
		Email string
	}
	if err := config.StoreGorm.WithContext(ctx).
		Table("users").
		Select("name, email").
		Where("id = ?", order.UserID).
		Scan(&customer).Error; err != nil {
		log.Printf("[admin.order.invoice] ⚠️ Failed to load customer: %v", err)
	}

	buffer, err := generateInvoicePDF(&order, customer.Name, customer.Email)
	if err != nil {
		log.Printf("[admin.order.invoice] ❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate invoice"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buffer.Bytes())
}

func generateInvoicePDF(order *models.Order, customerName, customerEmail string) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("INVOICE", props.Text{Size: 24, Style: consts.Bold, Color: darkGray})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("HAJVERY STORE", props.Text{Size: 16, Style: consts.Bold, Color: darkGray})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("BILL TO", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("INVOICE DETAILS", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(customerName, props.Text{Size: 10, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Invoice #%s", order.ID), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(customerEmail, props.Text{Size: 9, Color: mediumGray})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
	})

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("Description", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(2, func() {
			m.Text("Qty", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text("Price", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	for _, item := range order.Items {
		description := "Product"
		unitPrice := item.Price
		if item.ItemType == models.ItemTypeDeal {
			description = fmt.Sprintf("Deal bundle (%d products)", len(item.DealProducts))
			unitPrice = item.DealPrice
		} else if item.VariantName != "" {
			description = fmt.Sprintf("Product - %s", item.VariantName)
		}

		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(description, props.Text{Size: 9, Color: darkGray})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%.2f", unitPrice), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%.2f", item.Total()), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	m.Row(8, func() {})

	totals := []struct {
		label string
		value float64
	}{
		{"Subtotal", order.Subtotal},
		{"Delivery", order.Charges.Delivery},
		{"VAT", order.Charges.VAT},
		{"Other", order.Charges.Other},
		{"Total", order.Total},
	}
	for _, row := range totals {
		style := consts.Normal
		if row.label == "Total" {
			style = consts.Bold
		}
		m.Row(5, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(row.label, props.Text{Size: 9, Style: style, Color: darkGray, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("Rs %.2f", row.value), props.Text{Size: 9, Style: style, Color: darkGray, Align: consts.Right})
			})
		})
	}

	buffer, err := m.Output()
	if err != nil {
		return nil, err
	}
	return &buffer, nil
}
