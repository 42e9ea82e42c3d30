// Package document converts notified orders into purchase-document payloads
// compatible with the rack-shop documents table.
package document

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"orderwatch/internal/models"
	"orderwatch/internal/parser"
)

// KST aliases the shared vendor timezone for brevity inside this package.
var KST = models.KST

const timestampLayout = "2006-01-02T15:04:05.000+09:00"

var tierRe = regexp.MustCompile(`^(\d+단)`)

// Builder assembles purchase documents. The clock is injectable so the same
// order always produces the same document under a frozen clock.
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock is used by tests to freeze created/updated timestamps.
func NewBuilderWithClock(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// BuildLineItem produces the single document row for an order.
//
// Assembled names follow the documents-table convention:
//
//	"{rack type} {연결/독립형} {width}x{length} {height} {tier} {color}"
//
// Single-part addon orders (no color, no width in the options) keep the raw
// product name, e.g. "60X108(오렌지선반)".
func (b *Builder) BuildLineItem(order models.Order) models.LineItem {
	parsed := parser.ParseOption(order.ProductOption)
	rackType := parser.ExtractRackType(order.ProductName)

	qty := order.Quantity
	if qty < 1 {
		qty = 1
	}
	total := order.TotalPaymentAmount
	unitPrice := total / int64(qty)

	name := order.ProductName
	if parsed.Color != "" || parsed.Width != 0 {
		parts := []string{rackType}
		if parsed.ConnectionHint != "" {
			parts = append(parts, parsed.ConnectionHint)
		}
		if parsed.Width != 0 && parsed.Length != 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", parsed.Width, parsed.Length))
		}
		if parsed.Height != 0 {
			parts = append(parts, fmt.Sprintf("%d", parsed.Height))
		}
		if parsed.Tier != "" {
			// "1단(철판형)" → "1단"; anything without a digit+단 head stays raw.
			tier := parsed.Tier
			if m := tierRe.FindString(tier); m != "" {
				tier = m
			}
			parts = append(parts, tier)
		}
		if parsed.Color != "" {
			parts = append(parts, parsed.Color)
		}
		name = strings.Join(parts, " ")
	}

	return models.LineItem{
		Name:       name,
		Unit:       "개",
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: total,
		Note:       order.ProductOption,
	}
}

// BuildDocument converts an order into a purchase document. Pure given its
// inputs; only CreatedAt/UpdatedAt depend on the builder's clock.
func (b *Builder) BuildDocument(order models.Order) models.PurchaseDocument {
	item := b.BuildLineItem(order)

	subtotal := order.TotalPaymentAmount
	tax := int64(math.Round(float64(subtotal) * 0.1))

	date := b.now().In(KST).Format("2006-01-02")
	if idx := strings.Index(order.PaymentDate, "T"); idx >= 0 {
		date = order.PaymentDate[:idx]
	}

	orderID := order.ProductOrderID
	docNumber := "SS-" + orderID
	if len(orderID) >= 10 {
		docNumber = "SS-" + orderID[len(orderID)-10:]
	}

	nowISO := b.now().In(KST).Format(timestampLayout)

	return models.PurchaseDocument{
		DocID:          "purchase_ss_" + orderID,
		Date:           date,
		DocumentNumber: docNumber,
		CompanyName:    order.OrdererName,
		BizNumber:      "",
		Items:          []models.LineItem{item},
		Subtotal:       subtotal,
		Tax:            tax,
		TotalAmount:    subtotal + tax,
		Notes: fmt.Sprintf("배송지: %s | 연락처: %s | 수취인: %s",
			order.ShippingAddress, order.RecipientTel, order.RecipientName),
		TopMemo:   "",
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
		Type:      "purchase",
	}
}
