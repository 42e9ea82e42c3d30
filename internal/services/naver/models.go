package naver

import (
	"encoding/json"
	"strings"

	"orderwatch/internal/models"
)

// KST aliases the shared vendor timezone for brevity inside this package.
var KST = models.KST

// flexID tolerates order ids arriving as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// envelope is the top-level response wrapper; the shape of data varies per
// endpoint and is decoded with explicit fallbacks, never duck-typed.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// listContainer covers the object-shaped list responses.
type listContainer struct {
	Contents         []orderItem `json:"contents"`
	ProductOrderData []orderItem `json:"productOrderData"`
}

// orderItem is one entry of a list or detail response. Fields appear either
// nested under content or at the top level.
type orderItem struct {
	Content        *orderContent     `json:"content"`
	Order          *orderInfo        `json:"order"`
	ProductOrder   *productOrderInfo `json:"productOrder"`
	ProductOrderID flexID            `json:"productOrderId"`
}

type orderContent struct {
	Order        *orderInfo        `json:"order"`
	ProductOrder *productOrderInfo `json:"productOrder"`
}

type orderInfo struct {
	OrdererName string `json:"ordererName"`
	OrdererTel  string `json:"ordererTel"`
	PaymentDate string `json:"paymentDate"`
}

type productOrderInfo struct {
	ProductOrderID     flexID           `json:"productOrderId"`
	ProductName        string           `json:"productName"`
	ProductOption      string           `json:"productOption"`
	Quantity           int              `json:"quantity"`
	TotalPaymentAmount int64            `json:"totalPaymentAmount"`
	ShippingAddress    *shippingAddress `json:"shippingAddress"`
}

type shippingAddress struct {
	Name            string `json:"name"`
	Tel1            string `json:"tel1"`
	BaseAddress     string `json:"baseAddress"`
	DetailedAddress string `json:"detailedAddress"`
}

// productOrderID digs the id out of either shape.
func (it orderItem) productOrderID() string {
	if it.ProductOrderID != "" {
		return string(it.ProductOrderID)
	}
	if it.Content != nil && it.Content.ProductOrder != nil {
		return string(it.Content.ProductOrder.ProductOrderID)
	}
	if it.ProductOrder != nil {
		return string(it.ProductOrder.ProductOrderID)
	}
	return ""
}

// decodeOrderIDs accepts the three observed list shapes: a flat array, or an
// object carrying contents / productOrderData.
func decodeOrderIDs(data json.RawMessage) []string {
	var items []orderItem
	if err := json.Unmarshal(data, &items); err != nil {
		var container listContainer
		if err := json.Unmarshal(data, &container); err != nil {
			return nil
		}
		items = container.Contents
		if len(items) == 0 {
			items = container.ProductOrderData
		}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id := item.productOrderID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// toOrder flattens one detail item. Items without a product-order id are
// malformed and skipped by the caller.
func (it orderItem) toOrder() (models.Order, bool) {
	content := it.Content
	if content == nil {
		content = &orderContent{Order: it.Order, ProductOrder: it.ProductOrder}
	}

	order := content.Order
	if order == nil {
		order = &orderInfo{}
	}
	po := content.ProductOrder
	if po == nil {
		po = &productOrderInfo{}
	}
	shipping := po.ShippingAddress
	if shipping == nil {
		shipping = &shippingAddress{}
	}

	id := string(po.ProductOrderID)
	if id == "" {
		return models.Order{}, false
	}

	option := po.ProductOption
	if option == "" {
		option = models.NoOption
	}

	recipient := shipping.Name
	if recipient == "" {
		recipient = order.OrdererName
	}
	tel := shipping.Tel1
	if tel == "" {
		tel = order.OrdererTel
	}

	return models.Order{
		ProductOrderID:     id,
		PaymentDate:        order.PaymentDate,
		OrdererName:        order.OrdererName,
		ProductName:        po.ProductName,
		ProductOption:      option,
		Quantity:           po.Quantity,
		TotalPaymentAmount: po.TotalPaymentAmount,
		RecipientName:      recipient,
		RecipientTel:       tel,
		ShippingAddress:    strings.TrimSpace(shipping.BaseAddress + " " + shipping.DetailedAddress),
	}, true
}
