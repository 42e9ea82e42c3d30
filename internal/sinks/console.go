// Package sinks contains the OrderSink implementations fed by the listener:
// console notification, monthly CSV log, Kafka events and the document store.
package sinks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderwatch/internal/models"
)

// KST aliases the shared vendor timezone for brevity inside this package.
var KST = models.KST

// Console prints a boxed notification per new order, in the format the
// warehouse operators already know.
type Console struct{}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Name() string { return "console" }

func (c *Console) HandleOrder(ctx context.Context, order models.Order) error {
	line := strings.Repeat("=", 60)
	fmt.Println()
	fmt.Println(line)
	fmt.Printf("  [NEW ORDER] %s\n", time.Now().In(KST).Format("2006-01-02 15:04:05"))
	fmt.Println(line)
	fmt.Printf("  상품주문번호  : %s\n", order.ProductOrderID)
	fmt.Printf("  결제완료시각  : %s\n", order.PaymentDate)
	fmt.Printf("  구매자명      : %s\n", order.OrdererName)
	fmt.Printf("  주문 상품     : %s\n", order.ProductName)
	fmt.Printf("  선택 옵션     : %s\n", order.ProductOption)
	fmt.Printf("  주문 수량     : %d개\n", order.Quantity)
	fmt.Printf("  최종 금액     : %d원\n", order.TotalPaymentAmount)
	fmt.Printf("  수취인        : %s / %s\n", order.RecipientName, order.RecipientTel)
	fmt.Printf("  배송지        : %s\n", order.ShippingAddress)
	fmt.Println(line)
	fmt.Println()
	return nil
}
