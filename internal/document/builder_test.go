package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderwatch/internal/models"
)

func frozenBuilder() *Builder {
	frozen := time.Date(2026, 8, 30, 14, 30, 0, 0, KST)
	return NewBuilderWithClock(func() time.Time { return frozen })
}

func sampleOrder() models.Order {
	return models.Order{
		ProductOrderID:     "2026083012345678",
		PaymentDate:        "2026-08-30T11:22:33.0+09:00",
		OrdererName:        "김철수",
		ProductName:        "하이랙 철제선반 앵글 중량랙 물류",
		ProductOption:      "색상: 아이보리(볼트식)270kg / 선반: 60x150x150(독립) / 단수: 2단(철판형)",
		Quantity:           2,
		TotalPaymentAmount: 150000,
		RecipientName:      "박영희",
		RecipientTel:       "010-1234-5678",
		ShippingAddress:    "서울시 강남구 테헤란로 1 101호",
	}
}

func TestBuildLineItemAssembledName(t *testing.T) {
	item := frozenBuilder().BuildLineItem(sampleOrder())

	assert.Equal(t, "하이랙 독립형 60x150 150 2단 아이보리(볼트식)270kg", item.Name)
	assert.Equal(t, "개", item.Unit)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(75000), item.UnitPrice)
	assert.Equal(t, int64(150000), item.TotalPrice)
	assert.Equal(t, sampleOrder().ProductOption, item.Note)
}

func TestBuildLineItemAddonUsesProductName(t *testing.T) {
	order := sampleOrder()
	order.ProductName = "60X108(오렌지선반)"
	order.ProductOption = models.NoOption

	item := frozenBuilder().BuildLineItem(order)

	assert.Equal(t, "60X108(오렌지선반)", item.Name)
}

func TestBuildLineItemUnitPriceTruncates(t *testing.T) {
	order := sampleOrder()
	order.Quantity = 3
	order.TotalPaymentAmount = 100000

	item := frozenBuilder().BuildLineItem(order)

	assert.Equal(t, int64(33333), item.UnitPrice)
}

func TestBuildLineItemQuantityCoercedToOne(t *testing.T) {
	order := sampleOrder()
	order.Quantity = 0

	item := frozenBuilder().BuildLineItem(order)

	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, order.TotalPaymentAmount, item.UnitPrice)
}

func TestBuildLineItemTierKeptRawWithoutDigit(t *testing.T) {
	order := sampleOrder()
	order.ProductOption = "색상: 블랙 / 규격: 60x150 / 단수: 추가단"

	item := frozenBuilder().BuildLineItem(order)

	assert.Contains(t, item.Name, "추가단")
}

func TestBuildDocument(t *testing.T) {
	doc := frozenBuilder().BuildDocument(sampleOrder())

	assert.Equal(t, "purchase_ss_2026083012345678", doc.DocID)
	assert.Equal(t, "SS-3012345678", doc.DocumentNumber)
	assert.Equal(t, "2026-08-30", doc.Date)
	assert.Equal(t, "김철수", doc.CompanyName)
	assert.Equal(t, int64(150000), doc.Subtotal)
	assert.Equal(t, int64(15000), doc.Tax)
	assert.Equal(t, int64(165000), doc.TotalAmount)
	assert.Equal(t, "배송지: 서울시 강남구 테헤란로 1 101호 | 연락처: 010-1234-5678 | 수취인: 박영희", doc.Notes)
	assert.Equal(t, "purchase", doc.Type)
	require.Len(t, doc.Items, 1)
}

func TestBuildDocumentShortOrderID(t *testing.T) {
	order := sampleOrder()
	order.ProductOrderID = "1234"

	doc := frozenBuilder().BuildDocument(order)

	assert.Equal(t, "SS-1234", doc.DocumentNumber)
	assert.Equal(t, "purchase_ss_1234", doc.DocID)
}

func TestBuildDocumentDateFallsBackToClock(t *testing.T) {
	order := sampleOrder()
	order.PaymentDate = ""

	doc := frozenBuilder().BuildDocument(order)

	assert.Equal(t, "2026-08-30", doc.Date)
}

func TestBuildDocumentTaxRounds(t *testing.T) {
	order := sampleOrder()
	order.TotalPaymentAmount = 12345

	doc := frozenBuilder().BuildDocument(order)

	assert.Equal(t, int64(1235), doc.Tax)
	assert.Equal(t, int64(13580), doc.TotalAmount)
}

func TestBuildDocumentIdempotentUnderFrozenClock(t *testing.T) {
	b := frozenBuilder()
	order := sampleOrder()

	first := b.BuildDocument(order)
	second := b.BuildDocument(order)

	assert.Equal(t, first, second)
}
