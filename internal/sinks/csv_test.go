package sinks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderwatch/internal/logger"
	"orderwatch/internal/models"
)

func testOrder(id string) models.Order {
	return models.Order{
		ProductOrderID:     id,
		PaymentDate:        "2026-08-30T11:22:33.0+09:00",
		OrdererName:        "김철수",
		ProductName:        "하이랙 철제선반",
		ProductOption:      "색상: 블루 / 규격: 60x150",
		Quantity:           2,
		TotalPaymentAmount: 150000,
		RecipientName:      "박영희",
		RecipientTel:       "010-3333-4444",
		ShippingAddress:    "서울시 강남구 101호",
	}
}

func TestCSVLogHeaderWrittenOncePerFile(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVLog(dir, logger.New("error"))
	frozen := time.Date(2026, 8, 30, 15, 0, 0, 0, KST)
	sink.now = func() time.Time { return frozen }

	require.NoError(t, sink.HandleOrder(context.Background(), testOrder("1")))
	require.NoError(t, sink.HandleOrder(context.Background(), testOrder("2")))

	path := filepath.Join(dir, "orders_2026-08.csv")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "file starts with a UTF-8 BOM")
	assert.Equal(t, 1, strings.Count(content, "상품주문번호"), "header appears once")

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "하이랙 철제선반")
	assert.Contains(t, lines[2], "박영희")
}

func TestCSVLogAppendsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	frozen := time.Date(2026, 8, 30, 15, 0, 0, 0, KST)

	first := NewCSVLog(dir, logger.New("error"))
	first.now = func() time.Time { return frozen }
	require.NoError(t, first.HandleOrder(context.Background(), testOrder("1")))

	// A later run appends to the same monthly file without another header.
	second := NewCSVLog(dir, logger.New("error"))
	second.now = func() time.Time { return frozen }
	require.NoError(t, second.HandleOrder(context.Background(), testOrder("2")))

	raw, err := os.ReadFile(filepath.Join(dir, "orders_2026-08.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "상품주문번호"))

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestCSVLogRollsOverByMonth(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVLog(dir, logger.New("error"))

	current := time.Date(2026, 8, 31, 23, 59, 0, 0, KST)
	sink.now = func() time.Time { return current }
	require.NoError(t, sink.HandleOrder(context.Background(), testOrder("1")))

	current = time.Date(2026, 9, 1, 0, 1, 0, 0, KST)
	require.NoError(t, sink.HandleOrder(context.Background(), testOrder("2")))

	_, err := os.Stat(filepath.Join(dir, "orders_2026-08.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "orders_2026-09.csv"))
	assert.NoError(t, err)
}
