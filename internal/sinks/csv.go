package sinks

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"orderwatch/internal/logger"
	"orderwatch/internal/models"
)

// Column order is fixed; existing monthly files keep appending cleanly.
var csvHeader = []string{
	"상품주문번호",
	"결제완료시각",
	"구매자명",
	"상품명",
	"옵션",
	"주문수량",
	"최종금액",
	"수취인명",
	"연락처",
	"배송지",
}

// utf8BOM keeps the files opening correctly in Korean Excel.
const utf8BOM = "\xEF\xBB\xBF"

// CSVLog appends one row per order to a monthly file (orders_YYYY-MM.csv),
// writing the header only when the file is created.
type CSVLog struct {
	dir    string
	logger *logger.Logger
	now    func() time.Time
}

func NewCSVLog(dir string, logger *logger.Logger) *CSVLog {
	return &CSVLog{dir: dir, logger: logger, now: time.Now}
}

func (s *CSVLog) Name() string { return "csv" }

func (s *CSVLog) HandleOrder(ctx context.Context, order models.Order) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}

	path := filepath.Join(s.dir, "orders_"+s.now().In(KST).Format("2006-01")+".csv")

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := f.WriteString(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := []string{
		order.ProductOrderID,
		order.PaymentDate,
		order.OrdererName,
		order.ProductName,
		order.ProductOption,
		strconv.Itoa(order.Quantity),
		strconv.FormatInt(order.TotalPaymentAmount, 10),
		order.RecipientName,
		order.RecipientTel,
		order.ShippingAddress,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.Debug("order %s appended to %s", order.ProductOrderID, path)
	return nil
}
