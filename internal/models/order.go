package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the flattened projection of one vendor product-order, recomputed
// on every detail fetch.
type Order struct {
	ID                 string    `json:"id" gorm:"type:uuid;primary_key"`
	ProductOrderID     string    `json:"product_order_id" gorm:"uniqueIndex;not null"`
	PaymentDate        string    `json:"payment_date"`
	OrdererName        string    `json:"orderer_name"`
	ProductName        string    `json:"product_name"`
	ProductOption      string    `json:"product_option"`
	Quantity           int       `json:"quantity"`
	TotalPaymentAmount int64     `json:"total_payment_amount"`
	RecipientName      string    `json:"recipient_name"`
	RecipientTel       string    `json:"recipient_tel"`
	ShippingAddress    string    `json:"shipping_address"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NoOption is the sentinel the vendor feed carries for option-less orders.
const NoOption = "(옵션없음)"

// KST is the vendor's operating timezone; time-range parameters, document
// dates and log file names are all rendered in it.
var KST = time.FixedZone("KST", 9*60*60)

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// ParsedOption holds the structured fields recovered from one free-text
// option string. Zero values mean the field was not present.
type ParsedOption struct {
	Raw            string            `json:"raw"`
	Color          string            `json:"color,omitempty"`
	Width          int               `json:"width,omitempty"`
	Length         int               `json:"length,omitempty"`
	Height         int               `json:"height,omitempty"`
	Tier           string            `json:"tier,omitempty"`
	ConnectionHint string            `json:"connection_hint,omitempty"`
	AddonNote      string            `json:"addon_note,omitempty"`
	SizeRaw        string            `json:"size_raw,omitempty"`
	Extras         map[string]string `json:"extras,omitempty"`
}
