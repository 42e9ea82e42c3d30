package models

// LineItem is one row of a purchase document.
type LineItem struct {
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	TotalPrice int64  `json:"totalPrice"`
	Note       string `json:"note"`
}

// PurchaseDocument mirrors the documents table of the rack-shop admin; one is
// created per new order and never mutated afterwards.
type PurchaseDocument struct {
	DocID          string     `json:"doc_id" gorm:"column:doc_id;primary_key"`
	Date           string     `json:"date"`
	DocumentNumber string     `json:"document_number"`
	CompanyName    string     `json:"company_name"`
	BizNumber      string     `json:"biz_number"`
	Items          []LineItem `json:"items" gorm:"serializer:json"`
	Subtotal       int64      `json:"subtotal"`
	Tax            int64      `json:"tax"`
	TotalAmount    int64      `json:"total_amount"`
	Notes          string     `json:"notes"`
	TopMemo        string     `json:"top_memo"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
	Type           string     `json:"type"`
}

func (PurchaseDocument) TableName() string {
	return "documents"
}
