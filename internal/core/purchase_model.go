package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase lifecycle states. Once Received, a purchase is immutable.
const (
	PurchaseStatusPending  = "Pending"
	PurchaseStatusReceived = "Received"
)

// PurchaseItem is one ordered line on a purchase order.
// ProductID is nil for items marked IsNew (not yet in the catalog).
type PurchaseItem struct {
	ID            int             `json:"id"`
	PurchaseID    int             `json:"purchase_id"`
	ProductID     *int            `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Total         decimal.Decimal `json:"total"`
	IsNew         bool            `json:"is_new"`
}

// Purchase is a purchase order header with its items.
// OrderDate and ReceivedDate are dd/MM/yyyy strings.
type Purchase struct {
	ID              int             `json:"id"`
	VendorID        int             `json:"vendor_id"`
	VendorName      string          `json:"vendor_name"`
	OrderDate       string          `json:"order_date"`
	GST             decimal.Decimal `json:"gst"`
	DeliveryCharges decimal.Decimal `json:"delivery_charges"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentDone     decimal.Decimal `json:"payment_done"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	Status          string          `json:"status"`
	ReceivedDate    *string         `json:"received_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []PurchaseItem  `json:"items"`
}

// PurchaseItemInput is one line of a purchase order being created or edited.
type PurchaseItemInput struct {
	ProductID     *int            `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	IsNew         bool            `json:"is_new"`
}

// PurchaseInput holds the adjustable purchase fields; all derived amounts are
// recomputed from these on every create and update.
type PurchaseInput struct {
	VendorID        int                 `json:"vendor_id"`
	OrderDate       string              `json:"order_date"`
	GST             decimal.Decimal     `json:"gst"`
	DeliveryCharges decimal.Decimal     `json:"delivery_charges"`
	PaymentDone     decimal.Decimal     `json:"payment_done"`
	Items           []PurchaseItemInput `json:"items"`
}

// Validate enforces the purchase field constraints before any write.
func (in PurchaseInput) Validate() error {
	if in.VendorID <= 0 {
		return wrapValidation("vendor is required")
	}
	if _, err := ParseAppDate(in.OrderDate); err != nil {
		return wrapValidation("order date must be dd/MM/yyyy")
	}
	if len(in.Items) == 0 {
		return wrapValidation("purchase must have at least one item")
	}
	if in.GST.IsNegative() {
		return wrapValidation("gst percentage cannot be negative")
	}
	if in.DeliveryCharges.IsNegative() {
		return wrapValidation("delivery charges cannot be negative")
	}
	if in.PaymentDone.IsNegative() {
		return wrapValidation("payment done cannot be negative")
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return wrapValidation("item product name is required")
		}
		if item.Quantity <= 0 {
			return wrapValidation("item quantity must be positive")
		}
		if item.PurchasePrice.IsNegative() {
			return wrapValidation("item purchase price cannot be negative")
		}
		if !item.IsNew && item.ProductID == nil {
			return wrapValidationf("item %d must reference a product or be marked new", i+1)
		}
	}
	return nil
}

// TotalQuantity sums the ordered quantity across all items.
func (in PurchaseInput) TotalQuantity() int {
	var total int
	for _, item := range in.Items {
		total += item.Quantity
	}
	return total
}
