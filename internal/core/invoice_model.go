package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. Paid/Partial/Pending are pure functions of the amounts
// (see DeriveInvoiceStatus); Overdue is never stored — it is a read-time view
// produced by EffectiveStatus when the due date has passed.
const (
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusPartial = "Partial"
	InvoiceStatusPending = "Pending"
	InvoiceStatusOverdue = "Overdue"
)

// InvoiceItem is one billed line. ProductID is nil for manually entered items
// that do not reference the catalog.
type InvoiceItem struct {
	ID           int             `json:"id"`
	InvoiceID    int             `json:"invoice_id"`
	ProductID    *int            `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Total        decimal.Decimal `json:"total"`
}

// Invoice is a sales invoice. Customer fields are a snapshot taken at creation
// time, not a live reference. IssueDate and DueDate are dd/MM/yyyy strings.
type Invoice struct {
	ID              int             `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      int             `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	IssueDate       string          `json:"issue_date"`
	DueDate         string          `json:"due_date"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	DeliveryCharges decimal.Decimal `json:"delivery_charges"`
	Discount        decimal.Decimal `json:"discount"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	Status          string          `json:"status"`
	OrderNote       string          `json:"order_note"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []InvoiceItem   `json:"items"`
}

// EffectiveStatus returns the status to display as of now: an unpaid invoice
// whose due date has passed reads as Overdue; otherwise the stored status.
func (inv *Invoice) EffectiveStatus(now time.Time) string {
	if inv.Status == InvoiceStatusPaid || inv.DueDate == "" {
		return inv.Status
	}
	due, err := ParseAppDate(inv.DueDate)
	if err != nil {
		return inv.Status
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// InvoiceItemInput is one billed line being created or edited. SellingPrice is
// the price snapshot taken when the catalog product was selected, or the
// free-text price for manual items.
type InvoiceItemInput struct {
	ProductID    *int            `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// InvoiceInput holds the adjustable invoice fields; every derived field is
// recomputed from these on create and update.
type InvoiceInput struct {
	InvoiceNumber   string             `json:"invoice_number"`
	CustomerID      int                `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	IssueDate       string             `json:"issue_date"`
	DueDate         string             `json:"due_date"`
	GSTPercentage   decimal.Decimal    `json:"gst_percentage"`
	DeliveryCharges decimal.Decimal    `json:"delivery_charges"`
	Discount        decimal.Decimal    `json:"discount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	OrderNote       string             `json:"order_note"`
	Items           []InvoiceItemInput `json:"items"`
}

// Validate blocks the save when the customer, issue date, or items are
// missing or malformed. No partial invoice may be persisted.
func (in InvoiceInput) Validate() error {
	if in.CustomerID <= 0 || strings.TrimSpace(in.CustomerName) == "" {
		return wrapValidation("customer is required")
	}
	if _, err := ParseAppDate(in.IssueDate); err != nil {
		return wrapValidation("issue date must be dd/MM/yyyy")
	}
	if in.DueDate != "" {
		if _, err := ParseAppDate(in.DueDate); err != nil {
			return wrapValidation("due date must be dd/MM/yyyy")
		}
	}
	if in.GSTPercentage.IsNegative() {
		return wrapValidation("gst percentage cannot be negative")
	}
	if in.DeliveryCharges.IsNegative() {
		return wrapValidation("delivery charges cannot be negative")
	}
	if in.Discount.IsNegative() {
		return wrapValidation("discount cannot be negative")
	}
	if in.PaidAmount.IsNegative() {
		return wrapValidation("paid amount cannot be negative")
	}

	valid := 0
	for _, item := range in.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			continue
		}
		if item.Quantity <= 0 {
			return wrapValidation("item quantity must be positive")
		}
		if item.SellingPrice.IsNegative() {
			return wrapValidation("item selling price cannot be negative")
		}
		valid++
	}
	if valid == 0 {
		return wrapValidation("invoice must have at least one valid item")
	}
	return nil
}
