package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed pricing policy applied when a purchase receipt creates catalog
// batches: selling price = landed unit cost × 1.5.
var markupFactor = decimal.NewFromFloat(1.5)

var oneHundred = decimal.NewFromInt(100)

// PurchaseComputed holds the derived amounts of a purchase order.
type PurchaseComputed struct {
	ItemsTotal  decimal.Decimal
	TotalAmount decimal.Decimal
	DueAmount   decimal.Decimal
}

// ComputePurchaseTotals derives the stored purchase amounts:
//
//	totalAmount = Σ(qty × price) × (1 + gst/100) + deliveryCharges
//	dueAmount   = totalAmount − paymentDone
func ComputePurchaseTotals(items []PurchaseItemInput, gst, deliveryCharges, paymentDone decimal.Decimal) PurchaseComputed {
	var itemsTotal decimal.Decimal
	for _, item := range items {
		itemsTotal = itemsTotal.Add(LineTotal(item.Quantity, item.PurchasePrice))
	}
	total := itemsTotal.Mul(gstMultiplier(gst)).Add(deliveryCharges)
	return PurchaseComputed{
		ItemsTotal:  itemsTotal,
		TotalAmount: total,
		DueAmount:   total.Sub(paymentDone),
	}
}

// PerItemDeliveryCharge allocates the delivery charge evenly across every
// purchased unit. A zero total quantity is treated as 1 to avoid dividing
// by zero.
func PerItemDeliveryCharge(deliveryCharges decimal.Decimal, totalQuantity int) decimal.Decimal {
	if totalQuantity <= 0 {
		totalQuantity = 1
	}
	return deliveryCharges.Div(decimal.NewFromInt(int64(totalQuantity)))
}

// LandedUnitCost blends the base purchase price with proportional GST and the
// per-unit share of delivery charges.
func LandedUnitCost(purchasePrice, gst, perItemDelivery decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(gstMultiplier(gst)).Add(perItemDelivery)
}

// DefaultSellingPrice applies the fixed 50% markup policy to a landed cost.
func DefaultSellingPrice(landedCost decimal.Decimal) decimal.Decimal {
	return landedCost.Mul(markupFactor)
}

// LineTotal is quantity × unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// InvoiceComputed holds every derived invoice field.
type InvoiceComputed struct {
	Subtotal  decimal.Decimal
	GSTAmount decimal.Decimal
	Amount    decimal.Decimal
	DueAmount decimal.Decimal
	Status    string
}

// ComputeInvoiceTotals derives all invoice amounts from the line items and
// the adjustable inputs:
//
//	subtotal  = Σ(qty × sellingPrice)
//	gstAmount = subtotal × gst/100
//	amount    = subtotal + gstAmount + deliveryCharges − discount
//	dueAmount = amount − paidAmount
//
// Items with a blank product name are ignored, matching the save-time
// validation that only counts valid rows.
func ComputeInvoiceTotals(items []InvoiceItemInput, gst, deliveryCharges, discount, paidAmount decimal.Decimal) InvoiceComputed {
	var subtotal decimal.Decimal
	for _, item := range items {
		if item.ProductName == "" {
			continue
		}
		subtotal = subtotal.Add(LineTotal(item.Quantity, item.SellingPrice))
	}
	gstAmount := subtotal.Mul(gst).Div(oneHundred)
	amount := subtotal.Add(gstAmount).Add(deliveryCharges).Sub(discount)
	due := amount.Sub(paidAmount)
	return InvoiceComputed{
		Subtotal:  subtotal,
		GSTAmount: gstAmount,
		Amount:    amount,
		DueAmount: due,
		Status:    DeriveInvoiceStatus(due, paidAmount),
	}
}

// DeriveInvoiceStatus is the single source of truth for the stored status:
// due ≤ 0 → Paid; any payment with a balance remaining → Partial; else Pending.
func DeriveInvoiceStatus(dueAmount, paidAmount decimal.Decimal) string {
	switch {
	case dueAmount.LessThanOrEqual(decimal.Zero):
		return InvoiceStatusPaid
	case paidAmount.GreaterThan(decimal.Zero):
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPending
	}
}

func gstMultiplier(gst decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(gst.Div(oneHundred))
}

// Today returns now truncated to day granularity in UTC, the resolution used
// for date-range filtering and overdue checks.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
