package core_test

import (
	"testing"

	"billdesk/internal/core"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputePurchaseTotals(t *testing.T) {
	// 10×50 + 5×20 = 600 → ×1.18 = 708 → +30 delivery = 738
	items := []core.PurchaseItemInput{
		{ProductName: "Bottle", Quantity: 10, PurchasePrice: d("50"), IsNew: true},
		{ProductName: "Straw", Quantity: 5, PurchasePrice: d("20"), IsNew: true},
	}

	got := core.ComputePurchaseTotals(items, d("18"), d("30"), decimal.Zero)

	if !got.ItemsTotal.Equal(d("600")) {
		t.Errorf("items total = %s, want 600", got.ItemsTotal)
	}
	if !got.TotalAmount.Equal(d("738")) {
		t.Errorf("total amount = %s, want 738", got.TotalAmount)
	}
	if !got.DueAmount.Equal(d("738")) {
		t.Errorf("due amount = %s, want 738", got.DueAmount)
	}
}

func TestComputePurchaseTotals_PartialPayment(t *testing.T) {
	items := []core.PurchaseItemInput{
		{ProductName: "Bottle", Quantity: 10, PurchasePrice: d("50"), IsNew: true},
	}

	got := core.ComputePurchaseTotals(items, decimal.Zero, decimal.Zero, d("200"))

	if !got.TotalAmount.Equal(d("500")) {
		t.Errorf("total amount = %s, want 500", got.TotalAmount)
	}
	if !got.DueAmount.Equal(d("300")) {
		t.Errorf("due amount = %s, want 300", got.DueAmount)
	}
}

func TestLandedCostAndSellingPrice(t *testing.T) {
	// price 100, gst 18%, delivery 120 across 12 units → landed 118 + 10 = 128
	perItem := core.PerItemDeliveryCharge(d("120"), 12)
	landed := core.LandedUnitCost(d("100"), d("18"), perItem)
	if !landed.Equal(d("128")) {
		t.Fatalf("landed cost = %s, want 128", landed)
	}

	selling := core.DefaultSellingPrice(landed)
	if !selling.Equal(d("192")) {
		t.Errorf("selling price = %s, want 192", selling)
	}
}

func TestLandedUnitCost_Monotonic(t *testing.T) {
	base := core.LandedUnitCost(d("100"), d("10"), d("5"))

	if higherGST := core.LandedUnitCost(d("100"), d("12"), d("5")); !higherGST.GreaterThan(base) {
		t.Errorf("raising gst did not raise landed cost: %s vs %s", higherGST, base)
	}
	if higherDelivery := core.LandedUnitCost(d("100"), d("10"), d("8")); !higherDelivery.GreaterThan(base) {
		t.Errorf("raising delivery did not raise landed cost: %s vs %s", higherDelivery, base)
	}
}

func TestPerItemDeliveryCharge_ZeroQuantity(t *testing.T) {
	// Zero quantity falls back to a divisor of 1 instead of panicking.
	got := core.PerItemDeliveryCharge(d("75"), 0)
	if !got.Equal(d("75")) {
		t.Errorf("per-item delivery = %s, want 75", got)
	}
}

func TestComputeInvoiceTotals(t *testing.T) {
	// 3×100 = 300, gst 10% = 30, +0 delivery −50 discount = 280, paid 250 → due 30
	items := []core.InvoiceItemInput{
		{ProductName: "Bottle", Quantity: 3, SellingPrice: d("100")},
	}

	got := core.ComputeInvoiceTotals(items, d("10"), decimal.Zero, d("50"), d("250"))

	if !got.Subtotal.Equal(d("300")) {
		t.Errorf("subtotal = %s, want 300", got.Subtotal)
	}
	if !got.GSTAmount.Equal(d("30")) {
		t.Errorf("gst amount = %s, want 30", got.GSTAmount)
	}
	if !got.Amount.Equal(d("280")) {
		t.Errorf("amount = %s, want 280", got.Amount)
	}
	if !got.DueAmount.Equal(d("30")) {
		t.Errorf("due amount = %s, want 30", got.DueAmount)
	}
	if got.Status != core.InvoiceStatusPartial {
		t.Errorf("status = %s, want Partial", got.Status)
	}
}

func TestComputeInvoiceTotals_SkipsBlankItems(t *testing.T) {
	items := []core.InvoiceItemInput{
		{ProductName: "Bottle", Quantity: 2, SellingPrice: d("100")},
		{ProductName: "", Quantity: 99, SellingPrice: d("9999")},
	}

	got := core.ComputeInvoiceTotals(items, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	if !got.Subtotal.Equal(d("200")) {
		t.Errorf("subtotal = %s, want 200 (blank item must be ignored)", got.Subtotal)
	}
}

func TestDeriveInvoiceStatus(t *testing.T) {
	tests := []struct {
		name string
		due  string
		paid string
		want string
	}{
		{"fully paid", "0", "280", core.InvoiceStatusPaid},
		{"overpaid", "-20", "300", core.InvoiceStatusPaid},
		{"partial", "30", "250", core.InvoiceStatusPartial},
		{"unpaid", "280", "0", core.InvoiceStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.DeriveInvoiceStatus(d(tt.due), d(tt.paid)); got != tt.want {
				t.Errorf("DeriveInvoiceStatus(%s, %s) = %s, want %s", tt.due, tt.paid, got, tt.want)
			}
		})
	}
}

func TestComputeInvoiceTotals_Recompute(t *testing.T) {
	// Recomputing from the same inputs must yield identical amounts.
	items := []core.InvoiceItemInput{
		{ProductName: "Bottle", Quantity: 7, SellingPrice: d("33.33")},
	}
	first := core.ComputeInvoiceTotals(items, d("18"), d("40"), d("10"), d("100"))
	second := core.ComputeInvoiceTotals(items, d("18"), d("40"), d("10"), d("100"))

	if !first.Amount.Equal(second.Amount) || !first.DueAmount.Equal(second.DueAmount) {
		t.Errorf("recompute mismatch: %s/%s vs %s/%s",
			first.Amount, first.DueAmount, second.Amount, second.DueAmount)
	}
}
