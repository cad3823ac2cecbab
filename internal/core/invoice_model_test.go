package core_test

import (
	"errors"
	"testing"
	"time"

	"billdesk/internal/core"

	"github.com/shopspring/decimal"
)

func TestInvoice_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		dueDate string
		want    string
	}{
		{"pending past due", core.InvoiceStatusPending, "01/03/2026", core.InvoiceStatusOverdue},
		{"partial past due", core.InvoiceStatusPartial, "14/03/2026", core.InvoiceStatusOverdue},
		{"due today is not overdue", core.InvoiceStatusPending, "15/03/2026", core.InvoiceStatusPending},
		{"due in future", core.InvoiceStatusPending, "01/04/2026", core.InvoiceStatusPending},
		{"paid never overdue", core.InvoiceStatusPaid, "01/03/2026", core.InvoiceStatusPaid},
		{"no due date", core.InvoiceStatusPending, "", core.InvoiceStatusPending},
		{"unparseable due date", core.InvoiceStatusPending, "2026-03-01", core.InvoiceStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &core.Invoice{Status: tt.status, DueDate: tt.dueDate}
			if got := inv.EffectiveStatus(now); got != tt.want {
				t.Errorf("EffectiveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInvoiceInput_Validate(t *testing.T) {
	valid := core.InvoiceInput{
		CustomerID:   1,
		CustomerName: "Anita General Store",
		IssueDate:    "10/02/2026",
		Items: []core.InvoiceItemInput{
			{ProductName: "Bottle", Quantity: 2, SellingPrice: decimal.NewFromInt(100)},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*core.InvoiceInput)
		wantErr bool
	}{
		{"valid", func(in *core.InvoiceInput) {}, false},
		{"missing customer", func(in *core.InvoiceInput) { in.CustomerID = 0 }, true},
		{"bad issue date", func(in *core.InvoiceInput) { in.IssueDate = "2026-02-10" }, true},
		{"bad due date", func(in *core.InvoiceInput) { in.DueDate = "next week" }, true},
		{"negative discount", func(in *core.InvoiceInput) { in.Discount = decimal.NewFromInt(-1) }, true},
		{"zero quantity", func(in *core.InvoiceInput) { in.Items[0].Quantity = 0 }, true},
		{"only blank items", func(in *core.InvoiceInput) { in.Items[0].ProductName = " " }, true},
		{"blank row alongside valid row", func(in *core.InvoiceInput) {
			in.Items = append(in.Items, core.InvoiceItemInput{ProductName: ""})
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Items = append([]core.InvoiceItemInput(nil), valid.Items...)
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr && !errors.Is(err, core.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPurchaseInput_Validate(t *testing.T) {
	productID := 7
	valid := core.PurchaseInput{
		VendorID:  1,
		OrderDate: "05/01/2026",
		Items: []core.PurchaseItemInput{
			{ProductName: "Bottle", Quantity: 10, PurchasePrice: decimal.NewFromInt(50), IsNew: true},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*core.PurchaseInput)
		wantErr bool
	}{
		{"valid new item", func(in *core.PurchaseInput) {}, false},
		{"valid existing item", func(in *core.PurchaseInput) {
			in.Items[0].IsNew = false
			in.Items[0].ProductID = &productID
		}, false},
		{"missing vendor", func(in *core.PurchaseInput) { in.VendorID = 0 }, true},
		{"bad order date", func(in *core.PurchaseInput) { in.OrderDate = "Jan 5" }, true},
		{"no items", func(in *core.PurchaseInput) { in.Items = nil }, true},
		{"negative gst", func(in *core.PurchaseInput) { in.GST = decimal.NewFromInt(-5) }, true},
		{"existing item without reference", func(in *core.PurchaseInput) { in.Items[0].IsNew = false }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Items = append([]core.PurchaseItemInput(nil), valid.Items...)
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr && !errors.Is(err, core.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
