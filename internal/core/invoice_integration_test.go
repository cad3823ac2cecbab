package core_test

import (
	"context"
	"errors"
	"testing"

	"billdesk/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func seedCustomer(t *testing.T, pool *pgxpool.Pool) *core.Customer {
	t.Helper()
	svc := core.NewCustomerService(pool)
	customer, err := svc.CreateCustomer(context.Background(), core.CustomerInput{Name: "Test Customer"})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func TestInvoiceCreate_TotalsAndStatus(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	customer := seedCustomer(t, pool)
	invoices := core.NewInvoiceService(pool, zerolog.Nop())

	created, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		IssueDate:     "10/02/2026",
		GSTPercentage: d("10"),
		Discount:      d("50"),
		PaidAmount:    d("250"),
		Items: []core.InvoiceItemInput{
			{ProductName: "Bottle", Quantity: 3, SellingPrice: d("100")},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if created.InvoiceNumber == "" {
		t.Errorf("invoice number was not generated")
	}
	if !created.Subtotal.Equal(d("300")) {
		t.Errorf("subtotal = %s, want 300", created.Subtotal)
	}
	if !created.GSTAmount.Equal(d("30")) {
		t.Errorf("gst amount = %s, want 30", created.GSTAmount)
	}
	if !created.Amount.Equal(d("280")) {
		t.Errorf("amount = %s, want 280", created.Amount)
	}
	if !created.DueAmount.Equal(d("30")) {
		t.Errorf("due amount = %s, want 30", created.DueAmount)
	}
	if created.Status != core.InvoiceStatusPartial {
		t.Errorf("status = %s, want Partial", created.Status)
	}
}

func TestInvoiceCreate_RejectsNegativeAmount(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	customer := seedCustomer(t, pool)
	invoices := core.NewInvoiceService(pool, zerolog.Nop())

	_, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		IssueDate:    "10/02/2026",
		Discount:     d("5000"),
		Items: []core.InvoiceItemInput{
			{ProductName: "Bottle", Quantity: 1, SellingPrice: d("100")},
		},
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("got %v, want ErrValidation for negative total", err)
	}
}

func TestInvoiceCreate_DrainsStockAcrossBatches(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	customer := seedCustomer(t, pool)
	products := core.NewProductService(pool)
	invoices := core.NewInvoiceService(pool, zerolog.Nop())

	first, err := products.CreateProduct(ctx, core.ProductInput{
		Name: "Bottle", SKU: "SKU-BOTTLE1", PurchasePrice: d("40"), SellingPrice: d("60"), Stock: 3,
	})
	if err != nil {
		t.Fatalf("seed first batch: %v", err)
	}
	second, err := products.CreateProduct(ctx, core.ProductInput{
		Name: "Bottle", SKU: "SKU-BOTTLE1", PurchasePrice: d("45"), SellingPrice: d("70"), Stock: 5,
	})
	if err != nil {
		t.Fatalf("seed second batch: %v", err)
	}

	if _, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		IssueDate:    "10/02/2026",
		Items: []core.InvoiceItemInput{
			{ProductID: &first.ID, ProductName: "Bottle", Quantity: 6, SellingPrice: d("60")},
		},
	}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	// Referenced batch drains to zero; the remaining 3 units come from the sibling.
	firstAfter, err := products.GetProduct(ctx, first.ID)
	if err != nil {
		t.Fatalf("reload first batch: %v", err)
	}
	if firstAfter.Stock != 0 {
		t.Errorf("first batch stock = %d, want 0", firstAfter.Stock)
	}
	secondAfter, err := products.GetProduct(ctx, second.ID)
	if err != nil {
		t.Fatalf("reload second batch: %v", err)
	}
	if secondAfter.Stock != 2 {
		t.Errorf("second batch stock = %d, want 2", secondAfter.Stock)
	}
}

func TestInvoiceCreate_StockClampsAtZero(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	customer := seedCustomer(t, pool)
	products := core.NewProductService(pool)
	invoices := core.NewInvoiceService(pool, zerolog.Nop())

	only, err := products.CreateProduct(ctx, core.ProductInput{
		Name: "Bottle", SKU: "SKU-BOTTLE1", PurchasePrice: d("40"), SellingPrice: d("60"), Stock: 2,
	})
	if err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	// Oversell: the sale is recorded and stock stops at zero.
	if _, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		IssueDate:    "10/02/2026",
		Items: []core.InvoiceItemInput{
			{ProductID: &only.ID, ProductName: "Bottle", Quantity: 10, SellingPrice: d("60")},
		},
	}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	after, err := products.GetProduct(ctx, only.ID)
	if err != nil {
		t.Fatalf("reload batch: %v", err)
	}
	if after.Stock != 0 {
		t.Errorf("stock = %d, want 0", after.Stock)
	}
}

func TestInvoiceUpdate_RecomputesDerivedFields(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	customer := seedCustomer(t, pool)
	invoices := core.NewInvoiceService(pool, zerolog.Nop())

	input := core.InvoiceInput{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		IssueDate:    "10/02/2026",
		Items: []core.InvoiceItemInput{
			{ProductName: "Bottle", Quantity: 3, SellingPrice: d("100")},
		},
	}
	created, err := invoices.CreateInvoice(ctx, input)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if created.Status != core.InvoiceStatusPending {
		t.Fatalf("status = %s, want Pending", created.Status)
	}

	input.InvoiceNumber = created.InvoiceNumber
	input.PaidAmount = d("300")
	updated, err := invoices.UpdateInvoice(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	if !updated.DueAmount.Equal(d("0")) {
		t.Errorf("due amount = %s, want 0", updated.DueAmount)
	}
	if updated.Status != core.InvoiceStatusPaid {
		t.Errorf("status = %s, want Paid", updated.Status)
	}
	if len(updated.Items) != 1 {
		t.Errorf("items = %d, want 1 (replaced, not appended)", len(updated.Items))
	}
}
