package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"billdesk/internal/core"
	"billdesk/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE invoice_items, invoices, purchase_items, purchases,
		               products, customers, vendors RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

func seedVendor(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	svc := core.NewVendorService(pool)
	vendor, err := svc.CreateVendor(context.Background(), core.VendorInput{Name: "Test Vendor"})
	if err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	return vendor.ID
}

func TestPurchaseReceipt_CreatesBatches(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	vendorID := seedVendor(t, pool)
	purchases := core.NewPurchaseService(pool, zerolog.Nop())
	products := core.NewProductService(pool)

	created, err := purchases.CreatePurchase(ctx, core.PurchaseInput{
		VendorID:        vendorID,
		OrderDate:       "05/01/2026",
		GST:             d("18"),
		DeliveryCharges: d("30"),
		Items: []core.PurchaseItemInput{
			{ProductName: "Bottle", Quantity: 10, PurchasePrice: d("50"), IsNew: true},
			{ProductName: "Straw", Quantity: 5, PurchasePrice: d("20"), IsNew: true},
		},
	})
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if created.Status != core.PurchaseStatusPending {
		t.Fatalf("status = %s, want Pending", created.Status)
	}
	if !created.TotalAmount.Equal(d("738")) {
		t.Errorf("total amount = %s, want 738", created.TotalAmount)
	}

	received, err := purchases.ReceivePurchase(ctx, created.ID)
	if err != nil {
		t.Fatalf("receive purchase: %v", err)
	}
	if received.Status != core.PurchaseStatusReceived {
		t.Errorf("status = %s, want Received", received.Status)
	}
	if received.ReceivedDate == nil || *received.ReceivedDate == "" {
		t.Errorf("received date not set")
	}

	catalog, err := products.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("batch count = %d, want 2", len(catalog))
	}

	totalStock := 0
	for _, p := range catalog {
		totalStock += p.Stock
		// Selling price follows the fixed markup over landed cost.
		if !p.SellingPrice.Equal(p.PurchasePrice.Mul(decimal.NewFromFloat(1.5))) {
			t.Errorf("batch %s: selling %s is not 1.5× landed %s", p.BatchCode, p.SellingPrice, p.PurchasePrice)
		}
	}
	if totalStock != 15 {
		t.Errorf("total stock = %d, want 15 (sum of ordered quantities)", totalStock)
	}
}

func TestPurchase_ReceivedIsImmutable(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	vendorID := seedVendor(t, pool)
	purchases := core.NewPurchaseService(pool, zerolog.Nop())

	input := core.PurchaseInput{
		VendorID:  vendorID,
		OrderDate: "05/01/2026",
		Items: []core.PurchaseItemInput{
			{ProductName: "Bottle", Quantity: 4, PurchasePrice: d("50"), IsNew: true},
		},
	}
	created, err := purchases.CreatePurchase(ctx, input)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := purchases.ReceivePurchase(ctx, created.ID); err != nil {
		t.Fatalf("receive purchase: %v", err)
	}

	if _, err := purchases.ReceivePurchase(ctx, created.ID); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("second receive: got %v, want ErrInvalidState", err)
	}
	if _, err := purchases.UpdatePurchase(ctx, created.ID, input); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("edit received: got %v, want ErrInvalidState", err)
	}
	if err := purchases.DeletePurchase(ctx, created.ID); !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("delete received: got %v, want ErrInvalidState", err)
	}
}

func TestPurchaseReceipt_MissingProductRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	vendorID := seedVendor(t, pool)
	purchases := core.NewPurchaseService(pool, zerolog.Nop())
	products := core.NewProductService(pool)

	missingID := 999999
	created, err := purchases.CreatePurchase(ctx, core.PurchaseInput{
		VendorID:  vendorID,
		OrderDate: "05/01/2026",
		Items: []core.PurchaseItemInput{
			{ProductName: "Bottle", Quantity: 10, PurchasePrice: d("50"), IsNew: true},
			{ProductName: "Ghost", Quantity: 5, PurchasePrice: d("20"), ProductID: &missingID},
		},
	})
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	if _, err := purchases.ReceivePurchase(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("receive with dangling reference: got %v, want ErrNotFound", err)
	}

	// Nothing from the failed receipt may remain.
	after, err := purchases.GetPurchase(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if after.Status != core.PurchaseStatusPending {
		t.Errorf("status after failed receipt = %s, want Pending", after.Status)
	}
	catalog, err := products.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(catalog) != 0 {
		t.Errorf("batches after failed receipt = %d, want 0", len(catalog))
	}
}

func TestPurchaseReceipt_ExistingItemSharesSKU(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	vendorID := seedVendor(t, pool)
	purchases := core.NewPurchaseService(pool, zerolog.Nop())
	products := core.NewProductService(pool)

	existing, err := products.CreateProduct(ctx, core.ProductInput{
		Name: "Bottle", SKU: "SKU-BOTTLE1", PurchasePrice: d("40"), SellingPrice: d("60"), Stock: 3,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	created, err := purchases.CreatePurchase(ctx, core.PurchaseInput{
		VendorID:  vendorID,
		OrderDate: "05/01/2026",
		Items: []core.PurchaseItemInput{
			{ProductName: "Bottle", Quantity: 7, PurchasePrice: d("45"), ProductID: &existing.ID},
		},
	})
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := purchases.ReceivePurchase(ctx, created.ID); err != nil {
		t.Fatalf("receive purchase: %v", err)
	}

	catalog, err := products.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("batch count = %d, want 2 (original plus new batch)", len(catalog))
	}
	if catalog[0].SKU != catalog[1].SKU {
		t.Errorf("skus differ: %s vs %s; batches of one lineage share a SKU", catalog[0].SKU, catalog[1].SKU)
	}
	if catalog[0].BatchCode == catalog[1].BatchCode {
		t.Errorf("batch codes must be unique per lot")
	}
}
