package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PurchaseService provides purchase order lifecycle operations.
type PurchaseService interface {
	// CreatePurchase creates a Pending purchase order with computed totals.
	// The vendor name is snapshotted at creation time.
	CreatePurchase(ctx context.Context, input PurchaseInput) (*Purchase, error)

	// GetPurchase returns a purchase order by ID, including all items.
	GetPurchase(ctx context.Context, id int) (*Purchase, error)

	// ListPurchases returns purchase orders, optionally filtered by status.
	// An empty status string returns all orders.
	ListPurchases(ctx context.Context, status string) ([]Purchase, error)

	// UpdatePurchase replaces the adjustable fields and items of a Pending
	// purchase, recomputing every derived amount. Received purchases are
	// immutable: the update is refused with ErrInvalidState.
	UpdatePurchase(ctx context.Context, id int, input PurchaseInput) (*Purchase, error)

	// DeletePurchase removes a Pending purchase. Received purchases are
	// refused with ErrInvalidState.
	DeletePurchase(ctx context.Context, id int) error

	// ReceivePurchase transitions a Pending purchase to Received and
	// materializes the stock effect: one new product batch per item, priced
	// at the landed unit cost with the fixed 50% selling markup. The whole
	// reconciliation is a single transaction — either every batch is created
	// and the purchase is stamped Received, or nothing changes.
	ReceivePurchase(ctx context.Context, id int) (*Purchase, error)
}

type purchaseService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPurchaseService constructs a PurchaseService backed by PostgreSQL.
func NewPurchaseService(pool *pgxpool.Pool, log zerolog.Logger) PurchaseService {
	return &purchaseService{pool: pool, log: log}
}

func (s *purchaseService) CreatePurchase(ctx context.Context, input PurchaseInput) (*Purchase, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Snapshot the vendor name so later vendor edits do not rewrite history.
	var vendorName string
	if err := tx.QueryRow(ctx,
		"SELECT name FROM vendors WHERE id = $1", input.VendorID,
	).Scan(&vendorName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vendor %d: %w", input.VendorID, ErrNotFound)
		}
		return nil, fmt.Errorf("resolve vendor %d: %w", input.VendorID, err)
	}

	totals := ComputePurchaseTotals(input.Items, input.GST, input.DeliveryCharges, input.PaymentDone)

	var purchaseID int
	if err := tx.QueryRow(ctx, `
		INSERT INTO purchases (vendor_id, vendor_name, order_date, gst, delivery_charges,
		                       total_amount, payment_done, due_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'Pending')
		RETURNING id`,
		input.VendorID, vendorName, input.OrderDate, input.GST, input.DeliveryCharges,
		totals.TotalAmount, input.PaymentDone, totals.DueAmount,
	).Scan(&purchaseID); err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}

	if err := insertPurchaseItems(ctx, tx, purchaseID, input.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}
	return s.GetPurchase(ctx, purchaseID)
}

func (s *purchaseService) GetPurchase(ctx context.Context, id int) (*Purchase, error) {
	p := &Purchase{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, vendor_id, vendor_name, order_date, gst, delivery_charges,
		       total_amount, payment_done, due_amount, status, received_date, created_at
		FROM purchases
		WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.VendorID, &p.VendorName, &p.OrderDate, &p.GST, &p.DeliveryCharges,
		&p.TotalAmount, &p.PaymentDone, &p.DueAmount, &p.Status, &p.ReceivedDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get purchase %d: %w", id, err)
	}

	items, err := s.fetchItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return p, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, status string) ([]Purchase, error) {
	query := `
		SELECT id, vendor_id, vendor_name, order_date, gst, delivery_charges,
		       total_amount, payment_done, due_amount, status, received_date, created_at
		FROM purchases`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.VendorID, &p.VendorName, &p.OrderDate, &p.GST,
			&p.DeliveryCharges, &p.TotalAmount, &p.PaymentDone, &p.DueAmount,
			&p.Status, &p.ReceivedDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (s *purchaseService) UpdatePurchase(ctx context.Context, id int, input PurchaseInput) (*Purchase, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := lockPurchaseStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if status == PurchaseStatusReceived {
		return nil, fmt.Errorf("purchase %d is Received and cannot be edited: %w", id, ErrInvalidState)
	}

	var vendorName string
	if err := tx.QueryRow(ctx,
		"SELECT name FROM vendors WHERE id = $1", input.VendorID,
	).Scan(&vendorName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vendor %d: %w", input.VendorID, ErrNotFound)
		}
		return nil, fmt.Errorf("resolve vendor %d: %w", input.VendorID, err)
	}

	totals := ComputePurchaseTotals(input.Items, input.GST, input.DeliveryCharges, input.PaymentDone)

	if _, err := tx.Exec(ctx, `
		UPDATE purchases
		SET vendor_id = $1, vendor_name = $2, order_date = $3, gst = $4,
		    delivery_charges = $5, total_amount = $6, payment_done = $7, due_amount = $8
		WHERE id = $9`,
		input.VendorID, vendorName, input.OrderDate, input.GST,
		input.DeliveryCharges, totals.TotalAmount, input.PaymentDone, totals.DueAmount, id,
	); err != nil {
		return nil, fmt.Errorf("update purchase %d: %w", id, err)
	}

	// Items are replaced wholesale; derived fields were already recomputed.
	if _, err := tx.Exec(ctx, "DELETE FROM purchase_items WHERE purchase_id = $1", id); err != nil {
		return nil, fmt.Errorf("clear purchase items for %d: %w", id, err)
	}
	if err := insertPurchaseItems(ctx, tx, id, input.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase update: %w", err)
	}
	return s.GetPurchase(ctx, id)
}

func (s *purchaseService) DeletePurchase(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := lockPurchaseStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if status == PurchaseStatusReceived {
		return fmt.Errorf("purchase %d is Received and cannot be deleted: %w", id, ErrInvalidState)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM purchases WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete purchase %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase delete: %w", err)
	}
	return nil
}

func (s *purchaseService) ReceivePurchase(ctx context.Context, id int) (*Purchase, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p := &Purchase{}
	err = tx.QueryRow(ctx, `
		SELECT id, gst, delivery_charges, status
		FROM purchases
		WHERE id = $1
		FOR UPDATE`,
		id,
	).Scan(&p.ID, &p.GST, &p.DeliveryCharges, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("lock purchase %d: %w", id, err)
	}
	if p.Status != PurchaseStatusPending {
		return nil, fmt.Errorf("purchase %d cannot be received: status is %s (must be Pending): %w",
			id, p.Status, ErrInvalidState)
	}

	items, err := fetchPurchaseItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	totalQuantity := 0
	for _, item := range items {
		totalQuantity += item.Quantity
	}
	perItemDelivery := PerItemDeliveryCharge(p.DeliveryCharges, totalQuantity)

	for _, item := range items {
		landed := LandedUnitCost(item.PurchasePrice, p.GST, perItemDelivery)
		selling := DefaultSellingPrice(landed)

		name := item.ProductName
		sku := NewSKU()
		if !item.IsNew {
			if item.ProductID == nil {
				return nil, fmt.Errorf("purchase %d item %d has no product reference: %w",
					id, item.ID, ErrValidation)
			}
			// Existing lineage: the new batch shares the referenced product's
			// name and SKU. A dangling reference aborts the whole receipt so
			// no purchased quantity is ever silently dropped.
			err := tx.QueryRow(ctx,
				"SELECT name, sku FROM products WHERE id = $1", *item.ProductID,
			).Scan(&name, &sku)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					s.log.Warn().Int("purchase_id", id).Int("product_id", *item.ProductID).
						Msg("purchase receipt references a missing product")
					return nil, fmt.Errorf("purchase %d references missing product %d: %w",
						id, *item.ProductID, ErrNotFound)
				}
				return nil, fmt.Errorf("resolve product %d: %w", *item.ProductID, err)
			}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO products (name, sku, batch_code, purchase_price, selling_price, stock)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			name, sku, NewBatchCode(), landed, selling, item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("create batch for item %q: %w", name, err)
		}
	}

	receivedDate := FormatAppDate(time.Now())
	if _, err := tx.Exec(ctx, `
		UPDATE purchases
		SET status = 'Received', received_date = $1
		WHERE id = $2`,
		receivedDate, id,
	); err != nil {
		return nil, fmt.Errorf("mark purchase %d received: %w", id, err)
	}

	// Single commit: every batch and the status flip land together or not at all.
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase receipt: %w", err)
	}

	s.log.Info().Int("purchase_id", id).Int("batches", len(items)).
		Msg("purchase received into inventory")
	return s.GetPurchase(ctx, id)
}

// fetchItems returns all items for a purchase using the pool.
func (s *purchaseService) fetchItems(ctx context.Context, purchaseID int) ([]PurchaseItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, purchase_id, product_id, product_name, quantity, purchase_price, total, is_new
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY id`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items for purchase %d: %w", purchaseID, err)
	}
	defer rows.Close()
	return scanPurchaseItems(rows)
}

func fetchPurchaseItemsTx(ctx context.Context, tx pgx.Tx, purchaseID int) ([]PurchaseItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, purchase_id, product_id, product_name, quantity, purchase_price, total, is_new
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY id`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items for purchase %d: %w", purchaseID, err)
	}
	defer rows.Close()
	return scanPurchaseItems(rows)
}

func scanPurchaseItems(rows pgx.Rows) ([]PurchaseItem, error) {
	var items []PurchaseItem
	for rows.Next() {
		var item PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.PurchasePrice, &item.Total, &item.IsNew); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertPurchaseItems(ctx context.Context, tx pgx.Tx, purchaseID int, items []PurchaseItemInput) error {
	for i, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO purchase_items
			            (purchase_id, product_id, product_name, quantity, purchase_price, total, is_new)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			purchaseID, item.ProductID, item.ProductName, item.Quantity,
			item.PurchasePrice, LineTotal(item.Quantity, item.PurchasePrice), item.IsNew,
		); err != nil {
			return fmt.Errorf("insert purchase item %d: %w", i+1, err)
		}
	}
	return nil
}

func lockPurchaseStatus(ctx context.Context, tx pgx.Tx, id int) (string, error) {
	var status string
	if err := tx.QueryRow(ctx,
		"SELECT status FROM purchases WHERE id = $1 FOR UPDATE", id,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("purchase %d: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("fetch purchase %d: %w", id, err)
	}
	return status, nil
}
