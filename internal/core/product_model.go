package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one received batch (lot) of a catalog item. Rows sharing a SKU
// belong to the same logical item lineage; each physical receipt creates a new
// row with its own batch code, stock count, and landed purchase price.
// Batches are never merged.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	BatchCode     string          `json:"batch_code"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         int             `json:"stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductInput holds the writable product fields for manual catalog entry.
// SKU may be left blank to have one generated.
type ProductInput struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         int             `json:"stock"`
}

// Validate checks the field constraints for a manual product entry.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return wrapValidation("product name is required")
	}
	if in.Stock < 0 {
		return wrapValidation("stock cannot be negative")
	}
	if in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return wrapValidation("prices cannot be negative")
	}
	return nil
}

// NewSKU generates a catalog SKU for a new item lineage.
func NewSKU() string {
	return "SKU-" + shortCode()
}

// NewBatchCode generates a unique code for one received lot.
func NewBatchCode() string {
	return "BAT-" + shortCode()
}

func shortCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
