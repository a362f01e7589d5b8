package models

import "github.com/shopspring/decimal"

// InventoryItem is a material as held by the inventory endpoints,
// carrying the fields the stock valuation report derives from.
type InventoryItem struct {
	MaterialCode string          `json:"materialCode"`
	MaterialName string          `json:"materialName"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`

	// StandardPrice is the preferred unit cost; AverageCost is the
	// fallback when no standard price is maintained.
	StandardPrice decimal.Decimal `json:"standardPrice"`
	AverageCost   decimal.Decimal `json:"averageCost"`
}

// UnitCost returns the valuation cost for the material: the standard
// price when set, otherwise the moving average cost.
func (it InventoryItem) UnitCost() decimal.Decimal {
	if !it.StandardPrice.IsZero() {
		return it.StandardPrice
	}
	return it.AverageCost
}
