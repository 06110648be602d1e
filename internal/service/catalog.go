package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pos-backend/internal/models"
)

// resolveLine looks an item up and returns an immutable snapshot of its
// name and price with the line total computed. The snapshot is what gets
// persisted on the bill, so later catalog edits never change history.
//
// A zero quantity is treated as omitted and defaults to 1; a negative
// quantity is rejected.
func resolveLine(tx *gorm.DB, itemID uint, quantity int) (models.BillLine, error) {
	if quantity < 0 {
		return models.BillLine{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if quantity == 0 {
		quantity = 1
	}

	var item models.Item
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BillLine{}, fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
		}
		return models.BillLine{}, err
	}

	return models.BillLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: quantity,
		Total:    item.Price * float64(quantity),
	}, nil
}

// resolveLines snapshots every requested line and sums the subtotal. Any
// single failure aborts the whole resolution.
func resolveLines(tx *gorm.DB, items []LineInput) ([]models.BillLine, float64, error) {
	lines := make([]models.BillLine, 0, len(items))
	var subTotal float64
	for _, in := range items {
		line, err := resolveLine(tx, in.Item, in.Quantity)
		if err != nil {
			return nil, 0, err
		}
		subTotal += line.Total
		lines = append(lines, line)
	}
	return lines, subTotal, nil
}
