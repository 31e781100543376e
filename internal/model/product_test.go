package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name         string
		stock        int
		reorderLevel int
		want         string
	}{
		{"zero stock is out", 0, 10, StatusOut},
		{"zero stock with zero reorder is out", 0, 0, StatusOut},
		{"stock below reorder is low", 3, 10, StatusLow},
		{"stock equal to reorder is low", 10, 10, StatusLow},
		{"stock above reorder is available", 11, 10, StatusAvailable},
		{"zero reorder has no low band", 1, 0, StatusAvailable},
		{"large stock", 1000, 10, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.stock, tt.reorderLevel))
		})
	}
}

// Walk-through from the reorder boundary: 20/20 is low, draining to zero is
// out, and a partial refill below the threshold is low again.
func TestStockStatusTransitions(t *testing.T) {
	reorder := 20

	stock := 20
	assert.Equal(t, StatusLow, StockStatus(stock, reorder))

	stock += StockDelta(TxTypeOut, 20)
	assert.Equal(t, 0, stock)
	assert.Equal(t, StatusOut, StockStatus(stock, reorder))

	stock += StockDelta(TxTypeIn, 5)
	assert.Equal(t, 5, stock)
	assert.Equal(t, StatusLow, StockStatus(stock, reorder))
}
