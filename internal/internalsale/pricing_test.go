package internalsale

import (
	"testing"

	"gymdesk/internal/apperr"
	"gymdesk/internal/inventory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPrice(t *testing.T) {
	p := inventory.Product{PurchasePrice: decimal.RequireFromString("180.00")}
	manual := decimal.NewFromInt(150)

	assert.Equal(t, "180", UnitPrice(p, PriceTypePurchase, nil).String())
	assert.Equal(t, "180", UnitPrice(p, PriceTypePurchase, &manual).String())
	assert.Equal(t, "150", UnitPrice(p, PriceTypeManual, &manual).String())
}

func TestValidate(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{name: "missing admin", req: CreateRequest{ProductID: 1, Quantity: 1, PriceType: PriceTypePurchase}, field: "admin_name"},
		{name: "unknown price type", req: CreateRequest{AdminName: "Coach", ProductID: 1, Quantity: 1, PriceType: "free"}, field: "price_type"},
		{name: "zero quantity", req: CreateRequest{AdminName: "Coach", ProductID: 1, PriceType: PriceTypePurchase}, field: "quantity"},
		{name: "manual without price", req: CreateRequest{AdminName: "Coach", ProductID: 1, Quantity: 1, PriceType: PriceTypeManual}, field: "manual_price"},
		{name: "negative manual price", req: CreateRequest{AdminName: "Coach", ProductID: 1, Quantity: 1, PriceType: PriceTypeManual, ManualPrice: &negative}, field: "manual_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *apperr.ValidationError
			require.ErrorAs(t, Validate(tt.req), &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	assert.NoError(t, Validate(CreateRequest{AdminName: "Coach", ProductID: 1, Quantity: 2, PriceType: PriceTypePurchase}))
}
