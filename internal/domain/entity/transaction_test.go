package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

func TestTransaction_PerformedBySiempreSeSerializa(t *testing.T) {
	tx := &entity.Transaction{
		ID:          "t-1",
		Type:        entity.TransactionRestock,
		ProductID:   "1",
		ProductName: "Royal Burgundy Silk Thread",
		Quantity:    5,
		Timestamp:   1710498600000,
		TotalAmount: decimal.RequireFromString("62.50"),
	}

	out, err := json.Marshal(tx)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &fields))
	require.Contains(t, fields, "performedBy", "el campo es obligatorio en el documento")
	assert.JSONEq(t, `""`, string(fields["performedBy"]))
	assert.NotContains(t, fields, "paymentMethod", "los métodos siguen siendo opcionales")
}
