package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// La cantidad del asiento siempre es magnitud positiva; el signo lo aporta
// Direction. SignedDelta es lo único que consume la proyección de saldos.
func TestSignedDelta(t *testing.T) {
	qty := decimal.RequireFromString("7.5")

	entrada := &entity.StockMovement{Direction: entity.DirectionIncrease, Quantity: qty}
	assert.True(t, entrada.SignedDelta().Equal(qty), "incremento conserva la magnitud")

	salida := &entity.StockMovement{Direction: entity.DirectionDecrease, Quantity: qty}
	assert.True(t, salida.SignedDelta().Equal(qty.Neg()), "decremento niega la magnitud")
}

func TestValidMovementType(t *testing.T) {
	for _, tipo := range []string{"IN", "OUT", "ADJUSTMENT", "TRANSFER"} {
		assert.True(t, entity.ValidMovementType(tipo), tipo)
	}
	assert.False(t, entity.ValidMovementType("in"), "el enum es sensible a mayúsculas")
	assert.False(t, entity.ValidMovementType("MOVE"))
	assert.False(t, entity.ValidMovementType(""))
}
