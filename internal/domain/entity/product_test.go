package entity_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/domain"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

func validInput() entity.ProductInput {
	return entity.ProductInput{
		ID:       "p-1",
		SKU:      " FAB-LIN-001 ",
		Name:     "Linen Bolt",
		Category: entity.CategoryFabric,
		Price:    decimal.RequireFromString("30.00"),
		MOQ:      2,
		Stock:    10,
		Rating:   4.2,
	}
}

func TestNewProduct_Valido(t *testing.T) {
	p, err := entity.NewProduct(validInput())
	require.NoError(t, err)

	assert.Equal(t, "FAB-LIN-001", p.SKU, "el SKU se recorta")
	opening, ok := p.Baseline()
	require.True(t, ok)
	assert.Equal(t, 10, opening, "el stock de apertura es el stock inicial")
	assert.True(t, p.InventoryValue().Equal(decimal.RequireFromString("300")))
}

func TestNewProduct_Invalidos(t *testing.T) {
	cases := map[string]func(*entity.ProductInput){
		"sin sku":            func(in *entity.ProductInput) { in.SKU = "  " },
		"sin nombre":         func(in *entity.ProductInput) { in.Name = "" },
		"categoria invalida": func(in *entity.ProductInput) { in.Category = "yarn" },
		"precio negativo":    func(in *entity.ProductInput) { in.Price = decimal.NewFromInt(-1) },
		"stock negativo":     func(in *entity.ProductInput) { in.Stock = -1 },
		"moq cero":           func(in *entity.ProductInput) { in.MOQ = 0 },
		"rating fuera":       func(in *entity.ProductInput) { in.Rating = 5.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := entity.NewProduct(in)
			require.Error(t, err)

			var verr *entity.ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestIsLowStock_UmbralMOQPorDos(t *testing.T) {
	p := &entity.Product{MOQ: 10, Stock: 19}
	assert.True(t, p.IsLowStock())
	p.Stock = 20
	assert.False(t, p.IsLowStock())
}

func TestDefaultProducts_Semilla(t *testing.T) {
	seed := entity.DefaultProducts()
	require.Len(t, seed, 3)
	for _, p := range seed {
		assert.NoError(t, p.Validate())
		opening, ok := p.Baseline()
		require.True(t, ok)
		assert.Equal(t, p.Stock, opening)
	}
	assert.Equal(t, "THREAD-SILK-BURG-001", seed[0].SKU)
	assert.Equal(t, 1500, seed[0].Stock)
}

func TestSameSKU_SinDistinguirMayusculas(t *testing.T) {
	assert.True(t, entity.SameSKU("THREAD-SILK-BURG-001", "thread-silk-burg-001"))
	assert.True(t, entity.SameSKU(" acc-needle-ind-14", "ACC-NEEDLE-IND-14 "))
	assert.False(t, entity.SameSKU("ACC-1", "ACC-2"))
}

func TestClone_NoCompartePunteros(t *testing.T) {
	p := entity.DefaultProducts()[0]
	c := p.Clone()
	c.Stock = 0
	c.SetOpeningStock(0)
	assert.Equal(t, 1500, p.Stock)
	assert.Equal(t, 1500, *p.OpeningStock)

	var nilProduct *entity.Product
	assert.Nil(t, nilProduct.Clone())
}

func TestProduct_DocumentoSinOpeningStock(t *testing.T) {
	raw := `{"id":"9","sku":"OLD-1","name":"Hilo antiguo","category":"thread","price":"3.5","moq":1,"stock":7}`

	var p entity.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	_, ok := p.Baseline()
	assert.False(t, ok, "un documento sin openingStock no tiene base conocida")
	assert.Equal(t, 7, p.Stock)

	out, err := json.Marshal(&p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "openingStock", "no se inventa un cero al reescribir")
}
