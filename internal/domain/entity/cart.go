package entity

import "github.com/shopspring/decimal"

// CartItem línea transitoria del carrito: snapshot del producto + cantidad pedida.
type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal price * quantity del snapshot.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart carrito de la sesión activa. Nunca se persiste; se descarta al completar el checkout.
// Todas las cantidades visibles al cliente se ajustan a >= MOQ del producto.
type Cart struct {
	items []CartItem
}

// NewCart crea un carrito vacío.
func NewCart() *Cart { return &Cart{} }

// Add agrega quantity unidades del producto. Una línea nueva nunca queda por debajo del MOQ;
// si el producto ya está en el carrito se suman las cantidades.
func (c *Cart) Add(p *Product, quantity int) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity = clampMOQ(c.items[i].Quantity+quantity, p.MOQ)
			return
		}
	}
	c.items = append(c.items, CartItem{Product: *p, Quantity: clampMOQ(quantity, p.MOQ)})
}

// UpdateQuantity aplica un delta a la línea; el resultado nunca baja del MOQ.
// Devuelve false si el producto no está en el carrito.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = clampMOQ(c.items[i].Quantity+delta, c.items[i].Product.MOQ)
			return true
		}
	}
	return false
}

// Remove elimina la línea del producto.
func (c *Cart) Remove(productID string) {
	out := c.items[:0]
	for _, it := range c.items {
		if it.Product.ID != productID {
			out = append(out, it)
		}
	}
	c.items = out
}

// Items copia de las líneas en orden de inserción.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len cantidad de líneas.
func (c *Cart) Len() int { return len(c.items) }

// Total suma de subtotales.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Clear vacía el carrito.
func (c *Cart) Clear() { c.items = nil }

func clampMOQ(qty, moq int) int {
	if moq < 1 {
		moq = 1
	}
	if qty < moq {
		return moq
	}
	return qty
}
