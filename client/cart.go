package client

import "math"

// CartLine is one product entry in the cart. For weight-based products
// Price is the total resolved for the chosen Weight/Unit and
// OriginalPrice keeps the per-100g reference, so the cart never
// re-derives pricing.
type CartLine struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Qty           int     `json:"qty"`
	Weight        float64 `json:"weight,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// Cart is an immutable value: every action returns the next state and
// never mutates the receiver. Lines keep insertion order. No line ever
// holds qty <= 0; reaching zero means removal.
type Cart struct {
	lines []CartLine
}

// Add merges into an existing line with the same id by summing
// quantities, otherwise appends. qty <= 0 is treated as 1.
func (c Cart) Add(line CartLine, qty int) Cart {
	if qty <= 0 {
		qty = 1
	}
	next := c.copyLines()
	for i := range next {
		if next[i].ID == line.ID {
			next[i].Qty += qty
			return Cart{lines: next}
		}
	}
	line.Qty = qty
	return Cart{lines: append(next, line)}
}

// Remove deletes the line with the given id; no-op if absent.
func (c Cart) Remove(id uint) Cart {
	next := make([]CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if l.ID != id {
			next = append(next, l)
		}
	}
	return Cart{lines: next}
}

func (c Cart) Increment(id uint) Cart {
	next := c.copyLines()
	for i := range next {
		if next[i].ID == id {
			next[i].Qty++
		}
	}
	return Cart{lines: next}
}

// Decrement lowers a line's qty by one; a line at 1 is removed, never
// shown at zero.
func (c Cart) Decrement(id uint) Cart {
	for _, l := range c.lines {
		if l.ID == id && l.Qty <= 1 {
			return c.Remove(id)
		}
	}
	next := c.copyLines()
	for i := range next {
		if next[i].ID == id {
			next[i].Qty--
		}
	}
	return Cart{lines: next}
}

func (c Cart) Clear() Cart { return Cart{} }

func (c Cart) Lines() []CartLine { return c.copyLines() }

func (c Cart) Len() int      { return len(c.lines) }
func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

// TotalItems and TotalPrice are pure reductions over the lines; no
// aggregate is ever cached.
func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

func (c Cart) TotalPrice() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Price * float64(l.Qty)
	}
	return math.Round(sum*100) / 100
}

func (c Cart) copyLines() []CartLine {
	next := make([]CartLine, len(c.lines))
	copy(next, c.lines)
	return next
}
