package wizard

import (
	"fmt"
	"math"

	"mechanicbook/models"
)

// Basket holds the services the customer has picked, unique by id, in the order they were added.
// Totals are accumulated in whole pence so that adding and removing never drifts.
type Basket struct {
	items []models.Service
}

func (b *Basket) index(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a service with this id is in the basket.
func (b *Basket) Contains(id string) bool {
	return b.index(id) >= 0
}

// Add stores a copy of s unless it is already present. It returns true when the basket changed.
func (b *Basket) Add(s models.Service) bool {
	if b.Contains(s.ID) {
		return false
	}
	b.items = append(b.items, cloneService(s))
	return true
}

// Remove drops the service with the given id. It returns true when the basket changed.
func (b *Basket) Remove(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return true
}

// Toggle adds s when absent and removes it when present. It returns true when s ends up in the basket.
func (b *Basket) Toggle(s models.Service) bool {
	if b.Remove(s.ID) {
		return false
	}
	b.Add(s)
	return true
}

func (b *Basket) Count() int { return len(b.items) }

// Items returns copies of the basket entries.
func (b *Basket) Items() []models.Service {
	out := make([]models.Service, len(b.items))
	for i, s := range b.items {
		out[i] = cloneService(s)
	}
	return out
}

// TotalPence sums the item prices in pence.
func (b *Basket) TotalPence() int64 {
	var total int64
	for _, s := range b.items {
		total += toPence(s.Price)
	}
	return total
}

// Total is the basket sum in pounds, exact to two decimal places.
func (b *Basket) Total() float64 {
	return float64(b.TotalPence()) / 100
}

func (b *Basket) FormatTotal() string {
	return formatPence(b.TotalPence())
}

// MobileLabel is the compact count shown on narrow layouts.
func (b *Basket) MobileLabel() string {
	switch n := b.Count(); n {
	case 0:
		return "Basket empty"
	case 1:
		return "1 item"
	default:
		return fmt.Sprintf("%d items", n)
	}
}

func (b *Basket) clear() { b.items = nil }

// FormatPrice renders a GBP amount as "£12.50".
func FormatPrice(price float64) string {
	return formatPence(toPence(price))
}

func toPence(price float64) int64 {
	return int64(math.Round(price * 100))
}

func formatPence(p int64) string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s£%d.%02d", sign, p/100, p%100)
}

func cloneService(s models.Service) models.Service {
	if s.WhatToExpect != nil {
		s.WhatToExpect = append([]string(nil), s.WhatToExpect...)
	}
	return s
}
