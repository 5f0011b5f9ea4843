package model

import "time"

var sizes = [...]string{"S", "M", "L", "XL", "XXL"}

// SizeCount is the length of every normalized stock array.
const SizeCount = len(sizes)

// Sizes returns the fixed size enumeration stock arrays are aligned to.
// Reordering it requires migrating every stored stock array.
func Sizes() []string {
	out := make([]string, SizeCount)
	copy(out, sizes[:])
	return out
}

// SizeIndex returns position of size label in the enumeration.
func SizeIndex(size string) (int, bool) {
	for i, s := range sizes {
		if s == size {
			return i, true
		}
	}
	return -1, false
}

// Product describes a catalog entry with per-size stock.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Stock       []int
	Sizes       []string
	CreatedAt   time.Time
}

// NormalizeStock returns stock padded with zeroes to SizeCount entries.
// Extra entries beyond the enumeration are dropped.
func NormalizeStock(stock []int) []int {
	out := make([]int, SizeCount)
	copy(out, stock)
	return out
}

// DeriveSizes lists in-stock size labels in enumeration order.
func DeriveSizes(stock []int) []string {
	out := make([]string, 0, SizeCount)
	for i, s := range sizes {
		if i < len(stock) && stock[i] > 0 {
			out = append(out, s)
		}
	}
	return out
}

// DecrementStock subtracts quantity at index, never going below zero, and
// returns the normalized stock with its derived size list.
func DecrementStock(stock []int, index, quantity int) ([]int, []string) {
	next := stock
	if len(next) < SizeCount {
		next = NormalizeStock(next)
	} else {
		next = append([]int(nil), next...)
	}
	if index >= 0 && index < SizeCount {
		next[index] -= quantity
		if next[index] < 0 {
			next[index] = 0
		}
	}
	return next, DeriveSizes(next)
}
