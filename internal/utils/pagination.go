package utils

import (
	"math"
)

// PerPage is the fixed page size for all post listings.
const PerPage = 10

// Page is the slice-plus-metadata result handed to templates.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Count      int
	PerPage    int
}

// Paginate slices items into the requested 1-based page. Out-of-range page
// numbers clamp: below 1 to the first page, past the end to the last page.
// An empty input yields a single empty page. The input slice is not mutated.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage < 1 {
		perPage = PerPage
	}

	count := len(items)
	totalPages := int(math.Ceil(float64(count) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: totalPages,
		Count:      count,
		PerPage:    perPage,
	}
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page[T]) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}

func (p Page[T]) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}
