package service

import "strconv"

// Page is one slice of a ranked listing. Number is 1-based.
type Page[T any] struct {
	Items    []T `json:"items"`
	Number   int `json:"page"`
	Size     int `json:"page_size"`
	Total    int `json:"total"`
	NumPages int `json:"num_pages"`
}

func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// Paginate cuts items into pages of size and returns the page named by raw.
// A missing, malformed or out of range page number yields the first page.
func Paginate[T any](items []T, raw string, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	numPages := (len(items) + size - 1) / size
	if numPages == 0 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 || number > numPages {
		number = 1
	}

	start := (number - 1) * size
	end := min(start+size, len(items))
	page := make([]T, end-start)
	copy(page, items[start:end])

	return Page[T]{
		Items:    page,
		Number:   number,
		Size:     size,
		Total:    len(items),
		NumPages: numPages,
	}
}
