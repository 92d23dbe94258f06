package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/hasker/backend/internal/service"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		raw       string
		wantItems []int
		wantPage  int
		hasNext   bool
		hasPrev   bool
	}{
		{"first page", "1", []int{1, 2}, 1, true, false},
		{"middle page", "2", []int{3, 4}, 2, true, true},
		{"last page is short", "3", []int{5}, 3, false, true},
		{"missing page", "", []int{1, 2}, 1, true, false},
		{"not a number", "abc", []int{1, 2}, 1, true, false},
		{"beyond last page", "9", []int{1, 2}, 1, true, false},
		{"zero", "0", []int{1, 2}, 1, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := service.Paginate(items, tc.raw, 2)
			assert.Equal(t, tc.wantItems, p.Items)
			assert.Equal(t, tc.wantPage, p.Number)
			assert.Equal(t, 5, p.Total)
			assert.Equal(t, 3, p.NumPages)
			assert.Equal(t, tc.hasNext, p.HasNext())
			assert.Equal(t, tc.hasPrev, p.HasPrevious())
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := service.Paginate([]string{}, "", 20)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.NumPages)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	p := service.Paginate(items, "1", 2)
	p.Items[0] = 99
	assert.Equal(t, 1, items[0])
}
