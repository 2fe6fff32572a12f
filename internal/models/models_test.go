package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBadgeMapping(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{StatusCompleted, "success"},
		{StatusConfirmed, "default"},
		{StatusRunning, "secondary"},
		{StatusCancelled, "destructive"},
		{StatusPending, "outline"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusBadge(tt.status))
		})
	}
}

// Every accepted status maps to exactly one badge; anything else falls back
// to outline.
func TestStatusBadgeTotal(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.NotEmpty(t, StatusBadge(s))
	}
	assert.Equal(t, "outline", StatusBadge("shipped"))
	assert.Equal(t, "outline", StatusBadge(""))
}

func TestValidStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("Delivered"))
	assert.False(t, ValidStatus(""))
}

func TestOrderSubtotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Name: "Wireless Mouse", Quantity: 2, Price: 25.99},
			{Name: "Laptop Stand", Quantity: 1, Price: 45.0},
		},
	}
	assert.InDelta(t, 96.98, order.Subtotal(), 0.001)

	empty := Order{}
	assert.Equal(t, 0.0, empty.Subtotal())
}
