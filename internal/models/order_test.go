package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{StatusPaid, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled}

	allowed := map[OrderStatus]map[OrderStatus]bool{
		StatusPaid:      {StatusShipped: true, StatusCancelled: true},
		StatusShipped:   {StatusDelivered: true, StatusCancelled: true},
		StatusDelivered: {StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		assert.False(t, from.CanTransitionTo("refunded"), "%s -> refunded", from)
		assert.False(t, from.CanTransitionTo(""), "%s -> empty", from)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, OrderStatus("PAID").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderClone(t *testing.T) {
	order := Order{ID: "o1", Metadata: map[string]string{MetadataSellerRef: "s1"}}

	clone := order.Clone()
	clone.Metadata[MetadataSellerRef] = "s2"

	assert.Equal(t, "s1", order.Metadata[MetadataSellerRef])
	assert.Nil(t, Order{}.Clone().Metadata)
}
