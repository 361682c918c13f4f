// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-raid/internal/repositories/inventory"
	inventorymock "github.com/KirkDiggler/rpg-raid/internal/repositories/inventory/mock"
)

// ExpectConsume expects costs to be consumed in one call, leaving remaining
func ExpectConsume(ctx context.Context, m *inventorymock.MockRepository, playerID string, costs, remaining map[string]int) *gomock.Call {
	return m.EXPECT().
		Consume(ctx, &inventory.ConsumeInput{PlayerID: playerID, Costs: costs}).
		Return(&inventory.ConsumeOutput{Remaining: remaining}, nil)
}

// ExpectRefund expects each cost to be given back with an Increment, after
// the given calls
func ExpectRefund(ctx context.Context, m *inventorymock.MockRepository, playerID string, costs map[string]int, after ...*gomock.Call) {
	for item, n := range costs {
		call := m.EXPECT().
			Increment(ctx, &inventory.IncrementInput{PlayerID: playerID, ItemID: item, Delta: n}).
			Return(&inventory.IncrementOutput{Count: n}, nil)
		if len(after) > 0 {
			call.After(after[len(after)-1])
		}
	}
}
